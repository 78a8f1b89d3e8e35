// Package tag assigns tags from the eight-way vocabulary to tokens. The
// tagger stacks four candidate sources in order of trust: dictionary
// lookup, regex patterns, multilingual keyword rules, and word-shape
// heuristics. Candidates resolve through the compatibility matrix into at
// most two tags per token, then a context pass adjusts confidences using
// neighboring tokens.
package tag

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/lexitag/pkg/lexitag/dict"
	"github.com/cognicore/lexitag/pkg/lexitag/lang"
)

// Tagger tags token sequences. Safe for concurrent use once built; the
// dictionary manager handles its own locking.
type Tagger struct {
	dicts      *dict.Manager
	normalizer *lang.SpanishNormalizer
	jaMerger   *lang.JapaneseMerger
	stopwords  map[string]struct{}
}

// NewTagger builds a tagger over the given dictionaries. The Spanish
// normalizer and Japanese merger are seeded from the dictionary contents.
func NewTagger(m *dict.Manager) *Tagger {
	t := &Tagger{
		dicts:      m,
		normalizer: lang.NewSpanishNormalizer(),
		jaMerger:   lang.NewJapaneseMerger(),
		stopwords:  make(map[string]struct{}, len(stopwords)),
	}
	for w := range stopwords {
		t.stopwords[w] = struct{}{}
	}
	if m != nil {
		for _, cat := range []string{
			dict.Products, dict.Brands, dict.Scenarios, dict.Features,
			dict.Attributes, dict.Colors, dict.Audiences,
		} {
			words := m.Words(cat)
			t.normalizer.AddWords(words)
			t.jaMerger.AddWords(words)
		}
	}
	return t
}

// Tag tags each token. language is an ISO code hint; empty means unknown,
// which enables both the Japanese compound pass (when kana or Han is
// present) and Spanish dictionary normalization.
func (t *Tagger) Tag(tokens []string, language lang.Language) []Result {
	if language == lang.Japanese || language == "" || language == lang.Unknown {
		tokens = t.mergeJapanese(tokens)
	}

	results := make([]Result, len(tokens))
	for i, token := range tokens {
		results[i] = resolve(token, t.candidates(token, tokens, i, language))
	}
	return t.adjustContext(results, tokens)
}

// TagTokens is Tag with language detection left to the caller's tokens.
func (t *Tagger) TagTokens(tokens []string) []Result {
	return t.Tag(tokens, "")
}

// AddStopwords extends the built-in stopword list.
func (t *Tagger) AddStopwords(words []string) {
	for _, w := range words {
		if w = strings.TrimSpace(strings.ToLower(w)); w != "" {
			t.stopwords[w] = struct{}{}
		}
	}
}

func (t *Tagger) mergeJapanese(tokens []string) []string {
	japanese := false
	for _, token := range tokens {
		for _, r := range token {
			if (r >= 0x3040 && r <= 0x30FF) || (r >= 0x4E00 && r <= 0x9FFF) {
				japanese = true
			}
		}
	}
	if !japanese {
		return tokens
	}
	return t.jaMerger.MergeStrings(tokens)
}

// candidates collects tag candidates for one token. Stopwords short-circuit
// so function words never pollute tag statistics. Heuristics only run when
// nothing stronger than 0.7 was found.
func (t *Tagger) candidates(token string, all []string, position int, language lang.Language) []Candidate {
	lower := strings.ToLower(token)

	if _, ok := t.stopwords[lower]; ok {
		return []Candidate{{
			Tag:        Attribute,
			Confidence: 0.85,
			Method:     "stopword",
			Source:     "stopword_list",
		}}
	}

	var cands []Candidate
	cands = append(cands, t.matchDictionary(lower, language)...)
	cands = append(cands, matchPatterns(token)...)
	cands = append(cands, inferByRules(token, lower)...)

	best := 0.0
	for _, c := range cands {
		if c.Confidence > best {
			best = c.Confidence
		}
	}
	if best < 0.7 {
		cands = append(cands, inferHeuristic(token, lower, all, position)...)
	}
	return cands
}

// matchDictionary looks the token up in every category dictionary. For
// Spanish (or unknown) language, a morphologically normalized form is tried
// as a fallback at a 0.95 confidence discount.
func (t *Tagger) matchDictionary(lower string, language lang.Language) []Candidate {
	if t.dicts == nil {
		return nil
	}

	normalized := ""
	if language == lang.Spanish || language == "" || language == lang.Unknown {
		if n := t.normalizer.Normalize(lower); n.Normalized != lower && len(n.Changes) > 0 {
			normalized = n.Normalized
		}
	}

	var cands []Candidate
	for _, cd := range categoryTags {
		if t.dicts.Contains(cd.category, lower) {
			cands = append(cands, Candidate{
				Tag:        cd.tag,
				Confidence: t.entryConfidence(cd.category, lower),
				Method:     "dict",
				Source:     "dict:" + cd.category,
			})
		} else if normalized != "" && t.dicts.Contains(cd.category, normalized) {
			cands = append(cands, Candidate{
				Tag:        cd.tag,
				Confidence: t.entryConfidence(cd.category, normalized) * 0.95,
				Method:     "dict_normalized",
				Source:     "dict:" + cd.category + "(normalized:" + normalized + ")",
			})
		}
	}
	return cands
}

func (t *Tagger) entryConfidence(category, word string) float64 {
	e, err := t.dicts.Entry(category, word)
	if err != nil || e.Confidence == 0 {
		return 0.9
	}
	return e.Confidence
}

var categoryTags = []struct {
	category string
	tag      string
}{
	{dict.Brands, Brand},
	{dict.Products, Product},
	{dict.Audiences, Audience},
	{dict.Scenarios, Scenario},
	{dict.Colors, Color},
	{dict.Features, Feature},
	{dict.Attributes, Attribute},
}

func matchPatterns(token string) []Candidate {
	var cands []Candidate
	for _, p := range colorPatterns {
		if p.MatchString(token) {
			cands = append(cands, Candidate{
				Tag: Color, Confidence: 0.85, Method: "pattern", Source: "color_pattern",
			})
			break
		}
	}
	for _, p := range sizePatterns {
		if p.MatchString(token) {
			cands = append(cands, Candidate{
				Tag: Size, Confidence: 0.95, Method: "pattern", Source: "size_pattern",
			})
			break
		}
	}
	return cands
}

func inferByRules(token, lower string) []Candidate {
	var cands []Candidate
	add := func(set map[string]struct{}, tagName string, conf float64, source string) {
		_, okLower := set[lower]
		_, okExact := set[token]
		if okLower || okExact {
			cands = append(cands, Candidate{
				Tag: tagName, Confidence: conf, Method: "rule", Source: source,
			})
		}
	}
	add(productKeywords, Product, 0.85, "product_keywords")
	add(audienceKeywords, Audience, 0.85, "audience_keywords")
	add(scenarioKeywords, Scenario, 0.85, "scenario_keywords")
	add(featureKeywords, Feature, 0.85, "feature_keywords")
	add(attributeKeywords, Attribute, 0.8, "attribute_keywords")
	return cands
}

func inferHeuristic(token, lower string, all []string, position int) []Candidate {
	var cands []Candidate

	// Capitalized alphabetic word in first position is likely a brand.
	if position == 0 && runeCount(token) > 2 && isCapitalizedAlpha(token) {
		if _, common := commonWords[lower]; !common {
			cands = append(cands, Candidate{
				Tag: Brand, Confidence: 0.65, Method: "heuristic", Source: "capitalized_first",
			})
		}
	}

	if strings.ContainsFunc(token, unicode.IsDigit) {
		cands = append(cands, Candidate{
			Tag: Size, Confidence: 0.7, Method: "heuristic", Source: "contains_digit",
		})
	}

	// Model suffixes (pro, max, plus) after another token read as attributes.
	if _, ok := modelSuffixes[lower]; ok && position > 0 {
		cands = append(cands, Candidate{
			Tag: Attribute, Confidence: 0.75, Method: "heuristic", Source: "model_suffix",
		})
	}
	return cands
}

// resolve ranks candidates and picks the primary tag plus at most one
// compatible secondary tag with confidence 0.7 or better. With no
// candidates at all, the token defaults to a low-confidence attribute.
func resolve(token string, cands []Candidate) Result {
	if len(cands) == 0 {
		return Result{
			Token:      token,
			Tags:       []string{Attribute},
			Primary:    Attribute,
			Confidence: 0.5,
			Method:     "default",
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Confidence != cands[j].Confidence {
			return cands[i].Confidence > cands[j].Confidence
		}
		return Less(cands[i].Tag, cands[j].Tag)
	})

	primary := cands[0]
	tags := []string{primary.Tag}
	for _, c := range cands[1:] {
		if c.Tag == primary.Tag {
			continue
		}
		if Compatible(primary.Tag, c.Tag) && c.Confidence >= 0.7 {
			tags = append(tags, c.Tag)
			break
		}
	}

	return Result{
		Token:      token,
		Tags:       tags,
		Primary:    primary.Tag,
		Confidence: primary.Confidence,
		Method:     primary.Method,
		Candidates: cands,
	}
}

// adjustContext runs the second pass: a bare unit token after a number
// becomes a definite size, and adjacent primary-tag pairs shift confidence
// by the boost table, clamped to [0, 1].
func (t *Tagger) adjustContext(results []Result, tokens []string) []Result {
	if len(results) < 2 {
		return results
	}

	for i := range results {
		if i > 0 {
			prev := strings.ReplaceAll(tokens[i-1], ".", "")
			if prev != "" && isAllDigits(prev) {
				if _, unit := unitWords[strings.ToLower(tokens[i])]; unit {
					results[i].Tags = []string{Size}
					results[i].Primary = Size
					results[i].Confidence = 0.95
					results[i].Method = "context"
				}
			}

			key := [2]string{results[i-1].Primary, results[i].Primary}
			if boost, ok := contextBoost[key]; ok {
				results[i].Confidence = clamp01(results[i].Confidence + boost)
			}
		}
	}
	return results
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func isCapitalizedAlpha(s string) bool {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
	}
	return s != ""
}

func runeCount(s string) int { return len([]rune(s)) }

var colorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`.+[色系]$`),
	regexp.MustCompile(`^(深|浅|亮|暗|淡).+色$`),
}

var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+\.?\d*\s*(码|寸|号|cm|mm|m|inch|英寸|厘米)$`),
	regexp.MustCompile(`(?i)^\d+\.?\d*\s*(kg|g|lb|磅|克|千克)$`),
	regexp.MustCompile(`(?i)^\d+\.?\d*\s*(ml|l|毫升|升)$`),
	regexp.MustCompile(`(?i)^\d+\.?\d*\s*(gb|tb|mb)$`),
	regexp.MustCompile(`(?i)^(S|M|L|XL|XXL|XXXL|XS|2XL|3XL|4XL)$`),
	regexp.MustCompile(`(?i)^\d+x\d+$`),
	regexp.MustCompile(`(?i)^\d+l$`),
	regexp.MustCompile(`^\d+\.?\d*\s*(张|片|个|只|条|支|瓶|盒|包|袋|件|套|双|对)$`),
}

// contextBoost adjusts the current token's confidence given the previous
// token's primary tag. A product followed by a brand is suspicious.
var contextBoost = map[[2]string]float64{
	{Brand, Product}:    0.05,
	{Product, Brand}:    -0.1,
	{Color, Product}:    0.03,
	{Audience, Product}: 0.02,
	{Scenario, Product}: 0.02,
}

var unitWords = toSet([]string{
	"码", "寸", "号", "cm", "mm", "m", "inch", "英寸", "厘米",
	"kg", "g", "lb", "磅", "克", "千克",
	"ml", "l", "毫升", "升",
	"gb", "tb", "mb",
})

var modelSuffixes = toSet([]string{"pro", "max", "plus", "mini", "lite", "ultra", "se"})

var commonWords = toSet([]string{
	"the", "a", "an", "and", "or", "for", "with", "new", "pro", "max", "mini",
})

var stopwords = toSet([]string{
	// English
	"for", "with", "and", "the", "a", "an", "of", "in", "on", "to", "by",
	"or", "at", "as", "if", "so", "up", "it", "is", "be", "do", "no",
	// German, plus tokenization fragments
	"mit", "für", "und", "der", "die", "das", "ein", "eine",
	"wei", "gro", "gr", "rer",
	// French
	"de", "pour", "avec", "sans", "en", "et", "le", "la", "les", "un", "une",
	"du", "au", "aux", "ce", "se", "ne", "que", "qui", "ou", "vue",
	// Spanish
	"para", "con", "y", "el", "los", "las",
	"ni", "os", "ba", "al", "del", "es", "su", "si",
	// Japanese particles and fragments
	"の", "を", "に", "は", "が", "で", "と", "も", "や",
	"さめ", "きめ", "たたみ", "せる", "つける", "きい", "ける", "ない",
})

var productKeywords = toSet([]string{
	// Japanese
	"シャツ", "Tシャツ", "パンツ", "ジャケット", "コート", "スカート",
	"バッグ", "ポーチ", "リュック", "シューズ", "ブーツ", "ケース",
	"ベスト", "ザック",
	// German
	"hose", "jacke", "mantel", "hemd", "bluse", "rock", "kleid",
	"tasche", "rucksack", "schuhe", "stiefel",
	// French
	"pantalon", "veste", "manteau", "chemise", "robe", "jupe",
	"sac", "chaussures", "bottes",
	// Spanish
	"pantalón", "chaqueta", "abrigo", "camisa", "vestido", "falda",
	"bolso", "mochila", "zapatos", "botas",
	// English
	"shirt", "pants", "jacket", "coat", "dress", "skirt",
	"bag", "backpack", "shoes", "boots", "shorts", "tops",
	"legging", "leggings", "belt", "hat", "cap",
})

var audienceKeywords = toSet([]string{
	"メンズ", "レディース", "キッズ", "ベビー",
	"damen", "herren", "kinder", "baby",
	"femme", "homme", "enfant",
	"mujer", "hombre", "niño", "niña", "niños",
	"men", "women", "mens", "womens", "men's", "women's",
	"kids", "boys", "girls", "unisex", "adult",
})

var scenarioKeywords = toSet([]string{
	"ランニング", "トレーニング", "ヨガ", "スポーツ", "アウトドア",
	"キャンプ", "登山", "ハイキング", "トレッキング",
	"sport", "fitness", "yoga", "outdoor", "camping", "wandern",
	"running", "training", "hiking", "gym", "travel",
})

var featureKeywords = toSet([]string{
	"軽量", "防水", "撥水", "速乾", "保温", "通気", "ストレッチ",
	"wasserdicht", "atmungsaktiv", "leicht", "warm", "elastisch", "thermo",
	"imperméable", "respirant", "léger", "rechargeable",
	"impermeable", "transpirable", "ligero",
	"waterproof", "breathable", "lightweight", "compression",
	"quick-dry", "thermal",
})

var attributeKeywords = toSet([]string{
	"半袖", "長袖", "フード付き", "タイプ",
	"langarm", "kurzarm", "mini",
	"haute", "taille", "long", "court",
	"alta", "largo", "corto", "externo",
	"short", "high", "low", "waist", "sleeve",
	"wireless", "bluetooth",
})

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
