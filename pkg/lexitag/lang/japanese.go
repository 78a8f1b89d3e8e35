package lang

import (
	"regexp"
	"strings"
)

// productTag matches the tag vocabulary without importing it; the tagger
// package depends on this one.
const productTag = "product"

// JapaneseToken is one token after compound merging.
type JapaneseToken struct {
	Text         string
	Merged       bool
	Original     []string
	SuggestedTag string
	Confidence   float64
}

// JapaneseMerger re-joins compounds that morphological analysis split too
// aggressively, e.g. 腹/巻/き back into 腹巻き. Three passes run in order:
// compound dictionary lookup, verb-suffix rules, then katakana product
// suffixes gated by a known-word set.
type JapaneseMerger struct {
	dictionary map[string]struct{}
}

// NewJapaneseMerger returns a merger with an empty validation dictionary.
// The built-in compound table and must-merge list still apply.
func NewJapaneseMerger() *JapaneseMerger {
	return &JapaneseMerger{dictionary: make(map[string]struct{})}
}

// AddWords registers known compounds used to validate katakana merges.
func (m *JapaneseMerger) AddWords(words []string) {
	for _, w := range words {
		m.dictionary[strings.ToLower(w)] = struct{}{}
	}
}

// Merge runs all three passes over tokens.
func (m *JapaneseMerger) Merge(tokens []string) []JapaneseToken {
	if len(tokens) == 0 {
		return nil
	}
	out := m.dictMerge(tokens)
	out = m.ruleMerge(out)
	return m.katakanaMerge(out)
}

// MergeStrings returns only the merged texts.
func (m *JapaneseMerger) MergeStrings(tokens []string) []string {
	merged := m.Merge(tokens)
	out := make([]string, len(merged))
	for i, t := range merged {
		out[i] = t.Text
	}
	return out
}

// dictMerge joins token runs found in the compound table, longest first,
// up to four tokens.
func (m *JapaneseMerger) dictMerge(tokens []string) []JapaneseToken {
	var result []JapaneseToken
	for i := 0; i < len(tokens); {
		matched := false
		for n := min(4, len(tokens)-i); n >= 1; n-- {
			joined, ok := compoundDict[strings.Join(tokens[i:i+n], "\x00")]
			if !ok {
				continue
			}
			result = append(result, JapaneseToken{
				Text:     joined,
				Merged:   n > 1,
				Original: tokens[i : i+n],
			})
			i += n
			matched = true
			break
		}
		if !matched {
			result = append(result, JapaneseToken{Text: tokens[i]})
			i++
		}
	}
	return result
}

// ruleMerge joins a token with its successor when the successor is a known
// inflection suffix or a prefix/suffix regex pair matches.
func (m *JapaneseMerger) ruleMerge(tokens []JapaneseToken) []JapaneseToken {
	if len(tokens) < 2 {
		return tokens
	}

	var result []JapaneseToken
	for i := 0; i < len(tokens); {
		if i+1 < len(tokens) {
			cur, next := tokens[i].Text, tokens[i+1].Text
			if shouldRuleMerge(cur, next) {
				result = append(result, JapaneseToken{
					Text:     cur + next,
					Merged:   true,
					Original: []string{cur, next},
				})
				i += 2
				continue
			}
		}
		result = append(result, tokens[i])
		i++
	}
	return result
}

func shouldRuleMerge(cur, next string) bool {
	if _, ok := suffixPatterns[next]; ok && cur != "" {
		return true
	}
	for _, p := range mergePatterns {
		if p.prev.MatchString(cur) && p.next.MatchString(next) {
			return true
		}
	}
	return false
}

// katakanaMerge joins a mostly-katakana token with a following product
// suffix, but only when the joined word is on the must-merge list or in
// the validation dictionary. Joined words get a product tag suggestion.
func (m *JapaneseMerger) katakanaMerge(tokens []JapaneseToken) []JapaneseToken {
	if len(tokens) < 2 {
		return tokens
	}

	var result []JapaneseToken
	for i := 0; i < len(tokens); {
		if i+1 < len(tokens) {
			cur, next := tokens[i].Text, tokens[i+1].Text
			if _, suffix := katakanaProductSuffixes[next]; suffix && isMostlyKatakana(cur) {
				joined := cur + next
				if m.knownCompound(joined) {
					result = append(result, JapaneseToken{
						Text:         joined,
						Merged:       true,
						Original:     []string{cur, next},
						SuggestedTag: productTag,
						Confidence:   0.85,
					})
					i += 2
					continue
				}
			}
		}
		result = append(result, tokens[i])
		i++
	}
	return result
}

func (m *JapaneseMerger) knownCompound(word string) bool {
	if _, ok := mustMerge[word]; ok {
		return true
	}
	if _, ok := m.dictionary[strings.ToLower(word)]; ok {
		return true
	}
	_, ok := m.dictionary[word]
	return ok
}

func isMostlyKatakana(text string) bool {
	if text == "" {
		return false
	}
	var total, katakana int
	for _, r := range text {
		total++
		if r >= 0x30A0 && r <= 0x30FF {
			katakana++
		}
	}
	return katakana*2 >= total
}

// compoundDict maps NUL-joined token runs to the re-joined compound.
var compoundDict = buildCompoundDict(map[string]string{
	// over-split inflected words
	"腹 巻 き": "腹巻き",
	"腹 巻":   "腹巻",
	"肌 着":   "肌着",
	"下 着":   "下着",
	"上 着":   "上着",
	"入 れ":   "入れ",
	"出 し":   "出し",
	"取 り":   "取り",
	"付 け":   "付け",
	"掛 け":   "掛け",
	"置 き":   "置き",
	"吊 り":   "吊り",
	"巻 き":   "巻き",
	"畳 み":   "畳み",
	"た た み": "たたみ",
	"さ め":   "さめ",
	"き め":   "きめ",
	"し め":   "しめ",

	// product compounds
	"トート バッグ":    "トートバッグ",
	"ショルダー バッグ":  "ショルダーバッグ",
	"ボディ バッグ":    "ボディバッグ",
	"ウエスト バッグ":   "ウエストバッグ",
	"エコ バッグ":     "エコバッグ",
	"スーツ ケース":    "スーツケース",
	"キャリー ケース":   "キャリーケース",
	"ペン ケース":     "ペンケース",
	"メイク ポーチ":    "メイクポーチ",
	"ランニング シューズ": "ランニングシューズ",
	"T シャツ":      "Tシャツ",

	// attributes
	"大 容量": "大容量",
	"軽 量":  "軽量",
	"防 水":  "防水",
	"耐 水":  "耐水",
	"保 温":  "保温",
	"保 冷":  "保冷",
	"抗 菌":  "抗菌",
	"速 乾":  "速乾",
	"吸 汗":  "吸汗",
	"通 気":  "通気",

	// scenarios
	"アウト ドア": "アウトドア",
})

func buildCompoundDict(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[strings.ReplaceAll(k, " ", "\x00")] = v
	}
	return out
}

// suffixPatterns are inflection endings that attach to the preceding token.
var suffixPatterns = toSet([]string{
	"き", "く", "け", "い", "う", "た", "て", "ない", "れる", "せる",
	"める", "ける", "える", "げる", "べる", "ねる", "へる",
	"さ", "み", "め",
	"し", "じ",
})

var mergePatterns = []struct {
	prev, next *regexp.Regexp
}{
	{regexp.MustCompile(`[巻掛置付吊掃取]$`), regexp.MustCompile(`^[きくけいうたてっ]`)},
	{regexp.MustCompile(`[入出]$`), regexp.MustCompile(`^[れりっ]`)},
	{regexp.MustCompile(`き$`), regexp.MustCompile(`^め`)},
	{regexp.MustCompile(`さ$`), regexp.MustCompile(`^め`)},
	{regexp.MustCompile(`た$`), regexp.MustCompile(`^[たみめ]`)},
}

var katakanaProductSuffixes = toSet([]string{
	"バッグ", "ポーチ", "ケース", "カバー", "ホルダー",
	"ボックス", "ラック", "スタンド", "マット", "パッド",
	"シャツ", "パンツ", "スカート", "ジャケット", "コート",
	"シューズ", "ブーツ", "サンダル", "スニーカー",
	"リュック", "ザック", "ベスト", "キャップ", "ハット",
})

var mustMerge = toSet([]string{
	"トートバッグ", "ショルダーバッグ", "ボディバッグ", "ウエストバッグ",
	"エコバッグ", "スーツケース", "キャリーケース", "ペンケース",
	"メイクポーチ", "ランニングシューズ", "スニーカー",
	"腹巻き", "肌着", "下着", "大容量", "軽量", "防水",
	"アウトドア", "ビジネス", "カジュアル",
	"メンズ", "レディース", "キッズ", "ベビー", "ジュニア",
})
