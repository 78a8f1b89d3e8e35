// Package pipeline runs the full keyword analysis: normalization, fixed-
// phrase extraction, script segmentation, per-script tokenization, phrase
// merging, tagging and optional AI enhancement, reconciled positionally into
// one token sequence.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/lexitag/pkg/lexitag/dict"
	"github.com/cognicore/lexitag/pkg/lexitag/enhance"
	"github.com/cognicore/lexitag/pkg/lexitag/lang"
	"github.com/cognicore/lexitag/pkg/lexitag/normalize"
	"github.com/cognicore/lexitag/pkg/lexitag/phrase"
	"github.com/cognicore/lexitag/pkg/lexitag/segment"
	"github.com/cognicore/lexitag/pkg/lexitag/span"
	"github.com/cognicore/lexitag/pkg/lexitag/tag"
	"github.com/cognicore/lexitag/pkg/lexitag/tokenize"
)

// Config wires the pipeline's collaborators. Every field is optional; nil
// fields fall back to defaults built over the dictionaries.
type Config struct {
	Dicts     *dict.Manager
	Tagger    *tag.Tagger
	Merger    *phrase.Merger
	Extractor *span.Extractor
	Enhancer  *enhance.Enhancer
	Logger    *zap.Logger

	// Chinese and Japanese replace the default script tokenizers.
	Chinese  tokenize.Tokenizer
	Japanese tokenize.Tokenizer
}

// Result is the analysis of one keyword.
type Result struct {
	Original   string
	Normalized string
	Language   lang.Language
	Tokens     []string
	Tagged     []tag.Result
	Summary    map[string][]string
}

// Pipeline analyzes keywords. Safe for concurrent use; per-call state lives
// on the stack and the shared collaborators handle their own locking.
type Pipeline struct {
	pre normalize.Preprocessor
	seg segment.Segmenter

	dicts     *dict.Manager
	tagger    *tag.Tagger
	merger    *phrase.Merger
	extractor *span.Extractor
	enhancer  *enhance.Enhancer
	log       *zap.Logger

	chinese  tokenize.Tokenizer
	japanese tokenize.Tokenizer
	pass     tokenize.Tokenizer
}

// New builds a pipeline over the given collaborators. Tokenizers that fail
// to construct degrade to simpler splitters with a logged warning.
func New(cfg Config) *Pipeline {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	dicts := cfg.Dicts
	if dicts == nil {
		dicts = dict.NewManager("")
	}
	tagger := cfg.Tagger
	if tagger == nil {
		tagger = tag.NewTagger(dicts)
	}
	merger := cfg.Merger
	if merger == nil {
		merger = phrase.NewDefaultMerger()
	}
	extractor := cfg.Extractor
	if extractor == nil {
		extractor = span.NewExtractor()
		for _, e := range dicts.Entries(dict.Brands) {
			conf := e.Confidence
			if conf == 0 {
				conf = 0.9
			}
			extractor.AddBrand(e.Word, conf)
		}
	}

	chinese := cfg.Chinese
	if chinese == nil {
		if zh, err := tokenize.NewChinese(); err == nil {
			for _, w := range dicts.WordsForTokenizer("zh") {
				zh.AddWord(w)
			}
			chinese = zh
		} else {
			log.Warn("chinese tokenizer unavailable", zap.Error(err))
			chinese = tokenize.Passthrough{}
		}
	}

	japanese := cfg.Japanese
	if japanese == nil {
		if ja, err := tokenize.NewJapanese(); err == nil {
			japanese = ja
		} else {
			log.Warn("japanese tokenizer unavailable", zap.Error(err))
			japanese = tokenize.NewJapaneseFallback()
		}
	}

	return &Pipeline{
		dicts:     dicts,
		tagger:    tagger,
		merger:    merger,
		extractor: extractor,
		enhancer:  cfg.Enhancer,
		log:       log,
		chinese:   chinese,
		japanese:  japanese,
		pass:      tokenize.Passthrough{},
	}
}

// preset is a tag attached to a token before the tagger runs. It wins over
// the tagger's own result only at greater or equal confidence.
type preset struct {
	tag        string
	confidence float64
}

// fragment is one token positioned in the normalized text.
type fragment struct {
	text   string
	start  int
	preset *preset
}

// Process analyzes one keyword.
func (p *Pipeline) Process(ctx context.Context, keyword string) (Result, error) {
	normalized := p.pre.Normalize(keyword)
	res := Result{
		Original:   keyword,
		Normalized: normalized,
		Summary:    make(map[string][]string),
	}
	if normalized == "" {
		return res, nil
	}
	res.Language = lang.Detect(normalized)

	spans, locked := p.extractor.Extract(normalized)
	segs := p.seg.Segment(normalized)
	runes := []rune(normalized)

	frags := make([]fragment, 0, len(segs)+len(spans))
	for _, s := range spans {
		frags = append(frags, fragment{
			text:   s.Text,
			start:  s.Start,
			preset: &preset{tag: s.Tag, confidence: s.Confidence},
		})
	}

	for _, sg := range segs {
		if span.Covered(sg.Start, sg.End, locked) {
			continue
		}
		for _, part := range span.Unlocked(sg.Start, sg.End, locked) {
			text := string(runes[part.Start:part.End])
			if strings.TrimSpace(text) == "" {
				continue
			}
			frags = append(frags, p.tokenizeRun(text, part.Start, sg.Script, res.Language)...)
		}
	}

	sort.SliceStable(frags, func(a, b int) bool { return frags[a].start < frags[b].start })

	tokens := make([]string, len(frags))
	presets := make(map[string][]*preset)
	for i, f := range frags {
		tokens[i] = f.text
		if f.preset != nil {
			presets[f.text] = append(presets[f.text], f.preset)
		}
	}

	tagged := p.tagger.Tag(tokens, res.Language)

	// Preset overrides keyed by token text: tagging may merge tokens, so
	// index positions are not stable across the tagger call.
	for i, r := range tagged {
		queue := presets[r.Token]
		if len(queue) == 0 {
			continue
		}
		ps := queue[0]
		presets[r.Token] = queue[1:]
		if ps.confidence >= r.Confidence {
			tagged[i] = tag.Result{
				Token:      r.Token,
				Tags:       []string{ps.tag},
				Primary:    ps.tag,
				Confidence: ps.confidence,
				Method:     "preset",
				Candidates: r.Candidates,
			}
		}
	}

	if p.enhancer != nil {
		tagged = p.enhancer.Enhance(ctx, tagged, normalized)
	}

	res.Tagged = tagged
	res.Tokens = make([]string, len(tagged))
	for i, r := range tagged {
		res.Tokens[i] = r.Token
		res.Summary[r.Primary] = append(res.Summary[r.Primary], r.Token)
	}
	return res, nil
}

// Batch analyzes keywords one by one. A failing keyword, including one that
// panics a tokenizer, yields an empty result and never affects its neighbors.
func (p *Pipeline) Batch(ctx context.Context, keywords []string) []Result {
	out := make([]Result, len(keywords))
	for i, kw := range keywords {
		r, err := p.safeProcess(ctx, kw)
		if err != nil {
			p.log.Warn("keyword analysis failed",
				zap.String("keyword", kw),
				zap.Error(err))
			out[i] = Result{Original: kw, Summary: make(map[string][]string)}
			continue
		}
		out[i] = r
	}
	return out
}

// safeProcess converts a panicking collaborator into an error so one bad
// keyword cannot abort a whole batch.
func (p *Pipeline) safeProcess(ctx context.Context, keyword string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyze %q: %v", keyword, r)
		}
	}()
	return p.Process(ctx, keyword)
}

// tokenizeRun splits one unlocked sub-range with the tokenizer family for
// its script. Latin runs additionally pass through the phrase merger, whose
// suggestions become presets.
func (p *Pipeline) tokenizeRun(text string, start int, sc segment.Script, language lang.Language) []fragment {
	family := p.seg.TokenizerFor(sc)
	// Han segments in Japanese keywords belong to the Japanese analyzer.
	if family == segment.FamilyChinese && language == lang.Japanese {
		family = segment.FamilyJapanese
	}

	switch family {
	case segment.FamilyChinese:
		return place(p.chinese.Tokenize(text), text, start)
	case segment.FamilyJapanese:
		return place(p.japanese.Tokenize(text), text, start)
	case segment.FamilyEuropean:
		tokens := tokenize.NewEuropean(language).Tokenize(text)
		offsets := offsetsOf(tokens, text)
		var frags []fragment
		for _, m := range p.merger.Merge(tokens) {
			f := fragment{text: m.Text, start: start + offsets[m.StartIdx]}
			if m.SuggestedTag != "" {
				f.preset = &preset{tag: m.SuggestedTag, confidence: m.Confidence}
			}
			frags = append(frags, f)
		}
		return frags
	default:
		return place(p.pass.Tokenize(text), text, start)
	}
}

// place assigns each token its rune offset within text, shifted by start.
func place(tokens []string, text string, start int) []fragment {
	offsets := offsetsOf(tokens, text)
	frags := make([]fragment, len(tokens))
	for i, tok := range tokens {
		frags[i] = fragment{text: tok, start: start + offsets[i]}
	}
	return frags
}

// offsetsOf locates each token in text by a left-to-right scan. Tokens a
// tokenizer rewrote beyond recognition fall back to the scan cursor, which
// keeps ordering stable even when exact positions are unknowable.
func offsetsOf(tokens []string, text string) []int {
	runes := []rune(text)
	offsets := make([]int, len(tokens))
	cursor := 0
	for i, tok := range tokens {
		idx := runeIndex(runes, []rune(tok), cursor)
		if idx < 0 {
			offsets[i] = cursor
			continue
		}
		offsets[i] = idx
		cursor = idx + len([]rune(tok))
	}
	return offsets
}

func runeIndex(haystack, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
