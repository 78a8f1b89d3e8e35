package tokenize

import (
	"regexp"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

var japaneseFallbackSplit = regexp.MustCompile(`[\s、。，．・]+`)

// Japanese tokenizes with kagome and the IPA dictionary. When the analyzer
// cannot be constructed the tokenizer degrades to punctuation splitting, so
// callers never have to care.
type Japanese struct {
	analyzer *tokenizer.Tokenizer
}

// NewJapanese builds the kagome-backed tokenizer.
func NewJapanese() (*Japanese, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Japanese{analyzer: t}, nil
}

// NewJapaneseFallback returns a tokenizer that only splits on whitespace
// and Japanese punctuation.
func NewJapaneseFallback() *Japanese {
	return &Japanese{}
}

func (j *Japanese) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	if j.analyzer == nil {
		return j.fallback(text)
	}

	var tokens []string
	for _, m := range j.analyzer.Tokenize(text) {
		surface := strings.TrimSpace(m.Surface)
		if surface != "" {
			tokens = append(tokens, surface)
		}
	}
	return tokens
}

func (j *Japanese) fallback(text string) []string {
	var tokens []string
	for _, w := range japaneseFallbackSplit.Split(text, -1) {
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
