package tokenize

import (
	"strings"

	"github.com/go-ego/gse"
)

// Chinese tokenizes Han text with gse. Multi-character dictionary words can
// be added so brand and product names survive segmentation.
type Chinese struct {
	seg gse.Segmenter
}

// NewChinese builds a gse-backed tokenizer with the embedded dictionary.
func NewChinese() (*Chinese, error) {
	c := &Chinese{}
	if err := c.seg.LoadDict(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chinese) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	for _, w := range c.seg.Cut(text, true) {
		w = strings.TrimSpace(w)
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// AddWord registers a custom word. Single-rune words are skipped, they add
// noise without improving segmentation.
func (c *Chinese) AddWord(word string) {
	if len([]rune(word)) > 1 {
		c.seg.AddToken(word, 100)
	}
}
