// Package tokenize provides per-script tokenizers. The segmenter decides
// which family a text run belongs to; this package turns each run into
// tokens. Chinese runs go through gse, Japanese through kagome, European
// languages through a rule-based splitter.
package tokenize

// Tokenizer splits one script-homogeneous text run into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WordAdder is implemented by tokenizers that accept custom dictionary
// words, used to seed them from the category dictionaries.
type WordAdder interface {
	AddWord(word string)
}

// Passthrough returns the input as a single token. Used for script runs
// with no meaningful word boundaries (Hangul, unclassified).
type Passthrough struct{}

func (Passthrough) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return []string{text}
}
