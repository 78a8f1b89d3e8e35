package tokenize

import (
	"regexp"
	"strings"

	"github.com/cognicore/lexitag/pkg/lexitag/lang"
)

var europeanSplit = regexp.MustCompile(`[\s,;:!?()\[\]{}]+`)

// European tokenizes space-delimited languages. French gets elision
// splitting (l'eau -> l' + eau); hyphenated compounds are kept whole when
// short (Coca-Cola) and split otherwise.
type European struct {
	Language lang.Language
}

// NewEuropean returns a tokenizer for the given European language.
func NewEuropean(language lang.Language) *European {
	return &European{Language: language}
}

func (e *European) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var words []string
	for _, w := range europeanSplit.Split(text, -1) {
		if w != "" {
			words = append(words, w)
		}
	}

	if e.Language == lang.French {
		words = splitElisions(words)
	}
	return splitHyphens(words)
}

// splitElisions breaks French article contractions apart so the content
// word matches the dictionary: l'eau becomes l and eau.
func splitElisions(words []string) []string {
	var out []string
	for _, w := range words {
		parts := strings.Split(w, "'")
		if len(parts) == 2 && len([]rune(parts[0])) <= 2 {
			out = append(out, parts[0], parts[1])
			continue
		}
		out = append(out, w)
	}
	return out
}

// splitHyphens keeps short hyphen compounds of up to three parts intact
// and splits longer chains.
func splitHyphens(words []string) []string {
	var out []string
	for _, w := range words {
		if !strings.Contains(w, "-") {
			out = append(out, w)
			continue
		}
		parts := strings.Split(w, "-")
		short := len(parts) <= 3
		for _, p := range parts {
			if len([]rune(p)) > 10 {
				short = false
			}
		}
		if short {
			out = append(out, w)
		} else {
			for _, p := range parts {
				if p != "" {
					out = append(out, p)
				}
			}
		}
	}
	return out
}
