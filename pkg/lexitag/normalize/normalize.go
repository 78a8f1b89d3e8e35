// Package normalize prepares raw keyword text for segmentation: Unicode
// normalization, fullwidth folding, whitespace collapsing and removal of
// characters that carry no meaning in product titles.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Preprocessor normalizes raw keyword strings. The zero value is usable.
type Preprocessor struct{}

// preserved punctuation that is meaningful inside product titles
// (hyphenated compounds, decimal sizes, "&" in brand names, elisions).
var preserved = map[rune]struct{}{
	'-': {}, '/': {}, '.': {}, '+': {}, '&': {}, '\'': {},
}

// Normalize returns the cleaned form of text. The result contains only
// letters, digits, CJK characters, preserved punctuation and single spaces.
func (p *Preprocessor) Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = foldWidth(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case isPreserved(r) || isCJK(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return collapseSpace(b.String())
}

func isPreserved(r rune) bool {
	_, ok := preserved[r]
	return ok
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3040 && r <= 0x30FF) ||
		(r >= 0x3400 && r <= 0x4DBF)
}

// foldWidth maps fullwidth forms to their halfwidth equivalents. NFKC handles
// most of these already; the explicit pass covers ideographic space and any
// stragglers in the FF01-FF5E block.
func foldWidth(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == 0x3000:
			b.WriteRune(' ')
		case r >= 0xFF01 && r <= 0xFF5E:
			b.WriteRune(r - 0xFEE0)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
