// Package span extracts fixed phrases (brands, multi-word phrases,
// number+unit specs) from text before tokenization. Matches are reported as
// positioned spans rather than rewritten text, and their character ranges are
// locked so later tokenization cannot re-split them. Trie-based longest
// matching with word-boundary checks avoids the classic substring traps:
// "one" inside "someone", "balance" shadowing "new balance".
package span

import (
	"regexp"
	"sort"
	"unicode"

	"github.com/cognicore/lexitag/pkg/lexitag/tag"
)

// Type classifies what kind of fixed phrase a span is.
type Type string

const (
	TypeBrand       Type = "brand"
	TypeModel       Type = "model"
	TypeFixedPhrase Type = "fixed_phrase"
	TypeNumberUnit  Type = "number_unit"
)

// Span is a located fixed-phrase match. Start and End are rune offsets into
// the extracted text, Start < End. A span is immutable once created.
type Span struct {
	Start      int
	End        int
	Text       string
	Type       Type
	Tag        string
	Confidence float64
}

// Range is a half-open [Start,End) rune interval locked against
// re-tokenization.
type Range struct {
	Start, End int
}

// Entry is the dictionary payload attached to a stored phrase.
type Entry struct {
	Tag        string
	Confidence float64
	Type       Type
}

// numberUnit locks quantity+unit expressions ("10.5cm", "256GB", "3码")
// before the tries run. Units cover sizes, weights, volumes, storage and CJK
// counters.
var numberUnit = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*` +
	`(码|寸|号|cm|mm|m|inch|英寸|厘米|` +
	`kg|g|lb|磅|克|千克|` +
	`ml|l|毫升|升|` +
	`gb|tb|mb|` +
	`张|片|个|只|条|支|瓶|盒|包|袋|件|套|双|对)`)

// Extractor matches fixed phrases against two tries: a character-level one
// for CJK-dominant entries and a boundary-checked one for Latin entries.
type Extractor struct {
	cjk   *trie
	latin *trie
}

// NewExtractor returns an extractor with empty phrase tables.
func NewExtractor() *Extractor {
	return &Extractor{cjk: newTrie(), latin: newTrie()}
}

// Add registers a fixed phrase. CJK-dominant phrases go to the character
// trie, everything else to the word-boundary trie.
func (e *Extractor) Add(phrase, tagName string, confidence float64, typ Type) {
	entry := Entry{Tag: tagName, Confidence: confidence, Type: typ}
	if cjkDominant(phrase) {
		e.cjk.insert(phrase, entry)
		return
	}
	e.latin.insert(phrase, entry)
}

// AddBrand registers a brand phrase with the brand tag.
func (e *Extractor) AddBrand(phrase string, confidence float64) {
	e.Add(phrase, tag.Brand, confidence, TypeBrand)
}

// Extract scans text and returns the fixed-phrase spans plus the merged
// locked ranges they cover, both sorted by start offset. The scan is a pure
// function of text and the loaded phrase tables.
func (e *Extractor) Extract(text string) ([]Span, []Range) {
	runes := []rune(text)
	lower := lowerRunes(runes)

	var spans []Span
	var locked []Range

	// Number+unit matches take priority over dictionary phrases.
	for _, m := range numberUnit.FindAllStringIndex(text, -1) {
		start, end := runeOffset(text, m[0]), runeOffset(text, m[1])
		spans = append(spans, Span{
			Start:      start,
			End:        end,
			Text:       string(runes[start:end]),
			Type:       TypeNumberUnit,
			Tag:        tag.Size,
			Confidence: 0.95,
		})
		locked = append(locked, Range{start, end})
	}

	for i := 0; i < len(runes); {
		if inLocked(i, locked) {
			i++
			continue
		}

		var (
			end   int
			entry Entry
			ok    bool
		)
		if isCJKStart(runes[i]) {
			end, entry, ok = e.cjk.longest(lower, i)
		} else {
			end, entry, ok = e.matchLatin(runes, lower, i)
		}
		if !ok {
			i++
			continue
		}

		spans = append(spans, Span{
			Start:      i,
			End:        end,
			Text:       string(runes[i:end]),
			Type:       entry.Type,
			Tag:        entry.Tag,
			Confidence: entry.Confidence,
		})
		locked = append(locked, Range{i, end})
		i = end
	}

	sort.Slice(spans, func(a, b int) bool { return spans[a].Start < spans[b].Start })
	return spans, MergeRanges(locked)
}

// matchLatin runs the Latin trie only at word boundaries: the match is
// rejected when the rune immediately before start or after end is an ASCII
// alphanumeric. CJK neighbours are natural boundaries and do not veto.
func (e *Extractor) matchLatin(runes, lower []rune, start int) (int, Entry, bool) {
	if start > 0 && isASCIIAlnum(runes[start-1]) {
		return 0, Entry{}, false
	}
	end, entry, ok := e.latin.longest(lower, start)
	if !ok {
		return 0, Entry{}, false
	}
	if end < len(runes) && isASCIIAlnum(runes[end]) {
		return 0, Entry{}, false
	}
	return end, entry, true
}

// MergeRanges sorts ranges and coalesces overlapping or touching intervals.
func MergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(a, b int) bool { return ranges[a].Start < ranges[b].Start })
	merged := []Range{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Unlocked subtracts locked ranges from [start,end) and returns the leftover
// sub-ranges in order. locked must be sorted and merged.
func Unlocked(start, end int, locked []Range) []Range {
	var parts []Range
	prev := start
	for _, l := range locked {
		if l.End <= start || l.Start >= end {
			continue
		}
		s := max(l.Start, start)
		if prev < s {
			parts = append(parts, Range{prev, s})
		}
		if l.End > prev {
			prev = min(l.End, end)
		}
	}
	if prev < end {
		parts = append(parts, Range{prev, end})
	}
	return parts
}

// Covered reports whether [start,end) lies entirely inside one locked range.
func Covered(start, end int, locked []Range) bool {
	for _, l := range locked {
		if l.Start <= start && end <= l.End {
			return true
		}
	}
	return false
}

func inLocked(pos int, locked []Range) bool {
	for _, l := range locked {
		if l.Start <= pos && pos < l.End {
			return true
		}
	}
	return false
}

func cjkDominant(s string) bool {
	runes := []rune(s)
	n := 0
	for _, r := range runes {
		if (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3040 && r <= 0x30FF) {
			n++
		}
	}
	return n*2 > len(runes)
}

func isCJKStart(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF)
}

func isASCIIAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// lowerRunes lowercases rune by rune so offsets stay aligned with the input.
func lowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// runeOffset converts a byte offset into text to a rune offset.
func runeOffset(text string, byteOff int) int {
	n := 0
	for i := range text {
		if i >= byteOff {
			break
		}
		n++
	}
	return n
}
