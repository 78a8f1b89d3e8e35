// Package phrase re-joins fixed multi-word phrases that whitespace
// tokenization split apart ("long sleeve", "high waist", "manga larga").
// Matching is greedy longest-first over lower-cased token tuples, so a
// three-word phrase always beats its two-word prefix.
package phrase

import "strings"

// Merged is one output token of the merger. StartIdx and EndIdx index the
// original token slice, half-open.
type Merged struct {
	Text         string
	Original     []string
	StartIdx     int
	EndIdx       int
	SuggestedTag string
	Confidence   float64
}

// IsMerged reports whether this token was produced by joining several input
// tokens.
func (m Merged) IsMerged() bool { return m.EndIdx-m.StartIdx > 1 }

type entry struct {
	tag        string
	confidence float64
}

// Merger holds the phrase table. Construct with NewMerger; Add registers
// additional phrases.
type Merger struct {
	phrases map[string]entry
	maxLen  int
}

// NewMerger returns a merger with an empty phrase table.
func NewMerger() *Merger {
	return &Merger{phrases: make(map[string]entry), maxLen: 1}
}

// Add registers a fixed phrase given as its token sequence. Lookup is
// case-insensitive.
func (m *Merger) Add(tokens []string, tag string, confidence float64) {
	if len(tokens) == 0 {
		return
	}
	m.phrases[key(tokens)] = entry{tag: tag, confidence: confidence}
	if len(tokens) > m.maxLen {
		m.maxLen = len(tokens)
	}
}

// AddString registers a phrase given as a space-separated string.
func (m *Merger) AddString(phrase, tag string, confidence float64) {
	m.Add(strings.Fields(phrase), tag, confidence)
}

// Merge consolidates tokens left to right. At each position it tries phrase
// lengths from min(maxLen, remaining) down to 1 and consumes the first table
// hit; unmatched tokens pass through as single-token results with no
// suggested tag. Original casing is preserved in the joined text. Runs in
// O(n*maxLen).
func (m *Merger) Merge(tokens []string) []Merged {
	if len(tokens) == 0 {
		return nil
	}

	var result []Merged
	for i := 0; i < len(tokens); {
		matched := false
		limit := min(m.maxLen, len(tokens)-i)
		for n := limit; n >= 1; n-- {
			e, ok := m.phrases[key(tokens[i:i+n])]
			if !ok {
				continue
			}
			result = append(result, Merged{
				Text:         strings.Join(tokens[i:i+n], " "),
				Original:     tokens[i : i+n],
				StartIdx:     i,
				EndIdx:       i + n,
				SuggestedTag: e.tag,
				Confidence:   e.confidence,
			})
			i += n
			matched = true
			break
		}
		if !matched {
			result = append(result, Merged{
				Text:     tokens[i],
				Original: tokens[i : i+1],
				StartIdx: i,
				EndIdx:   i + 1,
			})
			i++
		}
	}
	return result
}

// MergeStrings is a convenience wrapper returning only the joined texts.
func (m *Merger) MergeStrings(tokens []string) []string {
	merged := m.Merge(tokens)
	out := make([]string, len(merged))
	for i, t := range merged {
		out[i] = t.Text
	}
	return out
}

func key(tokens []string) string {
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}
	return strings.Join(lowered, "\x00")
}
