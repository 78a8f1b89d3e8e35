// Package segment splits mixed-script text into runs of a single writing
// system so each run can be handed to the right tokenizer. E-commerce titles
// routinely mix scripts ("New Balance 跑步鞋 メンズ 10.5cm"); whole-string
// language detection mis-tokenizes such input.
package segment

import "unicode"

// Script classifies a character's writing system.
type Script int

const (
	CJK Script = iota // Han ideographs
	Kana
	Hangul
	Latin
	Number
	Space
	Punct
	Other
)

func (s Script) String() string {
	switch s {
	case CJK:
		return "cjk"
	case Kana:
		return "kana"
	case Hangul:
		return "hangul"
	case Latin:
		return "latin"
	case Number:
		return "number"
	case Space:
		return "space"
	case Punct:
		return "punct"
	}
	return "other"
}

// Segment is a maximal run of same-script characters. Start and End are rune
// offsets into the input text.
type Segment struct {
	Text   string
	Script Script
	Start  int
	End    int
}

// Family identifies which tokenizer should process a segment.
type Family string

const (
	FamilyChinese     Family = "chinese"
	FamilyJapanese    Family = "japanese"
	FamilyKorean      Family = "korean"
	FamilyEuropean    Family = "european"
	FamilyPassthrough Family = "passthrough"
)

// Segmenter splits text by script. The zero value merges adjacent
// Latin/Number/Punct runs, which keeps "10.5cm" and "M-Size" whole.
type Segmenter struct {
	// DisableLatinMerge turns off merging between Latin, Number and Punct
	// runs, emitting each as its own segment.
	DisableLatinMerge bool
}

// Segment partitions text into script runs. Whitespace is consumed, never
// emitted. Empty or all-whitespace input yields nil.
func (s *Segmenter) Segment(text string) []Segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var segs []Segment
	var cur []rune
	curScript := Other
	curStart := 0
	open := false

	flush := func(end int) {
		if open && len(cur) > 0 {
			segs = append(segs, Segment{
				Text:   string(cur),
				Script: curScript,
				Start:  curStart,
				End:    end,
			})
		}
		cur = cur[:0]
		open = false
	}

	for i, r := range runes {
		sc := Classify(r)

		if sc == Space {
			flush(i)
			curStart = i + 1
			continue
		}

		if open && sc != curScript {
			if !s.DisableLatinMerge && mergeable(curScript) && mergeable(sc) {
				cur = append(cur, r)
				// Only Number relabels to Latin. A run opened on
				// punctuation stays Punct and keeps its passthrough
				// routing even after Latin runes merge in.
				if curScript == Number {
					curScript = Latin
				}
				continue
			}
			flush(i)
			cur = append(cur, r)
			curScript = sc
			curStart = i
			open = true
			continue
		}

		cur = append(cur, r)
		if !open {
			curScript = sc
			curStart = i
			open = true
		}
	}
	flush(len(runes))

	return s.postMerge(segs)
}

// postMerge coalesces mergeable segments separated by at most one space, so
// "New Balance" survives as a single Latin segment. Offsets stay anchored to
// the original text; the swallowed gap is re-inserted as a space.
func (s *Segmenter) postMerge(segs []Segment) []Segment {
	if s.DisableLatinMerge || len(segs) == 0 {
		return segs
	}

	merged := segs[:0:0]
	cur := segs[0]
	for _, next := range segs[1:] {
		gap := next.Start - cur.End
		if mergeable(cur.Script) && mergeable(next.Script) && gap <= 1 {
			pad := ""
			if gap == 1 {
				pad = " "
			}
			cur = Segment{
				Text:   cur.Text + pad + next.Text,
				Script: Latin,
				Start:  cur.Start,
				End:    next.End,
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}

func mergeable(s Script) bool {
	return s == Latin || s == Number || s == Punct
}

// TokenizerFor maps a script to its tokenizer family.
func (s *Segmenter) TokenizerFor(sc Script) Family {
	switch sc {
	case CJK:
		return FamilyChinese
	case Kana:
		return FamilyJapanese
	case Hangul:
		return FamilyKorean
	case Latin:
		return FamilyEuropean
	case Number, Punct, Other:
		return FamilyPassthrough
	}
	return FamilyEuropean
}

// Classify reports the script class of a single rune. The ranges follow the
// Unicode blocks relevant to the supported languages rather than the full
// unicode.Scripts tables, so fullwidth Latin counts as Latin and Kangxi
// radicals count as CJK.
func Classify(r rune) Script {
	switch {
	case unicode.IsSpace(r):
		return Space
	case unicode.IsDigit(r):
		return Number
	case isCJK(r):
		return CJK
	case isKana(r):
		return Kana
	case isHangul(r):
		return Hangul
	case isLatin(r):
		return Latin
	case unicode.IsPunct(r):
		return Punct
	}
	return Other
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // unified ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // extension B
		(r >= 0x2A700 && r <= 0x2B73F) || // extension C
		(r >= 0x2B740 && r <= 0x2B81F) || // extension D
		(r >= 0xF900 && r <= 0xFAFF) || // compatibility ideographs
		(r >= 0x2F00 && r <= 0x2FDF) // Kangxi radicals
}

func isKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || // hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // katakana
		(r >= 0x31F0 && r <= 0x31FF) || // phonetic extensions
		(r >= 0xFF65 && r <= 0xFF9F) // halfwidth katakana
}

func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0x1100 && r <= 0x11FF) ||
		(r >= 0x3130 && r <= 0x318F)
}

func isLatin(r rune) bool {
	return (r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 0x00C0 && r <= 0x00FF) || // Latin-1 supplement
		(r >= 0x0100 && r <= 0x024F) || // extended A and B
		(r >= 0x1E00 && r <= 0x1EFF) || // extended additional
		(r >= 0xFF21 && r <= 0xFF3A) || // fullwidth A-Z
		(r >= 0xFF41 && r <= 0xFF5A) // fullwidth a-z
}
