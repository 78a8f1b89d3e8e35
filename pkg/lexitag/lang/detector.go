// Package lang provides language detection and language-specific token
// post-processing: Spanish morphological normalization and Japanese
// compound re-merging.
package lang

import "strings"

// Language is an ISO-639-1 style language code.
type Language string

const (
	Chinese  Language = "zh"
	Japanese Language = "ja"
	English  Language = "en"
	German   Language = "de"
	French   Language = "fr"
	Spanish  Language = "es"
	Unknown  Language = "unknown"
	Mixed    Language = "mixed"
)

// Detect returns the dominant language of text. Any kana makes it Japanese;
// pure Han is Chinese; pure Latin is refined to a European language by
// marker characters; Han mixed with Latin is Mixed.
func Detect(text string) Language {
	if text == "" {
		return Unknown
	}

	var hiragana, katakana, han, latin int
	for _, r := range text {
		switch {
		case r >= 0x3040 && r <= 0x309F:
			hiragana++
		case r >= 0x30A0 && r <= 0x30FF:
			katakana++
		case r >= 0x4E00 && r <= 0x9FFF:
			han++
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= 0x00C0 && r <= 0x00FF:
			latin++
		}
	}

	switch {
	case hiragana > 0 || katakana > 0:
		return Japanese
	case han > 0 && latin == 0:
		return Chinese
	case latin > 0 && han == 0:
		return detectEuropean(text)
	case han > 0 && latin > 0:
		return Mixed
	}
	return Unknown
}

func detectEuropean(text string) Language {
	lower := strings.ToLower(text)
	if strings.ContainsAny(lower, "äöüß") {
		return German
	}
	if strings.ContainsAny(lower, "çœæ") {
		return French
	}
	if strings.ContainsAny(lower, "ñ¿¡") {
		return Spanish
	}
	return English
}
