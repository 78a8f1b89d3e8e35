package lang

import "strings"

// NormalizedWord records the outcome of normalizing one Spanish token.
// Changes lists the rules applied, in order.
type NormalizedWord struct {
	Original   string
	Normalized string
	Changes    []string
	Confidence float64
}

// SpanishNormalizer reduces Spanish inflected forms to a base form: plural
// to singular, feminine to masculine. A dictionary of known base forms
// gates the riskier rules.
type SpanishNormalizer struct {
	dictionary map[string]struct{}
}

// NewSpanishNormalizer returns a normalizer with an empty dictionary.
// Gender normalization still works for the built-in adjective list.
func NewSpanishNormalizer() *SpanishNormalizer {
	return &SpanishNormalizer{dictionary: make(map[string]struct{})}
}

// AddWords registers known base forms used to validate rule output.
func (n *SpanishNormalizer) AddWords(words []string) {
	for _, w := range words {
		n.dictionary[strings.ToLower(w)] = struct{}{}
	}
}

// Normalize reduces one token. Words on the no-normalize list pass through
// untouched; irregular plurals resolve by table; otherwise plural and gender
// rules apply in sequence, each discounting confidence.
func (n *SpanishNormalizer) Normalize(word string) NormalizedWord {
	lower := strings.ToLower(word)

	if _, ok := noNormalize[lower]; ok {
		return NormalizedWord{Original: word, Normalized: word, Confidence: 1.0}
	}
	if singular, ok := irregularPlurals[lower]; ok {
		return NormalizedWord{
			Original:   word,
			Normalized: singular,
			Changes:    []string{"irregular_plural"},
			Confidence: 0.95,
		}
	}

	out := NormalizedWord{Original: word, Confidence: 1.0}

	if singular, rule := n.depluralize(lower); rule != "" {
		out.Changes = append(out.Changes, rule)
		out.Confidence *= 0.9
		lower = singular
	}
	if masc, rule := n.toMasculine(lower); rule != "" {
		out.Changes = append(out.Changes, rule)
		out.Confidence *= 0.85
		lower = masc
	}

	out.Normalized = lower
	return out
}

// NormalizeTokens normalizes a token slice in place order.
func (n *SpanishNormalizer) NormalizeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = n.Normalize(t).Normalized
	}
	return out
}

func (n *SpanishNormalizer) depluralize(word string) (string, string) {
	if runeLen(word) < 3 {
		return word, ""
	}

	if strings.HasSuffix(word, "ces") && runeLen(word) > 3 {
		if s := trimRunes(word, 3) + "z"; n.isValid(s) {
			return s, "ces→z"
		}
	}
	if strings.HasSuffix(word, "iones") && runeLen(word) > 5 {
		if s := trimRunes(word, 5) + "ión"; n.isValid(s) {
			return s, "iones→ión"
		}
	}
	if strings.HasSuffix(word, "es") && runeLen(word) > 3 && isConsonant(runeAt(word, -3)) {
		if s := trimRunes(word, 2); n.isValid(s) {
			return s, "es→∅"
		}
	}
	if strings.HasSuffix(word, "s") && runeLen(word) > 2 && isVowel(runeAt(word, -2)) {
		if s := trimRunes(word, 1); n.isValid(s) {
			return s, "s→∅"
		}
	}

	// Unverified fallbacks when the dictionary has no base form.
	if strings.HasSuffix(word, "s") && runeLen(word) > 2 && isVowel(runeAt(word, -2)) {
		return trimRunes(word, 1), "s→∅(unverified)"
	}
	if strings.HasSuffix(word, "es") && runeLen(word) > 3 && isConsonant(runeAt(word, -3)) {
		return trimRunes(word, 2), "es→∅(unverified)"
	}
	return word, ""
}

func (n *SpanishNormalizer) toMasculine(word string) (string, string) {
	if runeLen(word) < 2 {
		return word, ""
	}

	if strings.HasSuffix(word, "a") {
		masc := trimRunes(word, 1) + "o"
		if _, ok := adjectiveMasculine[masc]; ok || n.isValid(masc) {
			return masc, "a→o"
		}
	}
	if strings.HasSuffix(word, "as") && runeLen(word) > 2 {
		if masc := trimRunes(word, 2) + "os"; n.isValid(masc) {
			return masc, "as→os"
		}
	}
	if strings.HasSuffix(word, "ora") && runeLen(word) > 3 {
		if masc := trimRunes(word, 3) + "or"; n.isValid(masc) {
			return masc, "ora→or"
		}
	}
	if strings.HasSuffix(word, "esa") && runeLen(word) > 3 {
		if masc := trimRunes(word, 3) + "és"; n.isValid(masc) {
			return masc, "esa→és"
		}
	}
	return word, ""
}

func (n *SpanishNormalizer) isValid(word string) bool {
	if _, ok := n.dictionary[word]; ok {
		return true
	}
	_, ok := adjectiveMasculine[word]
	return ok
}

func isVowel(r rune) bool     { return strings.ContainsRune("aeiouáéíóú", r) }
func isConsonant(r rune) bool { return strings.ContainsRune("bcdfghjklmnpqrstvwxyz", r) }

// runeAt returns the rune at a negative offset from the end.
func runeAt(s string, fromEnd int) rune {
	runes := []rune(s)
	i := len(runes) + fromEnd
	if i < 0 || i >= len(runes) {
		return 0
	}
	return runes[i]
}

func runeLen(s string) int { return len([]rune(s)) }

// trimRunes drops n runes from the end.
func trimRunes(s string, n int) string {
	runes := []rune(s)
	if n >= len(runes) {
		return ""
	}
	return string(runes[:len(runes)-n])
}

var irregularPlurals = map[string]string{
	"pies":    "pie",
	"luces":   "luz",
	"voces":   "voz",
	"peces":   "pez",
	"nueces":  "nuez",
	"raíces":  "raíz",
	"lápices": "lápiz",
}

var noNormalize = toSet([]string{
	"plus", "bus", "gas", "as", "es", "os",
	"menos", "más", "tras", "antes",
	"dos", "tres", "seis", "diez",
	"lunes", "martes", "miércoles", "jueves", "viernes",
	"crisis", "análisis", "énfasis", "tesis", "síntesis",
	"virus", "corpus", "campus", "bonus", "status",
})

var adjectiveMasculine = toSet([]string{
	"negro", "blanco", "rojo", "amarillo", "azul",
	"largo", "corto", "alto", "bajo", "ancho", "estrecho",
	"nuevo", "viejo", "bueno", "malo", "bonito", "feo",
	"pequeño", "grande", "gordo", "delgado", "grueso", "fino",
	"duro", "blando", "suave", "áspero",
	"limpio", "sucio", "seco", "mojado", "húmedo",
	"frío", "caliente", "templado", "tibio",
	"rápido", "lento", "ligero", "pesado",
	"barato", "caro", "económico",
	"eléctrico", "electrónico", "digital", "manual", "automático",
	"portátil", "plegable", "ajustable", "lavable", "impermeable",
	"inalámbrico", "bluetooth", "recargable", "desechable",
	"profesional", "industrial", "comercial", "doméstico",
	"transparente", "opaco", "brillante", "mate",
	"redondo", "cuadrado", "rectangular", "ovalado",
	"plástico", "metálico", "cerámico", "textil",
	"deportivo", "casual", "formal", "elegante",
	"cómodo", "ergonómico", "práctico", "funcional",
	"resistente", "duradero", "robusto", "frágil",
	"moderno", "clásico", "vintage", "retro",
	"inteligente", "táctil",
})

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
