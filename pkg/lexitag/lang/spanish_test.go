package lang

import (
	"reflect"
	"testing"
)

func newTestNormalizer() *SpanishNormalizer {
	n := NewSpanishNormalizer()
	n.AddWords([]string{
		"negro", "rojo", "azul", "verde", "blanco",
		"largo", "corto", "grande", "pequeño",
		"inalámbrico", "eléctrico", "portátil",
		"pantalón", "camiseta", "vestido",
		"ratón", "teclado", "auricular",
	})
	return n
}

func TestSpanishNormalizePlural(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		word string
		want string
	}{
		{"negros", "negro"},
		{"azules", "azul"},
		{"camisetas", "camiseta"},
		{"auriculares", "auricular"},
	}

	for _, tc := range cases {
		got := n.Normalize(tc.word)
		if got.Normalized != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.word, got.Normalized, tc.want)
		}
		if len(got.Changes) == 0 {
			t.Errorf("Normalize(%q): expected at least one change rule", tc.word)
		}
		if got.Confidence >= 1.0 {
			t.Errorf("Normalize(%q): confidence %v should be discounted", tc.word, got.Confidence)
		}
	}
}

func TestSpanishNormalizeGender(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		word string
		want string
	}{
		{"negra", "negro"},
		{"blanca", "blanco"},
		{"inalámbrica", "inalámbrico"},
		{"eléctrica", "eléctrico"},
	}

	for _, tc := range cases {
		if got := n.Normalize(tc.word).Normalized; got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.word, got, tc.want)
		}
	}
}

func TestSpanishNormalizePluralFeminine(t *testing.T) {
	n := newTestNormalizer()

	// negras → negra (plural) → negro (gender), two rules stacked
	got := n.Normalize("negras")
	if got.Normalized != "negro" {
		t.Fatalf("Normalize(negras) = %q, want negro", got.Normalized)
	}
	if len(got.Changes) != 2 {
		t.Errorf("Normalize(negras) changes = %v, want two rules", got.Changes)
	}
}

func TestSpanishNoNormalize(t *testing.T) {
	n := newTestNormalizer()

	for _, word := range []string{"plus", "bus", "gas", "lunes", "crisis", "más"} {
		got := n.Normalize(word)
		if got.Normalized != word {
			t.Errorf("Normalize(%q) = %q, want unchanged", word, got.Normalized)
		}
		if got.Confidence != 1.0 {
			t.Errorf("Normalize(%q) confidence = %v, want 1.0", word, got.Confidence)
		}
	}
}

func TestSpanishIrregularPlural(t *testing.T) {
	n := newTestNormalizer()

	got := n.Normalize("luces")
	if got.Normalized != "luz" {
		t.Errorf("Normalize(luces) = %q, want luz", got.Normalized)
	}
	if got.Confidence != 0.95 {
		t.Errorf("Normalize(luces) confidence = %v, want 0.95", got.Confidence)
	}
}

func TestSpanishNormalizeTokens(t *testing.T) {
	n := newTestNormalizer()

	got := n.NormalizeTokens([]string{"camisetas", "negras", "para", "lunes"})
	want := []string{"camiseta", "negro", "para", "lunes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTokens = %v, want %v", got, want)
	}
}
