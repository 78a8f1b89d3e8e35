package tag

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/lexitag/pkg/lexitag/dict"
	"github.com/cognicore/lexitag/pkg/lexitag/lang"
)

func writeDict(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestTagger(t *testing.T) *Tagger {
	t.Helper()
	root := t.TempDir()
	writeDict(t, root, "brands/global.json", `{"entries":[
		{"word":"nike","confidence":1.0},
		{"word":"uniqlo","confidence":1.0}
	]}`)
	writeDict(t, root, "products.json", `{"entries":[
		{"word":"leggings","confidence":0.9},
		{"word":"yoga mat","confidence":0.95},
		{"word":"camiseta","confidence":0.9},
		{"word":"ボストンバッグ","confidence":0.9}
	]}`)
	writeDict(t, root, "colors.json", `{"entries":[
		{"word":"negro","confidence":0.9},
		{"word":"black","confidence":0.9}
	]}`)

	m := dict.NewManager(root)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewTagger(m)
}

func TestTagStopword(t *testing.T) {
	tg := newTestTagger(t)

	results := tg.Tag([]string{"leggings", "for", "women"}, lang.English)
	stop := results[1]
	if stop.Primary != Attribute || stop.Method != "stopword" {
		t.Errorf("stopword result = %+v, want attribute via stopword", stop)
	}
	if stop.Confidence != 0.85 {
		t.Errorf("stopword confidence = %v, want 0.85", stop.Confidence)
	}
}

func TestTagDictionaryMatch(t *testing.T) {
	tg := newTestTagger(t)

	results := tg.Tag([]string{"nike", "leggings", "black"}, lang.English)

	if results[0].Primary != Brand || results[0].Method != "dict" {
		t.Errorf("nike = %+v, want brand via dict", results[0])
	}
	if results[1].Primary != Product {
		t.Errorf("leggings = %+v, want product", results[1])
	}
	if results[2].Primary != Color {
		t.Errorf("black = %+v, want color", results[2])
	}
}

func TestTagSpanishNormalizedLookup(t *testing.T) {
	tg := newTestTagger(t)

	// camisetas is not in the dictionary but its singular is.
	results := tg.Tag([]string{"camisetas", "negras"}, lang.Spanish)

	if results[0].Primary != Product || results[0].Method != "dict_normalized" {
		t.Errorf("camisetas = %+v, want product via dict_normalized", results[0])
	}
	if results[0].Confidence != 0.9*0.95 {
		t.Errorf("normalized confidence = %v, want discounted 0.855", results[0].Confidence)
	}
	if results[1].Primary != Color {
		t.Errorf("negras = %+v, want color via normalization", results[1])
	}
}

func TestTagSizePattern(t *testing.T) {
	tg := newTestTagger(t)

	for _, token := range []string{"10.5cm", "500ml", "XL", "9x12", "15l", "2kg"} {
		results := tg.Tag([]string{"mat", token}, lang.English)
		got := results[1]
		if got.Primary != Size {
			t.Errorf("Tag(%q) primary = %q, want size", token, got.Primary)
		}
		if got.Confidence < 0.95 {
			t.Errorf("Tag(%q) confidence = %v, want >= 0.95", token, got.Confidence)
		}
	}
}

func TestTagRuleKeywords(t *testing.T) {
	tg := newTestTagger(t)

	cases := []struct {
		token string
		want  string
	}{
		{"waterproof", Feature},
		{"running", Scenario},
		{"women", Audience},
		{"backpack", Product},
		{"damen", Audience},
		{"防水", Feature},
	}
	for _, tc := range cases {
		results := tg.Tag([]string{"xx", tc.token}, "")
		if got := results[1].Primary; got != tc.want {
			t.Errorf("Tag(%q) primary = %q, want %q", tc.token, got, tc.want)
		}
	}
}

func TestTagHeuristicBrandFirstPosition(t *testing.T) {
	tg := newTestTagger(t)

	results := tg.Tag([]string{"Lululemon", "leggings"}, lang.English)
	if results[0].Primary != Brand || results[0].Method != "heuristic" {
		t.Errorf("Lululemon = %+v, want brand via heuristic", results[0])
	}
	if results[0].Confidence != 0.65 {
		t.Errorf("heuristic brand confidence = %v, want 0.65", results[0].Confidence)
	}

	// Same word later in the sequence gets no brand heuristic.
	results = tg.Tag([]string{"leggings", "Lululemon"}, lang.English)
	if results[1].Primary == Brand {
		t.Errorf("non-initial capitalized word should not be a brand: %+v", results[1])
	}
}

func TestTagDefaultAttribute(t *testing.T) {
	tg := newTestTagger(t)

	results := tg.Tag([]string{"zzqq", "wwrr"}, lang.English)
	for _, r := range results {
		if r.Primary != Attribute || r.Method != "default" || r.Confidence != 0.5 {
			t.Errorf("unknown token = %+v, want default attribute at 0.5", r)
		}
	}
}

func TestTagContextNumberUnit(t *testing.T) {
	tg := newTestTagger(t)

	results := tg.Tag([]string{"10.5", "cm"}, lang.English)
	unit := results[1]
	if unit.Primary != Size || unit.Method != "context" {
		t.Errorf("cm after number = %+v, want size via context", unit)
	}
	if unit.Confidence != 0.95 {
		t.Errorf("context size confidence = %v, want 0.95", unit.Confidence)
	}
	if !reflect.DeepEqual(unit.Tags, []string{Size}) {
		t.Errorf("context size tags = %v, want [size]", unit.Tags)
	}
}

func TestTagContextBoost(t *testing.T) {
	tg := newTestTagger(t)

	// brand followed by product gets a small confidence boost over the
	// bare dictionary confidence.
	boosted := tg.Tag([]string{"nike", "leggings"}, lang.English)
	alone := tg.Tag([]string{"black", "leggings", "xx"}, lang.English)
	if boosted[1].Confidence <= alone[1].Confidence-0.02 {
		t.Errorf("brand context should boost product: %v vs %v",
			boosted[1].Confidence, alone[1].Confidence)
	}
}

func TestTagJapaneseCompoundPass(t *testing.T) {
	tg := newTestTagger(t)

	// ボストンバッグ is in the product dictionary, so the compound pass
	// re-joins the split tokens and the dictionary then matches.
	results := tg.Tag([]string{"ボストン", "バッグ"}, lang.Japanese)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 after compound merge: %+v", len(results), results)
	}
	if results[0].Token != "ボストンバッグ" || results[0].Primary != Product {
		t.Errorf("merged token = %+v, want product ボストンバッグ", results[0])
	}
}

func TestResolveIncompatibleTags(t *testing.T) {
	cands := []Candidate{
		{Tag: Color, Confidence: 0.9, Method: "dict"},
		{Tag: Size, Confidence: 0.85, Method: "pattern"},
	}
	r := resolve("x", cands)
	if !reflect.DeepEqual(r.Tags, []string{Color}) {
		t.Errorf("color+size tags = %v, want color only", r.Tags)
	}
}

func TestResolveCompatibleSecondary(t *testing.T) {
	cands := []Candidate{
		{Tag: Product, Confidence: 0.9, Method: "dict"},
		{Tag: Feature, Confidence: 0.85, Method: "rule"},
		{Tag: Scenario, Confidence: 0.8, Method: "rule"},
	}
	r := resolve("x", cands)
	if !reflect.DeepEqual(r.Tags, []string{Product, Feature}) {
		t.Errorf("tags = %v, want [product feature]", r.Tags)
	}
}

func TestResolveTieBreakByPriority(t *testing.T) {
	cands := []Candidate{
		{Tag: Feature, Confidence: 0.85, Method: "rule"},
		{Tag: Product, Confidence: 0.85, Method: "rule"},
	}
	r := resolve("x", cands)
	if r.Primary != Product {
		t.Errorf("equal confidence primary = %q, want product by priority", r.Primary)
	}
}
