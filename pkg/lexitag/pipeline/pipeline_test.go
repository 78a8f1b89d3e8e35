package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/lexitag/pkg/lexitag/dict"
	"github.com/cognicore/lexitag/pkg/lexitag/span"
	"github.com/cognicore/lexitag/pkg/lexitag/tag"
)

func writeDict(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestDicts(t *testing.T) *dict.Manager {
	t.Helper()
	root := t.TempDir()
	writeDict(t, root, "brands/global.json",
		`{"entries":[{"word":"nike","confidence":0.95},{"word":"new balance","confidence":0.95}]}`)
	writeDict(t, root, "products.json",
		`{"entries":[{"word":"yoga mat","confidence":0.9},{"word":"leggings","confidence":0.9},{"word":"ボストンバッグ","confidence":0.9}]}`)
	writeDict(t, root, "colors.json",
		`{"entries":[{"word":"black","confidence":0.9},{"word":"黑色","confidence":0.9}]}`)
	m := dict.NewManager(root)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	return m
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return New(Config{Dicts: newTestDicts(t)})
}

func findToken(results []tag.Result, token string) (tag.Result, bool) {
	for _, r := range results {
		if r.Token == token {
			return r, true
		}
	}
	return tag.Result{}, false
}

func TestProcessEnglishKeyword(t *testing.T) {
	p := newTestPipeline(t)
	res, err := p.Process(context.Background(), "Nike yoga mat 10.5cm")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []string{"Nike", "yoga mat", "10.5cm"}
	if !reflect.DeepEqual(res.Tokens, want) {
		t.Fatalf("Tokens = %v, want %v", res.Tokens, want)
	}

	brand, _ := findToken(res.Tagged, "Nike")
	if brand.Primary != tag.Brand || brand.Method != "preset" {
		t.Errorf("Nike = %+v, want brand via preset", brand)
	}
	product, _ := findToken(res.Tagged, "yoga mat")
	if product.Primary != tag.Product {
		t.Errorf("yoga mat = %+v, want product", product)
	}
	size, _ := findToken(res.Tagged, "10.5cm")
	if size.Primary != tag.Size || size.Confidence != 0.95 {
		t.Errorf("10.5cm = %+v, want size at 0.95", size)
	}

	if !reflect.DeepEqual(res.Summary[tag.Brand], []string{"Nike"}) {
		t.Errorf("Summary[brand] = %v", res.Summary[tag.Brand])
	}
}

func TestProcessLongestBrandWins(t *testing.T) {
	p := newTestPipeline(t)
	res, err := p.Process(context.Background(), "new balance running shoes")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	got, ok := findToken(res.Tagged, "new balance")
	if !ok {
		t.Fatalf("Tokens = %v, want the two-word brand kept whole", res.Tokens)
	}
	if got.Primary != tag.Brand {
		t.Errorf("new balance = %+v, want brand", got)
	}
	if _, ok := findToken(res.Tagged, "balance"); ok {
		t.Error("brand was re-split by tokenization")
	}
}

func TestProcessBoundaryVeto(t *testing.T) {
	ex := span.NewExtractor()
	ex.Add("one", tag.Brand, 0.9, span.TypeBrand)
	p := New(Config{Extractor: ex})

	res, err := p.Process(context.Background(), "someone")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !reflect.DeepEqual(res.Tokens, []string{"someone"}) {
		t.Errorf("Tokens = %v, want substring match vetoed", res.Tokens)
	}
}

func TestProcessPresetLosesToStrongerResult(t *testing.T) {
	root := t.TempDir()
	writeDict(t, root, "products.json",
		`{"entries":[{"word":"yoga mat","confidence":0.99}]}`)
	m := dict.NewManager(root)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	p := New(Config{Dicts: m})

	res, err := p.Process(context.Background(), "yoga mat")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	got, ok := findToken(res.Tagged, "yoga mat")
	if !ok {
		t.Fatalf("Tokens = %v", res.Tokens)
	}
	if got.Method == "preset" {
		t.Errorf("got %+v, want dictionary result kept over weaker preset", got)
	}
	if got.Primary != tag.Product {
		t.Errorf("got %+v, want product", got)
	}
}

func TestProcessChineseKeyword(t *testing.T) {
	p := newTestPipeline(t)
	res, err := p.Process(context.Background(), "小米手机黑色")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(res.Tokens) < 2 {
		t.Fatalf("Tokens = %v, want the run split", res.Tokens)
	}
	joined := ""
	for _, tok := range res.Tokens {
		joined += tok
	}
	if joined != "小米手机黑色" {
		t.Errorf("tokens %v do not reassemble the input", res.Tokens)
	}
	if got, ok := findToken(res.Tagged, "黑色"); ok {
		if got.Primary != tag.Color {
			t.Errorf("黑色 = %+v, want color", got)
		}
	}
}

func TestProcessJapaneseKeyword(t *testing.T) {
	p := newTestPipeline(t)
	res, err := p.Process(context.Background(), "ボストンバッグ メンズ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	got, ok := findToken(res.Tagged, "ボストンバッグ")
	if !ok {
		t.Fatalf("Tokens = %v, want the compound kept or re-merged", res.Tokens)
	}
	if got.Primary != tag.Product {
		t.Errorf("ボストンバッグ = %+v, want product", got)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	p := New(Config{})
	res, err := p.Process(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(res.Tokens) != 0 || len(res.Tagged) != 0 {
		t.Errorf("Result = %+v, want empty", res)
	}
}

func TestBatchIsolation(t *testing.T) {
	p := newTestPipeline(t)
	out := p.Batch(context.Background(), []string{"nike leggings", "", "black yoga mat"})
	if len(out) != 3 {
		t.Fatalf("Batch returned %d results, want 3", len(out))
	}
	if out[0].Original != "nike leggings" || len(out[0].Tokens) == 0 {
		t.Errorf("result 0 = %+v", out[0])
	}
	if out[1].Original != "" || len(out[1].Tokens) != 0 {
		t.Errorf("result 1 = %+v, want empty", out[1])
	}
	if got, ok := findToken(out[2].Tagged, "black"); !ok || got.Primary != tag.Color {
		t.Errorf("black = %+v, want color", got)
	}
}

type crashTokenizer struct{}

func (crashTokenizer) Tokenize(text string) []string {
	panic("tokenizer crash on " + text)
}

func TestBatchSurvivesTokenizerPanic(t *testing.T) {
	p := New(Config{Dicts: newTestDicts(t), Chinese: crashTokenizer{}})
	out := p.Batch(context.Background(), []string{"nike leggings", "小米手机", "black yoga mat"})
	if len(out) != 3 {
		t.Fatalf("Batch returned %d results, want 3", len(out))
	}
	if out[1].Original != "小米手机" || len(out[1].Tokens) != 0 || len(out[1].Tagged) != 0 {
		t.Errorf("result 1 = %+v, want empty result for the crashing keyword", out[1])
	}
	if len(out[0].Tokens) == 0 || len(out[2].Tokens) == 0 {
		t.Errorf("neighbors affected: %v / %v", out[0].Tokens, out[2].Tokens)
	}
	if got, ok := findToken(out[2].Tagged, "black"); !ok || got.Primary != tag.Color {
		t.Errorf("black = %+v, want color", got)
	}
}
