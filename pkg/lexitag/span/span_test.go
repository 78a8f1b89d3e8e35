package span

import (
	"reflect"
	"testing"

	"github.com/cognicore/lexitag/pkg/lexitag/tag"
)

func newTestExtractor() *Extractor {
	e := NewExtractor()
	e.AddBrand("nike", 0.95)
	e.AddBrand("new balance", 0.95)
	e.AddBrand("balance", 0.9)
	e.AddBrand("小米", 0.95)
	e.Add("memory foam", tag.Feature, 0.9, TypeFixedPhrase)
	return e
}

func TestExtractLongestMatch(t *testing.T) {
	e := newTestExtractor()
	spans, _ := e.Extract("new balance 574")
	if len(spans) != 1 {
		t.Fatalf("spans = %+v, want one", spans)
	}
	if spans[0].Text != "new balance" || spans[0].Start != 0 || spans[0].End != 11 {
		t.Errorf("span = %+v, want the longer brand", spans[0])
	}
	if spans[0].Tag != tag.Brand || spans[0].Type != TypeBrand {
		t.Errorf("span = %+v", spans[0])
	}
}

func TestExtractBoundaryVeto(t *testing.T) {
	e := NewExtractor()
	e.AddBrand("one", 0.9)

	spans, locked := e.Extract("someone")
	if len(spans) != 0 || len(locked) != 0 {
		t.Errorf("Extract(someone) = %+v, want no substring match", spans)
	}

	// A CJK neighbour is a natural boundary and does not veto.
	spans, _ = e.Extract("one跑")
	if len(spans) != 1 || spans[0].Text != "one" {
		t.Errorf("Extract(one跑) = %+v, want the brand", spans)
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	e := newTestExtractor()
	spans, _ := e.Extract("NIKE Air")
	if len(spans) != 1 || spans[0].Text != "NIKE" {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestExtractNumberUnit(t *testing.T) {
	e := NewExtractor()
	spans, locked := e.Extract("瑜伽垫 10.5cm 加厚")
	if len(spans) != 1 {
		t.Fatalf("spans = %+v, want number+unit", spans)
	}
	s := spans[0]
	if s.Text != "10.5cm" || s.Tag != tag.Size || s.Confidence != 0.95 || s.Type != TypeNumberUnit {
		t.Errorf("span = %+v", s)
	}
	if s.Start != 4 || s.End != 10 {
		t.Errorf("range = [%d,%d), want rune offsets [4,10)", s.Start, s.End)
	}
	if !reflect.DeepEqual(locked, []Range{{4, 10}}) {
		t.Errorf("locked = %v", locked)
	}
}

func TestExtractCJKPhrase(t *testing.T) {
	e := newTestExtractor()
	spans, _ := e.Extract("小米手机")
	if len(spans) != 1 || spans[0].Text != "小米" {
		t.Fatalf("spans = %+v", spans)
	}
	if spans[0].Start != 0 || spans[0].End != 2 {
		t.Errorf("range = [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestExtractSortedAndLockedMerged(t *testing.T) {
	e := newTestExtractor()
	spans, locked := e.Extract("memory foam nike 500ml")
	if len(spans) != 3 {
		t.Fatalf("spans = %+v", spans)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].Start {
			t.Errorf("spans out of order: %+v", spans)
		}
	}
	want := []Range{{0, 11}, {12, 16}, {17, 22}}
	if !reflect.DeepEqual(locked, want) {
		t.Errorf("locked = %v, want %v", locked, want)
	}
}

func TestExtractIdempotent(t *testing.T) {
	e := newTestExtractor()
	spans, _ := e.Extract("new balance 跑步 小米 memory foam 10.5cm")
	if len(spans) == 0 {
		t.Fatal("no spans extracted")
	}
	for _, s := range spans {
		again, _ := e.Extract(s.Text)
		if len(again) != 1 {
			t.Fatalf("Extract(%q) = %+v, want one span", s.Text, again)
		}
		if again[0].Tag != s.Tag || again[0].Confidence != s.Confidence {
			t.Errorf("Extract(%q) = %s@%v, want %s@%v",
				s.Text, again[0].Tag, again[0].Confidence, s.Tag, s.Confidence)
		}
	}
}

func TestMergeRanges(t *testing.T) {
	got := MergeRanges([]Range{{5, 8}, {0, 3}, {2, 6}, {10, 12}})
	want := []Range{{0, 8}, {10, 12}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeRanges = %v, want %v", got, want)
	}
	if MergeRanges(nil) != nil {
		t.Error("MergeRanges(nil) != nil")
	}
}

func TestUnlocked(t *testing.T) {
	locked := []Range{{2, 4}, {6, 8}}
	got := Unlocked(0, 10, locked)
	want := []Range{{0, 2}, {4, 6}, {8, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unlocked = %v, want %v", got, want)
	}

	if got := Unlocked(2, 4, locked); got != nil {
		t.Errorf("fully locked range = %v, want nil", got)
	}
	if got := Unlocked(0, 2, locked); !reflect.DeepEqual(got, []Range{{0, 2}}) {
		t.Errorf("untouched range = %v", got)
	}
}

func TestCovered(t *testing.T) {
	locked := []Range{{0, 4}, {10, 20}}
	if !Covered(12, 18, locked) {
		t.Error("inner range not covered")
	}
	if Covered(3, 11, locked) {
		t.Error("straddling range reported covered")
	}
}
