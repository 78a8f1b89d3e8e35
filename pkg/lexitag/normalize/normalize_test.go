package normalize

import "testing"

func TestNormalize(t *testing.T) {
	var p Preprocessor
	cases := []struct {
		in   string
		want string
	}{
		{"  Nike  running   shoes ", "Nike running shoes"},
		{"ＮＩＫＥ　１０５", "NIKE 105"},               // fullwidth letters, ideographic space
		{"yoga-mat 10.5cm", "yoga-mat 10.5cm"}, // preserved punctuation
		{"l'eau + sel & poivre", "l'eau + sel & poivre"},
		{"跑步鞋【新款】", "跑步鞋 新款"},
		{"shoes!!!@#", "shoes"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := p.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeKeepsCJK(t *testing.T) {
	var p Preprocessor
	if got := p.Normalize("小米手机 黑色"); got != "小米手机 黑色" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestNormalizeNFKC(t *testing.T) {
	var p Preprocessor
	// Fullwidth letters fold to ASCII under NFKC.
	if got := p.Normalize("ｂａｇ"); got != "bag" {
		t.Errorf("Normalize = %q, want halfwidth fold", got)
	}
}
