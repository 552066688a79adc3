package pdfsource

import "testing"

// word draws s one glyph per rune, each w wide, starting at x.
func word(s string, x, y, w float64) []glyph {
	var res []glyph
	for _, r := range s {
		res = append(res, glyph{S: string(r), X: x, Y: y, W: w, Size: 10})
		x += w
	}
	return res
}

func TestMerge(t *testing.T) {
	var glyphs []glyph
	glyphs = append(glyphs, word("MONEY", 400, 680, 6)...)
	glyphs = append(glyphs, word("IN", 433, 680, 6)...)     // 3pt gap: space
	glyphs = append(glyphs, word("BALANCE", 540, 680, 6)...) // far away: new fragment
	glyphs = append(glyphs, word("1.000,00", 540, 650, 5)...)
	glyphs = append(glyphs, glyph{S: " ", X: 580, Y: 650, W: 2, Size: 10})
	glyphs = append(glyphs, word("€", 582, 650, 5)...)
	glyphs = append(glyphs, word("  ", 50, 600, 2)...)

	got := merge(glyphs)
	want := []struct {
		text  string
		x, y  float64
		width float64
	}{
		{"MONEY IN", 400, 680, 45},
		{"BALANCE", 540, 680, 42},
		{"1.000,00 €", 540, 650, 47},
	}
	if len(got) != len(want) {
		t.Fatalf("merge() = %+v, want %d fragments", got, len(want))
	}
	for i, w := range want {
		f := got[i]
		if f.Text != w.text || f.X != w.x || f.Y != w.y || f.Width != w.width || f.Height != 10 {
			t.Errorf("fragment %d = %+v, want %q at (%v, %v) width %v", i, f, w.text, w.x, w.y, w.width)
		}
	}
}

func TestMerge_Baseline(t *testing.T) {
	// a glyph slightly off the baseline (subscript, rounding) stays in the word
	glyphs := []glyph{
		{S: "A", X: 10, Y: 100, W: 5, Size: 10},
		{S: "B", X: 15, Y: 100.8, W: 5, Size: 10},
		{S: "C", X: 20, Y: 90, W: 5, Size: 10},
	}
	got := merge(glyphs)
	if len(got) != 2 || got[0].Text != "AB" || got[1].Text != "C" {
		t.Errorf("merge() = %+v", got)
	}
}

func TestNewDocument_Invalid(t *testing.T) {
	if _, err := NewDocument([]byte("not a pdf")); err == nil {
		t.Error("NewDocument() accepted garbage")
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open("testdata/missing.pdf"); err == nil {
		t.Error("Open() of a missing file succeeded")
	}
}
