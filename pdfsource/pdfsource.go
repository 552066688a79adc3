// Package pdfsource reads the positioned text of PDF statements.
//
// PDF content streams draw text glyph by glyph. Document merges glyphs
// printed on the same baseline into words and phrases, and returns them as
// extracto.TextFragment in PDF coordinates.
package pdfsource

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/etnz/extracto"
)

const (
	// spaceGap is the horizontal gap, relative to the font size, above which
	// two glyphs are separated by a space.
	spaceGap = 0.15
	// splitGap is the gap above which two glyphs belong to different
	// fragments.
	splitGap = 1.0
)

// Document is a PDF file opened as an extracto.Document.
type Document struct {
	r *pdf.Reader
}

// Open reads the PDF file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// NewDocument decodes a PDF held in memory.
func NewDocument(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &Document{r: r}, nil
}

// NumPages implements extracto.Document.
func (d *Document) NumPages() int { return d.r.NumPage() }

// Page implements extracto.Document. The pdf decoder panics on corrupted
// streams: the panic is returned as an error.
func (d *Document) Page(ctx context.Context, n int) (page extracto.Page, err error) {
	if err := ctx.Err(); err != nil {
		return extracto.Page{}, err
	}
	if n < 1 || n > d.NumPages() {
		return extracto.Page{}, fmt.Errorf("page %d out of range [1, %d]", n, d.NumPages())
	}
	defer func() {
		if r := recover(); r != nil {
			page, err = extracto.Page{}, fmt.Errorf("decoding page %d: %v", n, r)
		}
	}()
	p := d.r.Page(n)
	if p.V.IsNull() {
		return extracto.Page{}, fmt.Errorf("page %d has no content", n)
	}
	content := p.Content()
	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyph{S: t.S, X: t.X, Y: t.Y, W: t.W, Size: t.FontSize})
	}
	return extracto.Page{Number: n, Fragments: merge(glyphs)}, nil
}

// glyph is a single drawn text item.
type glyph struct {
	S       string
	X, Y, W float64
	Size    float64
}

// merge joins consecutive glyphs drawn on the same baseline.
func merge(glyphs []glyph) []extracto.TextFragment {
	var res []extracto.TextFragment
	var cur *extracto.TextFragment
	flush := func() {
		if cur == nil {
			return
		}
		if text := trimSpaces(cur.Text); text != "" {
			cur.Text = text
			res = append(res, *cur)
		}
		cur = nil
	}
	for _, g := range glyphs {
		size := g.Size
		if size <= 0 {
			size = 1
		}
		if cur != nil && math.Abs(g.Y-cur.Y) < size/2 {
			gap := g.X - (cur.X + cur.Width)
			if gap >= -size/2 && gap <= splitGap*size {
				if gap > spaceGap*size && !endsWithSpace(cur.Text) && g.S != " " {
					cur.Text += " "
				}
				cur.Text += g.S
				cur.Width = math.Max(cur.Width, g.X+g.W-cur.X)
				cur.Height = math.Max(cur.Height, g.Size)
				continue
			}
		}
		flush()
		cur = &extracto.TextFragment{Text: g.S, X: g.X, Y: g.Y, Width: g.W, Height: g.Size}
	}
	flush()
	return res
}

func endsWithSpace(s string) bool { return len(s) > 0 && s[len(s)-1] == ' ' }

// trimSpaces removes leading and trailing blanks and collapses inner runs.
func trimSpaces(s string) string { return strings.Join(strings.Fields(s), " ") }
