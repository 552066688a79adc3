package extracto

import (
	"context"
	"fmt"
)

// TextFragment is a piece of text drawn at a position on a page.
//
// Coordinates follow the PDF convention: the origin is the bottom-left
// corner of the page, so Y grows upward.
type TextFragment struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Page holds the text fragments of one page, in drawing order.
type Page struct {
	Number    int            `json:"page"`
	Fragments []TextFragment `json:"fragments"`
}

// Document is a source of positioned text, one page at a time.
//
// Page numbers are 1-based. Page may block (e.g. decoding a PDF stream)
// and must honor ctx cancellation where it can.
type Document interface {
	NumPages() int
	Page(ctx context.Context, n int) (Page, error)
}

// Pages is an in-memory Document.
type Pages []Page

// NumPages implements Document.
func (p Pages) NumPages() int { return len(p) }

// Page implements Document.
func (p Pages) Page(ctx context.Context, n int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if n < 1 || n > len(p) {
		return Page{}, fmt.Errorf("page %d out of range [1, %d]", n, len(p))
	}
	page := p[n-1]
	page.Number = n
	return page, nil
}

// filter returns the fragments for which keep returns true.
func filter(items []TextFragment, keep func(TextFragment) bool) []TextFragment {
	res := make([]TextFragment, 0, len(items))
	for _, it := range items {
		if keep(it) {
			res = append(res, it)
		}
	}
	return res
}
