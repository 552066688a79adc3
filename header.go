package extracto

import (
	"math"
	"strings"
)

// ColumnName names a column of a statement table.
type ColumnName string

const (
	ColDate        ColumnName = "date"
	ColType        ColumnName = "type"
	ColDescription ColumnName = "description"
	ColIn          ColumnName = "in"
	ColOut         ColumnName = "out"
	ColBalance     ColumnName = "balance"

	ColFund     ColumnName = "fund"
	ColQuantity ColumnName = "quantity"
	ColPrice    ColumnName = "price"
	ColAmount   ColumnName = "amount"
)

// headerMargin is the slack left on the left of a header label: values are
// often drawn slightly before their column title.
const headerMargin = 5

// Column is the x-range [Start, End) of a table column.
type Column struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ColumnLayout holds the column boundaries of a table as found from its
// header row.
//
// A layout is never modified: a page that redefines the header produces a
// new layout.
type ColumnLayout struct {
	Columns map[ColumnName]Column
	HeaderY float64
}

// End returns the right boundary of the named column, or -Inf when the
// layout has no such column.
func (l *ColumnLayout) End(name ColumnName) float64 {
	c, ok := l.Columns[name]
	if !ok {
		return math.Inf(-1)
	}
	return c.End
}

// DetectLayout searches the section fragments for the header row of the
// section table and derives its column boundaries.
//
// It returns false when a mandatory label is missing.
func DetectLayout(s Section, items []TextFragment) (*ColumnLayout, bool) {
	switch s {
	case SectionCash:
		return detectCashLayout(items)
	case SectionIncome:
		return detectIncomeLayout(items)
	}
	return nil, false
}

// headerCandidates returns the fragments that may be a column title.
func headerCandidates(items []TextFragment, keywords []string, upperOnly bool) []TextFragment {
	return filter(items, func(it TextFragment) bool {
		raw := strings.TrimSpace(it.Text)
		if len([]rune(raw)) < 2 {
			return false
		}
		norm := normalizeText(raw)
		if upperOnly && !isUpper(raw) && !strings.Contains(norm, "FECHA") && !strings.Contains(norm, "TIPO") {
			return false
		}
		for _, kw := range keywords {
			if strings.Contains(norm, kw) {
				return true
			}
		}
		return false
	})
}

// matchAny returns the first candidate whose text is one of the labels,
// trying labels in order.
func matchAny(candidates []TextFragment, labels []string) (TextFragment, bool) {
	for _, label := range labels {
		for _, c := range candidates {
			if normalizeText(c.Text) == label {
				return c, true
			}
		}
	}
	return TextFragment{}, false
}

// findComposite finds a two-word header such as "MONEY IN", either drawn as
// one fragment or as two fragments on the same row close to each other.
func findComposite(candidates []TextFragment, first, second string) (TextFragment, bool) {
	k1, k2 := normalizeText(first), normalizeText(second)
	for _, c := range candidates {
		if t := normalizeText(c.Text); t == k1+" "+k2 || t == k1+k2 {
			return c, true
		}
	}
	for _, f := range candidates {
		if normalizeText(f.Text) != k1 {
			continue
		}
		for _, n := range candidates {
			if normalizeText(n.Text) != k2 || math.Abs(n.Y-f.Y) >= 2 || n.X <= f.X || n.X >= f.X+100 {
				continue
			}
			return TextFragment{
				Text:   first + " " + second,
				X:      f.X,
				Y:      f.Y,
				Width:  n.X + n.Width - f.X,
				Height: math.Max(f.Height, n.Height),
			}, true
		}
	}
	return TextFragment{}, false
}

// findMerged finds a single header holding both the incoming and outgoing
// labels.
func findMerged(candidates []TextFragment) (TextFragment, bool) {
	for _, c := range candidates {
		t := normalizeText(c.Text)
		for _, pair := range cashInOutPairs {
			if strings.Contains(t, normalizeText(pair[0])) && strings.Contains(t, normalizeText(pair[1])) {
				return c, true
			}
		}
	}
	return TextFragment{}, false
}

func detectCashLayout(items []TextFragment) (*ColumnLayout, bool) {
	cands := headerCandidates(items, cashHeaderKeywords, true)

	dateH, ok1 := matchAny(cands, cashDateLabels)
	typeH, ok2 := matchAny(cands, cashTypeLabels)
	descH, ok3 := matchAny(cands, cashDescriptionLabels)
	balH, ok4 := matchAny(cands, cashBalanceLabels)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, false
	}

	var paymentsStart, inEnd, outStart float64
	if merged, ok := findMerged(cands); ok {
		mid := merged.X + merged.Width/2
		paymentsStart, inEnd, outStart = merged.X-headerMargin, mid, mid
	} else {
		inH, ok := matchAny(cands, cashInLabels)
		if !ok {
			split := cashSplitLabels[ColIn]
			inH, ok = findComposite(cands, split[0], split[1])
		}
		if !ok {
			return nil, false
		}
		outH, ok := matchAny(cands, cashOutLabels)
		if !ok {
			split := cashSplitLabels[ColOut]
			outH, ok = findComposite(cands, split[0], split[1])
		}
		if !ok {
			return nil, false
		}
		paymentsStart = inH.X - headerMargin
		inEnd = outH.X - headerMargin
		outStart = inEnd
	}

	return &ColumnLayout{
		Columns: map[ColumnName]Column{
			ColDate:        {0, typeH.X - headerMargin},
			ColType:        {typeH.X - headerMargin, descH.X - headerMargin},
			ColDescription: {descH.X - headerMargin, paymentsStart},
			ColIn:          {paymentsStart, inEnd},
			ColOut:         {outStart, balH.X - headerMargin},
			ColBalance:     {balH.X - headerMargin, math.Inf(1)},
		},
		HeaderY: dateH.Y,
	}, true
}

func detectIncomeLayout(items []TextFragment) (*ColumnLayout, bool) {
	cands := headerCandidates(items, incomeHeaderKeywords, false)

	var headers [6]TextFragment
	for i, labels := range [][]string{
		incomeDateLabels, incomeTypeLabels, incomeFundLabels,
		incomeQuantityLabels, incomePriceLabels, incomeAmountLabels,
	} {
		h, ok := matchAny(cands, labels)
		if !ok {
			return nil, false
		}
		headers[i] = h
	}
	dateH, typeH, fundH, qtyH, priceH, amountH := headers[0], headers[1], headers[2], headers[3], headers[4], headers[5]

	return &ColumnLayout{
		Columns: map[ColumnName]Column{
			ColDate:     {0, typeH.X - headerMargin},
			ColType:     {typeH.X - headerMargin, fundH.X - headerMargin},
			ColFund:     {fundH.X - headerMargin, qtyH.X - headerMargin},
			ColQuantity: {qtyH.X - headerMargin, priceH.X - headerMargin},
			ColPrice:    {priceH.X - headerMargin, amountH.X - headerMargin},
			ColAmount:   {amountH.X - headerMargin, math.Inf(1)},
		},
		HeaderY: dateH.Y,
	}, true
}
