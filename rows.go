package extracto

import (
	"cmp"
	"slices"
	"strings"
)

// defaultRowHeight is used when fragments carry no height.
const defaultRowHeight = 10

// clipFooter drops the fragments drawn in the bottom band of the page
// (page numbers, legal notices).
func clipFooter(items []TextFragment, band float64) []TextFragment {
	return filter(items, func(it TextFragment) bool { return it.Y > band })
}

// AssembleRows groups the fragments below the table header into rows.
//
// Fragments are read top to bottom then left to right; a new row starts
// whenever the vertical gap between two consecutive fragments exceeds 1.5
// times the mean fragment height. A multi-line description therefore stays
// in a single row.
func AssembleRows(items []TextFragment, layout *ColumnLayout) [][]TextFragment {
	content := filter(items, func(it TextFragment) bool {
		return it.Y < layout.HeaderY-headerMargin && strings.TrimSpace(it.Text) != ""
	})
	if len(content) == 0 {
		return nil
	}
	slices.SortStableFunc(content, func(a, b TextFragment) int {
		if c := cmp.Compare(b.Y, a.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	var sum float64
	for _, it := range content {
		sum += it.Height
	}
	mean := sum / float64(len(content))
	if mean <= 0 {
		mean = defaultRowHeight
	}
	threshold := 1.5 * mean

	var rows [][]TextFragment
	row := []TextFragment{content[0]}
	for i := 1; i < len(content); i++ {
		if content[i-1].Y-content[i].Y > threshold {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, content[i])
	}
	return append(rows, row)
}

// cell accumulates the text of a table cell.
type cell struct{ strings.Builder }

func (c *cell) add(s string) {
	if c.Len() > 0 {
		c.WriteByte(' ')
	}
	c.WriteString(s)
}

func (c *cell) text() string { return collapseSpaces(c.String()) }

// cashCells is a row of the cash ledger, as text.
type cashCells struct {
	Date, Type, Description, In, Out, Balance string
}

// splitCashRow assigns the row fragments to the cash ledger columns.
//
// Date, type and description are bucketed by x. The remaining fragments are
// amounts: the rightmost one is the balance, the others fall in the
// incoming or outgoing column by x.
func splitCashRow(row []TextFragment, layout *ColumnLayout) cashCells {
	var date, typ, desc, in, out cell
	var amounts []TextFragment
	for _, it := range row {
		switch {
		case it.X < layout.End(ColDate):
			date.add(it.Text)
		case it.X < layout.End(ColType):
			typ.add(it.Text)
		case it.X < layout.End(ColDescription):
			desc.add(it.Text)
		default:
			amounts = append(amounts, it)
		}
	}
	var balance string
	amounts, balance = popRightmost(amounts)
	for _, it := range amounts {
		switch {
		case it.X < layout.End(ColIn):
			in.add(it.Text)
		case it.X < layout.End(ColOut):
			out.add(it.Text)
		}
	}
	return cashCells{
		Date:        date.text(),
		Type:        typ.text(),
		Description: desc.text(),
		In:          in.text(),
		Out:         out.text(),
		Balance:     collapseSpaces(balance),
	}
}

// valid reports whether the row looks like data and not like noise.
func (c cashCells) valid() bool { return isDateLike(c.Date) || c.Balance != "" }

// incomeCells is a row of the income table, as text.
type incomeCells struct {
	Date, Type, Fund, Quantity, Price, Amount string
}

// splitIncomeRow assigns the row fragments to the income table columns.
// The rightmost numeric fragment is the amount.
func splitIncomeRow(row []TextFragment, layout *ColumnLayout) incomeCells {
	var date, typ, fund, qty, price cell
	var others []TextFragment
	for _, it := range row {
		switch {
		case it.X < layout.End(ColDate):
			date.add(it.Text)
		case it.X < layout.End(ColType):
			typ.add(it.Text)
		case it.X < layout.End(ColFund):
			fund.add(it.Text)
		default:
			others = append(others, it)
		}
	}
	var amount string
	others, amount = popRightmost(others)
	for _, it := range others {
		switch {
		case it.X < layout.End(ColQuantity):
			qty.add(it.Text)
		case it.X < layout.End(ColPrice):
			price.add(it.Text)
		}
	}
	return incomeCells{
		Date:     date.text(),
		Type:     typ.text(),
		Fund:     fund.text(),
		Quantity: qty.text(),
		Price:    price.text(),
		Amount:   collapseSpaces(amount),
	}
}

func (c incomeCells) valid() bool { return isDateLike(c.Date) || c.Amount != "" }

// popRightmost sorts the fragments by x and removes the rightmost one,
// returning its text.
func popRightmost(items []TextFragment) ([]TextFragment, string) {
	if len(items) == 0 {
		return items, ""
	}
	slices.SortStableFunc(items, func(a, b TextFragment) int { return cmp.Compare(a.X, b.X) })
	last := items[len(items)-1]
	return items[:len(items)-1], last.Text
}
