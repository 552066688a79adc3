package extracto

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/etnz/extracto/date"
)

var (
	// ErrPageRetrieval is returned when the document source fails to
	// deliver a page. The statement is then incomplete and discarded.
	ErrPageRetrieval = errors.New("cannot read page")
	// ErrNoTransactions reports a document where no table could be found.
	ErrNoTransactions = errors.New("no transactions found")
)

// DefaultFooterBand is the height of the bottom band of each page that
// holds page numbers and legal notices, in PDF points.
const DefaultFooterBand = 120

// Options configures a Parser.
type Options struct {
	// FooterBand is the height of the bottom band ignored on every page.
	FooterBand float64
	// Currency of the amounts.
	Currency string
	// Year is used for dates printed without a year. Zero means the
	// current year.
	Year int

	// Progress is called after each page with the page number and the
	// page count.
	Progress func(page, total int)
	// Status is called with a human readable message at key steps.
	Status func(msg string)
	// Logf receives debug traces.
	Logf func(format string, args ...any)
}

// DefaultOptions returns the options suited to the supported statements.
func DefaultOptions() Options {
	return Options{
		FooterBand: DefaultFooterBand,
		Currency:   "EUR",
	}
}

// ParserState is the state carried from one page to the next: whether each
// section is still open, and the last column layout found for each table.
type ParserState struct {
	CashInside   bool
	IncomeInside bool
	Cash         *ColumnLayout
	Income       *ColumnLayout
}

// pageRows are the raw rows found on a page.
type pageRows struct {
	cash   []cashCells
	income []incomeCells
}

// Parser turns a statement Document into a Statement.
type Parser struct {
	opts Options
}

// NewParser returns a Parser. Zero fields of opts take their default value.
func NewParser(opts Options) *Parser {
	def := DefaultOptions()
	if opts.FooterBand == 0 {
		opts.FooterBand = def.FooterBand
	}
	if opts.Currency == "" {
		opts.Currency = def.Currency
	}
	if opts.Year == 0 {
		opts.Year = date.Today().Year()
	}
	if opts.Progress == nil {
		opts.Progress = func(int, int) {}
	}
	if opts.Status == nil {
		opts.Status = func(string) {}
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	return &Parser{opts: opts}
}

// Parse reads every page of the document in order and returns the
// statement.
//
// Pages are processed one at a time: each page depends on the section state
// and column layouts left by the previous one. Any error retrieving a page
// aborts the parse; no partial statement is returned.
func (p *Parser) Parse(ctx context.Context, doc Document) (*Statement, error) {
	total := doc.NumPages()
	p.opts.Status("Parsing statement...")

	var state ParserState
	var all pageRows
	for n := 1; n <= total; n++ {
		if err := ctx.Err(); err != nil {
			p.opts.Status("Error: " + err.Error())
			return nil, err
		}
		p.opts.Status(fmt.Sprintf("Processing page %d of %d", n, total))
		page, err := doc.Page(ctx, n)
		if err != nil {
			err = fmt.Errorf("%w %d: %w", ErrPageRetrieval, n, err)
			p.opts.Status("Error: " + err.Error())
			return nil, err
		}
		var rows pageRows
		state, rows = p.parsePage(state, page)
		all.cash = append(all.cash, rows.cash...)
		all.income = append(all.income, rows.income...)
		p.opts.Progress(n, total)
	}

	st := &Statement{
		Cash:   make([]Transaction, 0, len(all.cash)),
		Income: make([]IncomeRow, 0, len(all.income)),
	}
	for i, c := range all.cash {
		st.Cash = append(st.Cash, p.transaction(i, c))
	}
	for i, c := range all.income {
		st.Income = append(st.Income, p.incomeRow(i, c))
	}
	p.opts.Status(fmt.Sprintf("Parsed %d cash and %d income rows", len(st.Cash), len(st.Income)))
	return st, nil
}

// parsePage extracts the rows of one page and returns the state for the
// next page.
func (p *Parser) parsePage(state ParserState, page Page) (ParserState, pageRows) {
	items := clipFooter(page.Fragments, p.opts.FooterBand)
	if dropped := len(page.Fragments) - len(items); dropped > 0 {
		p.opts.Logf("page=%d clip-footer dropped=%d", page.Number, dropped)
	}

	var rows pageRows
	var cashRows, incomeRows [][]TextFragment
	state.CashInside, state.Cash, cashRows = p.section(page.Number, SectionCash, state.CashInside, state.Cash, items)
	state.IncomeInside, state.Income, incomeRows = p.section(page.Number, SectionIncome, state.IncomeInside, state.Income, items)

	for _, r := range cashRows {
		c := splitCashRow(r, state.Cash)
		if !c.valid() {
			p.opts.Logf("page=%d reject-cash-row %+v", page.Number, c)
			continue
		}
		rows.cash = append(rows.cash, c)
	}
	for _, r := range incomeRows {
		c := splitIncomeRow(r, state.Income)
		if !c.valid() {
			p.opts.Logf("page=%d reject-income-row %+v", page.Number, c)
			continue
		}
		rows.income = append(rows.income, c)
	}
	return state, rows
}

// section locates the section on the page, refreshes its layout when a
// header is found, and groups its fragments into rows.
func (p *Parser) section(n int, s Section, inside bool, layout *ColumnLayout, items []TextFragment) (bool, *ColumnLayout, [][]TextFragment) {
	span := LocateSection(s, inside, items)
	if span.Start != nil {
		p.opts.Logf("page=%d section=%s start-marker=%q", n, s, span.Start.Text)
	}
	if span.End != nil {
		p.opts.Logf("page=%d section=%s end-marker=%q", n, s, span.End.Text)
	}
	if !span.Active {
		return span.Inside, layout, nil
	}
	if l, ok := DetectLayout(s, span.Items); ok {
		p.opts.Logf("page=%d section=%s header-y=%.1f", n, s, l.HeaderY)
		return span.Inside, l, AssembleRows(span.Items, l)
	}
	if layout == nil {
		p.opts.Logf("page=%d section=%s no-layout", n, s)
		return span.Inside, nil, nil
	}
	// The header of a carried layout is on an earlier page: rows start
	// below the section marker, or at the top of the page.
	carried := *layout
	carried.HeaderY = math.Inf(1)
	if span.Start != nil {
		carried.HeaderY = span.Start.Y + headerMargin
	}
	return span.Inside, layout, AssembleRows(span.Items, &carried)
}

func (p *Parser) transaction(i int, c cashCells) Transaction {
	d, ok := ParseStatementDate(c.Date, p.opts.Year)
	if !ok {
		p.opts.Logf("undated-row index=%d date=%q", i, c.Date)
	}
	desc := DecomposeDescription(c.Description)
	if desc.ISIN != "" && !desc.ValidISIN {
		p.opts.Logf("suspicious-isin index=%d isin=%q", i, desc.ISIN)
	}
	return Transaction{
		Index:       i,
		RawDate:     c.Date,
		Date:        d,
		RawKind:     c.Type,
		Kind:        ParseKind(c.Type),
		Description: desc.Text,
		ISIN:        desc.ISIN,
		Name:        desc.Name,
		Quantity:    desc.Quantity,
		HasQuantity: desc.HasQuantity,
		Incoming:    ParseAmount(c.In, p.opts.Currency),
		Outgoing:    ParseAmount(c.Out, p.opts.Currency),
		Balance:     ParseAmount(c.Balance, p.opts.Currency),
		HasBalance:  c.Balance != "",
		Consistent:  true,
	}
}

func (p *Parser) incomeRow(i int, c incomeCells) IncomeRow {
	d, _ := ParseStatementDate(c.Date, p.opts.Year)
	return IncomeRow{
		Index:     i,
		RawDate:   c.Date,
		Date:      d,
		RawKind:   c.Type,
		Kind:      ParseKind(c.Type),
		Fund:      c.Fund,
		Quantity:  ParseQuantity(c.Quantity),
		UnitPrice: ParseAmount(c.Price, p.opts.Currency),
		Amount:    ParseAmount(c.Amount, p.opts.Currency),
	}
}
