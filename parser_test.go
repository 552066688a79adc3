package extracto

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/etnz/extracto/date"
)

// statement is a two page English statement: the cash ledger spans both
// pages, the second page has no header and ends with the money market fund
// table.
var statement = Pages{
	{Fragments: []TextFragment{
		frag("Trade Republic Bank GmbH", 50, 780),
		frag("ACCOUNT TRANSACTIONS", 50, 700),
		frag("DATE", 50, 680),
		frag("TYPE", 120, 680),
		frag("DESCRIPTION", 200, 680),
		frag("MONEY IN", 400, 680),
		frag("MONEY OUT", 470, 680),
		frag("BALANCE", 540, 680),

		frag("01 Jan 2025", 50, 650),
		frag("Transfer", 120, 650),
		frag("Deposit", 200, 650),
		frag("1.000,00 €", 400, 650),
		frag("1.000,00 €", 540, 650),

		frag("02 Jan 2025", 50, 620),
		frag("Trade", 120, 620),
		frag("Buy trade IE00B4L5Y983 iShares Core MSCI World, quantity: 10", 200, 620),
		frag("101,00 €", 470, 620),
		frag("899,00 €", 540, 620),

		frag("Page 1 of 2", 50, 50),
	}},
	{Fragments: []TextFragment{
		frag("15 Aug 2025", 50, 650),
		frag("Trade", 120, 650),
		frag("Sell trade IE00B4L5Y983 iShares Core MSCI World, quantity: 10", 200, 650),
		frag("119,00 €", 400, 650),
		frag("1.018,00 €", 540, 650),

		frag("31 Aug 2025", 50, 620),
		frag("Interest", 120, 620),
		frag("Your interest payment", 200, 620),
		frag("2,50 €", 400, 620),
		frag("1.020,50 €", 540, 620),

		frag("CASH SUMMARY", 50, 600),
		frag("TRANSACTION OVERVIEW", 50, 560),
		frag("DATE", 50, 540),
		frag("PAYMENT TYPE", 120, 540),
		frag("MONEY MARKET FUND", 220, 540),
		frag("QUANTITY", 360, 540),
		frag("PRICE PER UNIT", 430, 540),
		frag("AMOUNT", 520, 540),

		frag("31 Aug 2025", 50, 510),
		frag("Interest", 120, 510),
		frag("Core MMF", 220, 510),
		frag("0,5", 360, 510),
		frag("5,00 €", 430, 510),
		frag("2,50 €", 520, 510),

		frag("Page 2 of 2", 50, 50),
	}},
}

func TestParser_Parse(t *testing.T) {
	var progress [][2]int
	var status []string
	p := NewParser(Options{
		Year:     2025,
		Progress: func(page, total int) { progress = append(progress, [2]int{page, total}) },
		Status:   func(msg string) { status = append(status, msg) },
	})
	st, err := p.Parse(context.Background(), statement)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(st.Cash) != 4 {
		t.Fatalf("Parse() = %d cash rows, want 4: %+v", len(st.Cash), st.Cash)
	}
	wantKinds := []Kind{KindTransfer, KindTrade, KindTrade, KindInterest}
	wantBalances := []float64{1000, 899, 1018, 1020.5}
	for i, tx := range st.Cash {
		if tx.Index != i {
			t.Errorf("Cash[%d].Index = %d", i, tx.Index)
		}
		if tx.Kind != wantKinds[i] {
			t.Errorf("Cash[%d].Kind = %v, want %v", i, tx.Kind, wantKinds[i])
		}
		if !tx.HasBalance || !tx.Balance.Equal(EUR(wantBalances[i])) {
			t.Errorf("Cash[%d].Balance = %v, want %v", i, tx.Balance, wantBalances[i])
		}
	}

	buyTx := st.Cash[1]
	if buyTx.Date != date.New(2025, time.January, 2) {
		t.Errorf("buy date = %v", buyTx.Date)
	}
	if buyTx.ISIN != "IE00B4L5Y983" || buyTx.Name != "iShares Core MSCI World" {
		t.Errorf("buy instrument = %q %q", buyTx.ISIN, buyTx.Name)
	}
	if !buyTx.HasQuantity || !buyTx.Quantity.Equal(Q(10)) {
		t.Errorf("buy quantity = %v", buyTx.Quantity)
	}
	if !buyTx.Outgoing.Equal(EUR(101)) || !buyTx.Incoming.IsZero() {
		t.Errorf("buy amounts = in %v out %v", buyTx.Incoming, buyTx.Outgoing)
	}
	if !st.Cash[2].Incoming.Equal(EUR(119)) {
		t.Errorf("sell incoming = %v", st.Cash[2].Incoming)
	}

	if len(st.Income) != 1 {
		t.Fatalf("Parse() = %d income rows, want 1: %+v", len(st.Income), st.Income)
	}
	inc := st.Income[0]
	if inc.Kind != KindInterest || inc.Fund != "Core MMF" || !inc.Amount.Equal(EUR(2.5)) || !inc.Quantity.Equal(Q(0.5)) {
		t.Errorf("income row = %+v", inc)
	}

	if want := [][2]int{{1, 2}, {2, 2}}; !reflect.DeepEqual(progress, want) {
		t.Errorf("progress = %v, want %v", progress, want)
	}
	if len(status) == 0 || status[len(status)-1] != "Parsed 4 cash and 1 income rows" {
		t.Errorf("status = %q", status)
	}
	if u := st.Undated(); len(u) != 0 {
		t.Errorf("Undated() = %v", u)
	}
}

func TestParser_Idempotent(t *testing.T) {
	p := NewParser(Options{Year: 2025})
	a, err := p.Parse(context.Background(), statement)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Parse(context.Background(), statement)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two parses of the same document differ")
	}
}

// cashHeader is the header line of the cash ledger at y.
func cashHeader(y float64) []TextFragment {
	return []TextFragment{
		frag("ACCOUNT TRANSACTIONS", 50, y+20),
		frag("DATE", 50, y),
		frag("TYPE", 120, y),
		frag("DESCRIPTION", 200, y),
		frag("MONEY IN", 400, y),
		frag("MONEY OUT", 470, y),
		frag("BALANCE", 540, y),
	}
}

func TestParser_FooterBand(t *testing.T) {
	fragments := append(cashHeader(680),
		frag("01 Jan 2025", 50, 650),
		frag("Transfer", 120, 650),
		frag("Deposit", 200, 650),
		frag("1.000,00 €", 400, 650),
		frag("1.000,00 €", 540, 650),

		// legal notice that reads like a dated row with a balance
		frag("Trade Republic Bank GmbH 2025", 50, 60),
		frag("9.999,99 €", 540, 60),
	)
	doc := Pages{{Number: 1, Fragments: fragments}}

	tests := []struct {
		band float64
		want int
	}{
		{0, 1}, // default band
		{DefaultFooterBand, 1},
		{30, 2},
	}
	for _, tt := range tests {
		st, err := NewParser(Options{Year: 2025, FooterBand: tt.band}).Parse(context.Background(), doc)
		if err != nil {
			t.Fatal(err)
		}
		if len(st.Cash) != tt.want {
			t.Errorf("FooterBand %v: %d cash rows, want %d", tt.band, len(st.Cash), tt.want)
		}
	}
}

func TestParser_ContinuationPage(t *testing.T) {
	// The second page has no header and its first row is above the
	// header line of the first page.
	doc := Pages{
		{Number: 1, Fragments: append(cashHeader(680),
			frag("01 Jan 2025", 50, 650),
			frag("Transfer", 120, 650),
			frag("Deposit", 200, 650),
			frag("1.000,00 €", 400, 650),
			frag("1.000,00 €", 540, 650),
		)},
		{Number: 2, Fragments: []TextFragment{
			frag("02 Jan 2025", 50, 760),
			frag("Transfer", 120, 760),
			frag("Deposit", 200, 760),
			frag("10,00 €", 400, 760),
			frag("1.010,00 €", 540, 760),

			frag("03 Jan 2025", 50, 730),
			frag("Transfer", 120, 730),
			frag("Deposit", 200, 730),
			frag("10,00 €", 400, 730),
			frag("1.020,00 €", 540, 730),
		}},
	}
	st, err := NewParser(Options{Year: 2025}).Parse(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Cash) != 3 {
		t.Fatalf("Parse() = %d cash rows, want 3: %+v", len(st.Cash), st.Cash)
	}
	if !st.Cash[1].Balance.Equal(EUR(1010)) {
		t.Errorf("Cash[1].Balance = %v, want 1010", st.Cash[1].Balance)
	}
}

func TestParser_NoLayoutYet(t *testing.T) {
	// Rows before any header cannot be bucketed and are skipped.
	doc := Pages{{Fragments: []TextFragment{
		frag("ACCOUNT TRANSACTIONS", 50, 700),
		frag("01 Jan 2025", 50, 650),
		frag("1.000,00 €", 540, 650),
	}}}
	st, err := NewParser(Options{Year: 2025}).Parse(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Cash) != 0 {
		t.Errorf("Parse() = %+v, want no rows", st.Cash)
	}
}

// failingDocument fails on a given page.
type failingDocument struct {
	Pages
	failOn int
}

func (d failingDocument) Page(ctx context.Context, n int) (Page, error) {
	if n == d.failOn {
		return Page{}, errors.New("corrupted stream")
	}
	return d.Pages.Page(ctx, n)
}

func TestParser_PageError(t *testing.T) {
	var status []string
	p := NewParser(Options{Status: func(msg string) { status = append(status, msg) }})
	st, err := p.Parse(context.Background(), failingDocument{Pages: statement, failOn: 2})
	if !errors.Is(err, ErrPageRetrieval) {
		t.Fatalf("Parse() error = %v, want %v", err, ErrPageRetrieval)
	}
	if st != nil {
		t.Errorf("Parse() returned a partial statement")
	}
	if last := status[len(status)-1]; last != "Error: "+err.Error() {
		t.Errorf("last status = %q", last)
	}
}

func TestParser_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewParser(Options{}).Parse(ctx, statement); !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want %v", err, context.Canceled)
	}
}
