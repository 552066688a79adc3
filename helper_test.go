package extracto

import (
	"testing"

	"github.com/etnz/extracto/date"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// frag creates a one line fragment of the default height.
func frag(text string, x, y float64) TextFragment {
	return TextFragment{Text: text, X: x, Y: y, Width: float64(len(text)) * 5, Height: 10}
}

// assertMoney compares amounts to the cent.
func assertMoney(t *testing.T, what string, got, want Money) {
	t.Helper()
	if !got.Round(2).Decimal().Equal(want.Decimal()) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

// trade creates a trade transaction.
func trade(index int, day date.Date, isin string, qty float64, in, out float64, description string) Transaction {
	return Transaction{
		Index:       index,
		Date:        day,
		Kind:        KindTrade,
		Description: description,
		ISIN:        isin,
		Name:        isin + " fund",
		Quantity:    Q(qty),
		HasQuantity: true,
		Incoming:    EUR(in),
		Outgoing:    EUR(out),
		Consistent:  true,
	}
}

func buy(index int, day date.Date, isin string, qty, amount float64) Transaction {
	return trade(index, day, isin, qty, 0, amount, "Buy trade "+isin)
}

func sell(index int, day date.Date, isin string, qty, amount float64) Transaction {
	return trade(index, day, isin, qty, amount, 0, "Sell trade "+isin)
}
