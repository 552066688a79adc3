package extracto

import (
	"time"

	"github.com/etnz/extracto/date"
	"github.com/shopspring/decimal"
)

// TaxBracket is a slice of the taxable base taxed at Rate. A zero Width
// bracket covers everything above the previous ones.
type TaxBracket struct {
	Width decimal.Decimal
	Rate  decimal.Decimal
}

// TaxRules are the fiscal parameters of the tax engine.
type TaxRules struct {
	// Rate of the tax withheld by the broker on qualifying sales.
	Rate decimal.Decimal
	// Cutoff is the first day withholding applies.
	Cutoff date.Date
	// WithholdingPrefixes are the instrument code prefixes subject to
	// withholding (the country part of the ISIN).
	WithholdingPrefixes []string
	// ExcludedPrefixes are instrument code prefixes ignored by the engine
	// (crypto assets and other pseudo ISINs).
	ExcludedPrefixes []string

	// BuyCommission and SellCommission are the flat fees per order.
	BuyCommission  Money
	SellCommission Money
	// SavingsPlanMarkers identify the descriptions of automated recurring
	// purchases, which are free of commission.
	SavingsPlanMarkers []string

	Currency string
	// Brackets of the annual savings tax.
	Brackets []TaxBracket
}

// DefaultTaxRules returns the rules for a Spanish resident holding Irish
// domiciled funds.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		Rate:                decimal.RequireFromString("0.19"),
		Cutoff:              date.New(2025, time.July, 1),
		WithholdingPrefixes: []string{"IE"},
		BuyCommission:       M(1, "EUR"),
		SellCommission:      M(1, "EUR"),
		SavingsPlanMarkers:  []string{"savings plan", "sparplan", "plan de inversión", "plan de ahorro"},
		Currency:            "EUR",
		Brackets: []TaxBracket{
			{Width: decimal.NewFromInt(6000), Rate: decimal.RequireFromString("0.19")},
			{Width: decimal.NewFromInt(44000), Rate: decimal.RequireFromString("0.21")},
			{Width: decimal.NewFromInt(150000), Rate: decimal.RequireFromString("0.23")},
			{Width: decimal.NewFromInt(100000), Rate: decimal.RequireFromString("0.27")},
			{Rate: decimal.RequireFromString("0.28")},
		},
	}
}

// withholds reports whether a sale of the instrument on day d has tax
// withheld at source.
func (r TaxRules) withholds(isin string, d date.Date) bool {
	if d.IsZero() || d.Before(r.Cutoff) {
		return false
	}
	return hasPrefix(isin, r.WithholdingPrefixes)
}

// excluded reports whether the instrument is out of the engine scope.
func (r TaxRules) excluded(isin string) bool { return hasPrefix(isin, r.ExcludedPrefixes) }

// buyCommission returns the commission paid on a purchase.
func (r TaxRules) buyCommission(description string) Money {
	if IsSavingsPlan(description, r.SavingsPlanMarkers) {
		return M(0, r.Currency)
	}
	return r.BuyCommission
}

// grossUp recovers the sale amount before withholding from the net amount
// credited, the sale commission and the cost basis.
//
// The broker withholds rate*(gross-cost) and credits gross-tax-commission,
// so gross = (net + commission - rate*cost) / (1 - rate). When that gross
// shows no gain nothing was withheld.
func (r TaxRules) grossUp(net, commission, cost Money) (gross, tax Money) {
	plain := net.Add(commission)
	zero := M(0, plain.Currency())
	one := decimal.NewFromInt(1)
	if r.Rate.IsNegative() || r.Rate.GreaterThanOrEqual(one) {
		return plain, zero
	}
	v := plain.Sub(cost.Scale(r.Rate)).Scale(one.Div(one.Sub(r.Rate)))
	if !v.GreaterThan(cost) {
		return plain, zero
	}
	tax = v.Sub(cost).Scale(r.Rate)
	if tax.IsNegative() {
		tax = zero
	}
	return v, tax
}

// savingsTax applies the progressive brackets to a taxable base.
func (r TaxRules) savingsTax(base Money) Money {
	tax := M(0, base.Currency())
	rest := base.Decimal()
	for _, b := range r.Brackets {
		if !rest.IsPositive() {
			break
		}
		slice := rest
		if !b.Width.IsZero() && b.Width.LessThan(rest) {
			slice = b.Width
		}
		tax = tax.Add(M(slice.Mul(b.Rate), base.Currency()))
		rest = rest.Sub(slice)
	}
	return tax
}
