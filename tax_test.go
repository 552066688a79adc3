package extracto

import (
	"testing"

	"github.com/etnz/extracto/date"
	"github.com/shopspring/decimal"
)

func TestTaxRules_GrossUp(t *testing.T) {
	rules := DefaultTaxRules()
	tests := []struct {
		name            string
		net, cost       float64
		wantGross, want float64
	}{
		{"gain", 119, 100, 124.69, 4.69},
		{"break even", 99, 100, 100, 0},
		{"loss", 150, 200, 151, 0},
		{"nothing held", 50, 0, 62.96, 11.96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross, tax := rules.grossUp(EUR(tt.net), EUR(1), EUR(tt.cost))
			assertMoney(t, "gross", gross, EUR(tt.wantGross))
			assertMoney(t, "tax", tax, EUR(tt.want))
			// gross - tax - commission is what was credited
			assertMoney(t, "net", gross.Sub(tax).Sub(EUR(1)), EUR(tt.net))
		})
	}

	rules.Rate = decimal.NewFromInt(1)
	gross, tax := rules.grossUp(EUR(119), EUR(1), EUR(100))
	if !gross.Equal(EUR(120)) || !tax.IsZero() {
		t.Errorf("grossUp() with a 100%% rate = %v, %v", gross, tax)
	}
}

func TestTaxRules_SavingsTax(t *testing.T) {
	rules := DefaultTaxRules()
	tests := []struct {
		base, want float64
	}{
		{-500, 0},
		{0, 0},
		{1000, 190},
		{6000, 1140},
		{10000, 1980},
		{300000, 71880},
		{310000, 74680},
	}
	for _, tt := range tests {
		if got := rules.savingsTax(EUR(tt.base)); !got.Equal(EUR(tt.want)) {
			t.Errorf("savingsTax(%v) = %v, want %v", tt.base, got, tt.want)
		}
	}
}

func TestTaxRules_Withholds(t *testing.T) {
	rules := DefaultTaxRules()
	tests := []struct {
		name string
		isin string
		day  int // days after the cutoff
		zero bool
		want bool
	}{
		{"on cutoff", "IE00B4L5Y983", 0, false, true},
		{"lower case code", "ie00b4l5y983", 10, false, true},
		{"before cutoff", "IE00B4L5Y983", -1, false, false},
		{"undated", "IE00B4L5Y983", 0, true, false},
		{"other country", "US0378331005", 10, false, false},
		{"no code", "", 10, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := rules.Cutoff.Add(tt.day)
			if tt.zero {
				d = date.Date{}
			}
			if got := rules.withholds(tt.isin, d); got != tt.want {
				t.Errorf("withholds(%q, %v) = %v, want %v", tt.isin, d, got, tt.want)
			}
		})
	}
}

func TestTaxRules_BuyCommission(t *testing.T) {
	rules := DefaultTaxRules()
	if got := rules.buyCommission("Buy trade IE00B4L5Y983"); !got.Equal(EUR(1)) {
		t.Errorf("buyCommission(order) = %v, want 1", got)
	}
	if got := rules.buyCommission("Sparplan Ausführung IE00B4L5Y983"); !got.IsZero() {
		t.Errorf("buyCommission(savings plan) = %v, want 0", got)
	}
}
