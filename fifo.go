package extracto

import (
	"cmp"
	"slices"

	"github.com/etnz/extracto/date"
	"github.com/shopspring/decimal"
)

// Engine computes realized gains, open positions and income out of a
// ledger, matching sales against purchases first in, first out.
type Engine struct {
	rules TaxRules
	// Logf receives debug traces.
	Logf func(format string, args ...any)
}

// NewEngine returns an Engine applying the given rules.
func NewEngine(rules TaxRules) *Engine {
	if rules.Currency == "" {
		rules.Currency = "EUR"
	}
	rules.BuyCommission = M(rules.BuyCommission.Decimal(), rules.Currency)
	rules.SellCommission = M(rules.SellCommission.Decimal(), rules.Currency)
	return &Engine{rules: rules, Logf: func(string, ...any) {}}
}

// position is the state of one instrument during a run.
type position struct {
	isin, name string
	queue      lots
}

// Run processes the ledger and returns the tax report.
//
// Transactions are processed by date, and by ledger order within a day;
// undated transactions come first. Run never fails: sales not covered by
// purchases are matched as far as possible and the shortfall is recorded in
// RealizedSale.Unmatched, and rows in a currency other than the rules
// currency are skipped.
func (e *Engine) Run(ledger []Transaction) *TaxReport {
	rows := slices.Clone(ledger)
	slices.SortStableFunc(rows, func(a, b Transaction) int {
		if c := date.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	report := &TaxReport{
		Currency:       e.rules.Currency,
		BySecurity:     make(map[InstrumentKey][]RealizedSale),
		IncomeByPeriod: make(IncomeByPeriod),
	}
	positions := make(map[InstrumentKey]*position)
	var realized []RealizedSale

	for _, tx := range rows {
		if c := tx.Currency(); c != "" && c != e.rules.Currency {
			e.Logf("skip-row index=%d reason=currency currency=%s want=%s", tx.Index, c, e.rules.Currency)
			continue
		}
		switch {
		case tx.Kind.IsIncome():
			rec := IncomeRecord{
				Date:        tx.Date,
				Year:        tx.Date.Year(),
				Month:       tx.Date.Month(),
				Kind:        tx.Kind,
				Description: tx.Description,
				Gross:       tx.Incoming,
				ISIN:        tx.ISIN,
			}
			report.Income = append(report.Income, rec)
			if tx.Date.IsZero() {
				e.Logf("undated-income index=%d description=%q", tx.Index, tx.Description)
				continue
			}
			report.IncomeByPeriod.add(rec)

		case tx.Kind == KindTrade:
			if !tx.HasQuantity || !tx.Quantity.IsPositive() {
				e.Logf("skip-trade index=%d reason=no-quantity", tx.Index)
				continue
			}
			if e.rules.excluded(tx.ISIN) {
				e.Logf("skip-trade index=%d reason=excluded isin=%q", tx.Index, tx.ISIN)
				continue
			}
			key := KeyOf(tx)
			if key.IsZero() {
				e.Logf("skip-trade index=%d reason=no-instrument", tx.Index)
				continue
			}
			pos, ok := positions[key]
			if !ok {
				pos = &position{isin: tx.ISIN, name: tx.Name}
				positions[key] = pos
				report.Instruments = append(report.Instruments, key)
			}
			if pos.name == "" {
				pos.name = tx.Name
			}

			switch {
			case tx.IsBuy():
				pos.queue = append(pos.queue, e.buy(tx))
			case tx.IsSell():
				sale := e.sell(tx, key, pos)
				realized = append(realized, sale)
				report.BySecurity[key] = append(report.BySecurity[key], sale)
			}
		}
	}

	report.Years = e.years(realized)

	slices.SortStableFunc(realized, func(a, b RealizedSale) int { return date.Compare(b.SellDate, a.SellDate) })
	report.Realized = realized

	for _, key := range report.Instruments {
		pos := positions[key]
		qty := pos.queue.quantity()
		if qty.IsNegligible() {
			continue
		}
		cost := pos.queue.cost()
		report.Open = append(report.Open, OpenPosition{
			Instrument:  key,
			ISIN:        pos.isin,
			Name:        pos.name,
			Quantity:    qty,
			TotalCost:   cost,
			AverageCost: cost.Div(qty),
			Lots:        len(pos.queue),
		})
	}
	return report
}

// buy creates the lot of a purchase.
func (e *Engine) buy(tx Transaction) PurchaseLot {
	commission := e.rules.buyCommission(tx.Description)
	return PurchaseLot{
		Date:       tx.Date,
		Remaining:  tx.Quantity,
		UnitCost:   tx.Outgoing.Sub(commission).Div(tx.Quantity),
		Commission: commission,
	}
}

// sell matches a sale against the position lots and computes its gains and
// tax.
func (e *Engine) sell(tx Transaction, key InstrumentKey, pos *position) RealizedSale {
	qty := tx.Quantity
	matched, rest, unmatched := pos.queue.sell(qty)
	pos.queue = rest
	if !unmatched.IsZero() {
		e.Logf("short-sale instrument=%q date=%s unmatched=%s", key, tx.Date, unmatched)
	}

	zero := M(0, e.rules.Currency)
	commission := e.rules.SellCommission
	cost, buyCommissions := zero, zero
	for _, m := range matched {
		cost = cost.Add(m.Lot.UnitCost.Mul(m.Quantity))
		if m.ChargeCommission {
			buyCommissions = buyCommissions.Add(m.Lot.Commission)
		}
	}

	net := tx.Incoming
	gross, tax := net.Add(commission), zero
	withheld := e.rules.withholds(tx.ISIN, tx.Date)
	if withheld {
		gross, tax = e.rules.grossUp(net, commission, cost)
	}
	grossProfit := gross.Sub(cost)

	sale := RealizedSale{
		Instrument:        key,
		ISIN:              tx.ISIN,
		Name:              pos.name,
		SellDate:          tx.Date,
		Quantity:          qty,
		NetProceeds:       net,
		GrossProceeds:     gross,
		SaleCommission:    commission,
		BuyCommissions:    buyCommissions,
		TotalCommission:   commission.Add(buyCommissions),
		Withheld:          withheld,
		Tax:               tax,
		CostBasis:         cost,
		GrossProfit:       grossProfit,
		NetProfit:         grossProfit.Sub(commission).Sub(tax),
		Unmatched:         unmatched,
		RemainingQuantity: rest.quantity(),
		Inconsistent:      !tx.Consistent,
	}

	unitGross := gross.Div(qty)
	for _, m := range matched {
		ratio := m.Quantity.Div(qty)
		allocCommission := commission.Mul(ratio)
		allocTax := tax.Mul(ratio)
		matchGross := unitGross.Sub(m.Lot.UnitCost).Mul(m.Quantity)
		buyCommission := zero
		if m.ChargeCommission {
			buyCommission = m.Lot.Commission
		}
		sale.Matches = append(sale.Matches, SaleMatch{
			LotDate:             m.Lot.Date,
			Quantity:            m.Quantity,
			UnitCost:            m.Lot.UnitCost,
			BuyCommission:       buyCommission,
			AllocatedCommission: allocCommission,
			AllocatedTax:        allocTax,
			GrossProfit:         matchGross,
			NetProfit:           matchGross.Sub(allocCommission).Sub(allocTax),
		})
	}
	return sale
}

// years summarizes the realized sales per year, most recent first.
func (e *Engine) years(realized []RealizedSale) []YearSummary {
	byYear := make(map[int]*YearSummary)
	var years []int
	zero := M(0, e.rules.Currency)
	for _, s := range realized {
		if s.SellDate.IsZero() {
			continue
		}
		y := s.SellDate.Year()
		sum, ok := byYear[y]
		if !ok {
			sum = &YearSummary{Year: y, GrossProfit: zero, Withheld: zero}
			byYear[y] = sum
			years = append(years, y)
		}
		sum.Sales++
		sum.GrossProfit = sum.GrossProfit.Add(s.GrossProfit)
		sum.Withheld = sum.Withheld.Add(s.Tax)
	}
	slices.Sort(years)
	slices.Reverse(years)

	res := make([]YearSummary, 0, len(years))
	for _, y := range years {
		sum := byYear[y]
		theoretical := e.rules.savingsTax(sum.GrossProfit).Sub(e.rules.SellCommission.Scale(decimal.NewFromInt(int64(sum.Sales))))
		sum.TheoreticalTax = MaxMoney(theoretical, zero)
		sum.Pending = sum.TheoreticalTax.Sub(sum.Withheld)
		sum.NetProfit = sum.GrossProfit.Sub(sum.TheoreticalTax)
		res = append(res, *sum)
	}
	return res
}
