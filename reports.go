package extracto

import (
	"encoding/json"
	"slices"
	"strconv"
	"time"

	"github.com/etnz/extracto/date"
)

// SaleMatch is the part of a sale matched against one purchase lot.
type SaleMatch struct {
	LotDate  date.Date `json:"lot_date"`
	Quantity Quantity  `json:"quantity"`
	UnitCost Money     `json:"unit_cost"`
	// BuyCommission is the lot's purchase commission when this sale is the
	// first to touch the lot, zero otherwise.
	BuyCommission       Money `json:"buy_commission"`
	AllocatedCommission Money `json:"allocated_commission"`
	AllocatedTax        Money `json:"allocated_tax"`
	GrossProfit         Money `json:"gross_profit"`
	NetProfit           Money `json:"net_profit"`
}

// RealizedSale is the outcome of one sell transaction.
type RealizedSale struct {
	Instrument InstrumentKey
	ISIN       string
	Name       string
	SellDate   date.Date
	Quantity   Quantity

	NetProceeds     Money // amount credited on the account
	GrossProceeds   Money // amount before commission and withholding
	SaleCommission  Money
	BuyCommissions  Money // purchase commissions charged to this sale
	TotalCommission Money
	Withheld        bool // withholding applies to this sale
	Tax             Money
	CostBasis       Money
	GrossProfit     Money
	NetProfit       Money

	Matches []SaleMatch
	// Unmatched is the quantity sold that no lot could cover.
	Unmatched Quantity
	// RemainingQuantity is the quantity still held after the sale.
	RemainingQuantity Quantity
	// Inconsistent is set when the sale row breaks the running balance of
	// the statement, so its amounts are doubtful.
	Inconsistent bool
}

func (s RealizedSale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("instrument", s.Instrument)
	w.Optional("isin", s.ISIN)
	w.Optional("name", s.Name)
	w.Append("sell_date", s.SellDate)
	w.Append("quantity", s.Quantity)
	w.Append("net_proceeds", s.NetProceeds)
	w.Append("gross_proceeds", s.GrossProceeds)
	w.Append("sale_commission", s.SaleCommission)
	w.Append("buy_commissions", s.BuyCommissions)
	w.Append("total_commission", s.TotalCommission)
	w.Optional("withheld", s.Withheld)
	w.Append("tax", s.Tax)
	w.Append("cost_basis", s.CostBasis)
	w.Append("gross_profit", s.GrossProfit)
	w.Append("net_profit", s.NetProfit)
	w.Append("matches", s.Matches)
	if !s.Unmatched.IsZero() {
		w.Append("unmatched", s.Unmatched)
	}
	w.Append("remaining_quantity", s.RemainingQuantity)
	w.Optional("inconsistent", s.Inconsistent)
	return w.MarshalJSON()
}

// OpenPosition is what is still held in an instrument.
type OpenPosition struct {
	Instrument  InstrumentKey `json:"instrument"`
	ISIN        string        `json:"isin,omitempty"`
	Name        string        `json:"name,omitempty"`
	Quantity    Quantity      `json:"quantity"`
	TotalCost   Money         `json:"total_cost"`
	AverageCost Money         `json:"average_cost"`
	Lots        int           `json:"lots"`
}

// IncomeRecord is an interest, dividend or bonus payment.
type IncomeRecord struct {
	Date        date.Date  `json:"date"`
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	Kind        Kind       `json:"kind"`
	Description string     `json:"description"`
	Gross       Money      `json:"gross"`
	ISIN        string     `json:"isin,omitempty"`
}

// IncomeTotals sums income by kind.
type IncomeTotals struct {
	Interest  Money `json:"interest"`
	Dividends Money `json:"dividends"`
	Bonus     Money `json:"bonus"`
	Total     Money `json:"total"`
}

func (t *IncomeTotals) add(r IncomeRecord) {
	switch r.Kind {
	case KindInterest:
		t.Interest = t.Interest.Add(r.Gross)
	case KindDividend:
		t.Dividends = t.Dividends.Add(r.Gross)
	case KindBonus:
		t.Bonus = t.Bonus.Add(r.Gross)
	}
	t.Total = t.Total.Add(r.Gross)
}

// IncomeByPeriod aggregates income by year and month.
type IncomeByPeriod map[int]map[time.Month]IncomeTotals

func (p IncomeByPeriod) add(r IncomeRecord) {
	months, ok := p[r.Year]
	if !ok {
		months = make(map[time.Month]IncomeTotals)
		p[r.Year] = months
	}
	t := months[r.Month]
	t.add(r)
	months[r.Month] = t
}

// Years returns the years with income, oldest first.
func (p IncomeByPeriod) Years() []int {
	years := make([]int, 0, len(p))
	for y := range p {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Year returns the totals of a whole year.
func (p IncomeByPeriod) Year(y int) IncomeTotals {
	var t IncomeTotals
	for _, m := range p[y] {
		t.Interest = t.Interest.Add(m.Interest)
		t.Dividends = t.Dividends.Add(m.Dividends)
		t.Bonus = t.Bonus.Add(m.Bonus)
		t.Total = t.Total.Add(m.Total)
	}
	return t
}

func (p IncomeByPeriod) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, y := range p.Years() {
		var months jsonObjectWriter
		for m := time.January; m <= time.December; m++ {
			if t, ok := p[y][m]; ok {
				months.Append(strconv.Itoa(int(m)), t)
			}
		}
		raw, err := months.MarshalJSON()
		if err != nil {
			return nil, err
		}
		w.Append(strconv.Itoa(y), json.RawMessage(raw))
	}
	return w.MarshalJSON()
}

// YearSummary estimates the savings tax of a year from its realized sales.
type YearSummary struct {
	Year        int   `json:"year"`
	Sales       int   `json:"sales"`
	GrossProfit Money `json:"gross_profit"`
	// Withheld is the tax already withheld by the broker.
	Withheld Money `json:"withheld"`
	// TheoreticalTax applies the savings brackets to the gross profit, less
	// the sale commissions.
	TheoreticalTax Money `json:"theoretical_tax"`
	// Pending is positive when tax is still due, negative when a refund is
	// expected.
	Pending   Money `json:"pending"`
	NetProfit Money `json:"net_profit"`
}

// TaxReport is the output of the tax engine.
type TaxReport struct {
	Currency string
	// Realized sales, most recent first.
	Realized []RealizedSale
	// Open positions, by instrument.
	Open []OpenPosition
	// Income records, in chronological order.
	Income []IncomeRecord
	// BySecurity lists the realized sales of each sold instrument, in
	// chronological order.
	BySecurity map[InstrumentKey][]RealizedSale
	// Instruments lists every traded instrument in order of first trade.
	Instruments    []InstrumentKey
	IncomeByPeriod IncomeByPeriod
	// Years summarizes the realized sales per year, most recent first.
	Years []YearSummary
}

// TotalNetProfit returns the sum of the net profit of all realized sales.
func (r *TaxReport) TotalNetProfit() Money {
	total := M(0, r.Currency)
	for _, s := range r.Realized {
		total = total.Add(s.NetProfit)
	}
	return total
}

// TotalTax returns the sum of the tax withheld on all realized sales.
func (r *TaxReport) TotalTax() Money {
	total := M(0, r.Currency)
	for _, s := range r.Realized {
		total = total.Add(s.Tax)
	}
	return total
}

func (r *TaxReport) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", r.Currency)
	w.Append("realized", nonNil(r.Realized))
	w.Append("open", nonNil(r.Open))
	w.Append("income", nonNil(r.Income))

	var detail jsonObjectWriter
	for _, k := range r.Instruments {
		if sales, ok := r.BySecurity[k]; ok {
			text, _ := k.MarshalText()
			detail.Append(string(text), sales)
		}
	}
	raw, err := detail.MarshalJSON()
	if err != nil {
		return nil, err
	}
	w.Append("fifo_detail", json.RawMessage(raw))
	w.Append("income_by_period", r.IncomeByPeriod)
	w.Append("years", nonNil(r.Years))
	return w.MarshalJSON()
}

// nonNil turns a nil slice into an empty one, encoded as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
