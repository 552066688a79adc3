package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/extracto"
)

// TaxMarkdown renders the realized sales and the yearly tax estimate.
func TaxMarkdown(r *extracto.TaxReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Report\n\n")
	fmt.Fprintf(&b, "Currency: %s\n\n", r.Currency)

	fmt.Fprint(&b, "## Realized Sales\n\n")
	if len(r.Realized) == 0 {
		fmt.Fprint(&b, "No sales.\n\n")
	} else {
		fmt.Fprintln(&b, "| Date | Instrument | Quantity | Gross | Cost | Commissions | Tax | Net Profit |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")
		for _, s := range r.Realized {
			tax := s.Tax.String()
			if s.Withheld {
				tax += " (withheld)"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				s.SellDate,
				instrument(s.ISIN, s.Name),
				s.Quantity,
				s.GrossProceeds,
				s.CostBasis,
				s.TotalCommission,
				tax,
				s.NetProfit.SignedString(),
			)
		}
		fmt.Fprintf(&b, "| **%s** | | | | | | **%s** | **%s** |\n\n",
			"Total",
			r.TotalTax(),
			r.TotalNetProfit().SignedString(),
		)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		shorts := 0
		fmt.Fprint(w, "### Unmatched Sales\n\n")
		fmt.Fprint(w, "These sales exceed the quantity bought in the statement.\n\n")
		for _, s := range r.Realized {
			if s.Unmatched.IsZero() {
				continue
			}
			shorts++
			fmt.Fprintf(w, "- %s %s: %s units without purchase\n", s.SellDate, instrument(s.ISIN, s.Name), s.Unmatched)
		}
		fmt.Fprintln(w)
		return shorts > 0
	})

	YearsMarkdown(&b, r.Years)
	return b.String()
}

// YearsMarkdown writes the savings tax estimate of each year.
func YearsMarkdown(w io.Writer, years []extracto.YearSummary) {
	if len(years) == 0 {
		return
	}
	fmt.Fprint(w, "## Savings Tax Estimate\n\n")
	fmt.Fprintln(w, "| Year | Sales | Gross Profit | Theoretical Tax | Withheld | Pending | Net Profit |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, y := range years {
		fmt.Fprintf(w, "| %d | %d | %s | %s | %s | %s | %s |\n",
			y.Year,
			y.Sales,
			y.GrossProfit.SignedString(),
			y.TheoreticalTax,
			y.Withheld,
			y.Pending.SignedString(),
			y.NetProfit.SignedString(),
		)
	}
	fmt.Fprintln(w)
}

// FIFODetailMarkdown renders, per instrument, every sale and the lots it
// consumed.
func FIFODetailMarkdown(r *extracto.TaxReport) string {
	var b strings.Builder
	fmt.Fprint(&b, "# FIFO Detail\n\n")
	for _, key := range r.Instruments {
		sales, ok := r.BySecurity[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", instrument(sales[0].ISIN, sales[0].Name))
		for _, s := range sales {
			fmt.Fprintf(&b, "### Sale of %s on %s\n\n", s.Quantity, s.SellDate)
			fmt.Fprintf(&b, "Credited %s, gross %s, remaining %s units.\n\n", s.NetProceeds, s.GrossProceeds, s.RemainingQuantity)
			if len(s.Matches) == 0 {
				fmt.Fprint(&b, "No purchase lot.\n\n")
				continue
			}
			fmt.Fprintln(&b, "| Lot Date | Quantity | Unit Cost | Buy Commission | Sale Commission | Tax | Net Profit |")
			fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
			for _, m := range s.Matches {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
					m.LotDate,
					m.Quantity,
					m.UnitCost,
					m.BuyCommission,
					m.AllocatedCommission,
					m.AllocatedTax,
					m.NetProfit.SignedString(),
				)
			}
			fmt.Fprintln(&b)
		}
	}
	return b.String()
}

// OpenPositionsMarkdown renders what is still held.
func OpenPositionsMarkdown(r *extracto.TaxReport) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Open Positions\n\n")
	if len(r.Open) == 0 {
		fmt.Fprint(&b, "No open position.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Instrument | Quantity | Total Cost | Average Cost | Lots |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	total := extracto.M(0, r.Currency)
	for _, p := range r.Open {
		total = total.Add(p.TotalCost)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
			instrument(p.ISIN, p.Name),
			p.Quantity,
			p.TotalCost,
			p.AverageCost,
			p.Lots,
		)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | | |\n", total)
	return b.String()
}

// instrument formats an instrument for a table cell.
func instrument(isin, name string) string {
	switch {
	case isin == "":
		return cell(name)
	case name == "":
		return isin
	default:
		return fmt.Sprintf("%s (%s)", cell(name), isin)
	}
}

// cell escapes text for a markdown table cell.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
