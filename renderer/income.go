package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/extracto"
)

// IncomeMarkdown renders the interest, dividends and bonuses received, by
// year and month.
func IncomeMarkdown(r *extracto.TaxReport) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Income Report\n\n")

	years := r.IncomeByPeriod.Years()
	if len(years) == 0 {
		fmt.Fprint(&b, "No income.\n")
	}
	// most recent first, like the other reports
	for i := len(years) - 1; i >= 0; i-- {
		y := years[i]
		fmt.Fprintf(&b, "## %d\n\n", y)
		fmt.Fprintln(&b, "| Month | Interest | Dividends | Bonus | Total |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
		for m := time.January; m <= time.December; m++ {
			t, ok := r.IncomeByPeriod[y][m]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", m, t.Interest, t.Dividends, t.Bonus, t.Total)
		}
		t := r.IncomeByPeriod.Year(y)
		fmt.Fprintf(&b, "| **%d** | **%s** | **%s** | **%s** | **%s** |\n\n", y, t.Interest, t.Dividends, t.Bonus, t.Total)
	}

	var undated []extracto.IncomeRecord
	for _, rec := range r.Income {
		if rec.Date.IsZero() {
			undated = append(undated, rec)
		}
	}
	if len(undated) > 0 {
		fmt.Fprint(&b, "## Undated Income\n\n")
		for _, rec := range undated {
			fmt.Fprintf(&b, "- %s: %s %s\n", rec.Kind, rec.Description, rec.Gross)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
