package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/extracto"
)

// CheckMarkdown renders the consistency check of a parsed statement: an
// overview of the ledger, then the rows to review by hand.
func CheckMarkdown(st *extracto.Statement, res extracto.ValidationResult) string {
	var b strings.Builder
	sum := extracto.Summarize(res.Ledger)

	fmt.Fprint(&b, "# Statement Check\n\n")
	if sum.From.IsZero() {
		fmt.Fprintf(&b, "%d transactions, %d income rows.\n\n", sum.Count, len(st.Income))
	} else {
		fmt.Fprintf(&b, "%d transactions from %s to %s, %d income rows.\n\n", sum.Count, sum.From, sum.To, len(st.Income))
	}

	fmt.Fprintln(&b, "| Kind | Count |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, k := range sum.ByKind {
		fmt.Fprintf(&b, "| %s | %d |\n", k.Kind, k.Count)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Money in: %s, money out: %s.\n\n", sum.Incoming, sum.Outgoing)

	if res.Failed == 0 {
		fmt.Fprint(&b, "The running balance is consistent.\n\n")
	}
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Balance Breaks\n\n")
		var rows []extracto.Transaction
		for _, tx := range res.Ledger {
			if !tx.Consistent {
				rows = append(rows, tx)
			}
		}
		LedgerTable(w, rows)
		return len(rows) > 0
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Undated Rows\n\n")
		rows := st.Undated()
		LedgerTable(w, rows)
		return len(rows) > 0
	})
	return b.String()
}

// LedgerTable writes transactions as a markdown table.
func LedgerTable(w io.Writer, ledger []extracto.Transaction) {
	fmt.Fprintln(w, "| # | Date | Kind | Description | In | Out | Balance |")
	fmt.Fprintln(w, "|---:|:---|:---|:---|---:|---:|---:|")
	for _, tx := range ledger {
		day := tx.Date.String()
		if tx.Date.IsZero() {
			day = cell(tx.RawDate)
		}
		balance := ""
		if tx.HasBalance {
			balance = tx.Balance.String()
		}
		fmt.Fprintf(w, "| %d | %s | %s | %s | %s | %s | %s |\n",
			tx.Index,
			day,
			tx.Kind,
			cell(tx.Description),
			amount(tx.Incoming),
			amount(tx.Outgoing),
			balance,
		)
	}
	fmt.Fprintln(w)
}

// amount formats a non-zero amount, and leaves the cell empty otherwise.
func amount(m extracto.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}
