package extracto

import (
	"cmp"
	"slices"

	"github.com/etnz/extracto/date"
)

// KindCount is the number of ledger entries of a kind.
type KindCount struct {
	Kind  Kind `json:"kind"`
	Count int  `json:"count"`
}

// LedgerSummary is an overview of a cash ledger.
type LedgerSummary struct {
	Count        int         `json:"count"`
	ByKind       []KindCount `json:"by_kind"` // most frequent first
	Incoming     Money       `json:"incoming"`
	Outgoing     Money       `json:"outgoing"`
	Undated      int         `json:"undated"`
	Inconsistent int         `json:"inconsistent"`
	From         date.Date   `json:"from"`
	To           date.Date   `json:"to"`
}

// Summarize counts the ledger entries by kind and totals the cash flows.
func Summarize(ledger []Transaction) LedgerSummary {
	s := LedgerSummary{Count: len(ledger)}
	counts := make(map[Kind]int)
	for _, tx := range ledger {
		counts[tx.Kind]++
		s.Incoming = s.Incoming.Add(tx.Incoming)
		s.Outgoing = s.Outgoing.Add(tx.Outgoing)
		if !tx.Consistent {
			s.Inconsistent++
		}
		if tx.Date.IsZero() {
			s.Undated++
			continue
		}
		if s.From.IsZero() || tx.Date.Before(s.From) {
			s.From = tx.Date
		}
		if tx.Date.After(s.To) {
			s.To = tx.Date
		}
	}
	for k, n := range counts {
		s.ByKind = append(s.ByKind, KindCount{Kind: k, Count: n})
	}
	slices.SortFunc(s.ByKind, func(a, b KindCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	return s
}
