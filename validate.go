package extracto

// balanceTolerance is the largest deviation accepted between a printed
// balance and the balance recomputed from the previous row.
var balanceTolerance = M(0.02, "")

// ValidationResult is the ledger annotated with balance continuity flags.
type ValidationResult struct {
	Ledger []Transaction
	Failed int // number of rows flagged inconsistent
}

// Validate checks the running balance of the ledger.
//
// Every row after the first must satisfy
// balance = previous balance + incoming - outgoing, within 0.02. A row
// without a printed balance is not checked; its amounts are carried to the
// next row that has one. The input is not modified.
func Validate(ledger []Transaction) ValidationResult {
	res := ValidationResult{Ledger: make([]Transaction, len(ledger))}
	copy(res.Ledger, ledger)
	var expected Money
	known := false
	for i := range res.Ledger {
		tx := &res.Ledger[i]
		tx.Consistent = true
		if known {
			expected = expected.Add(tx.Incoming).Sub(tx.Outgoing)
		}
		if !tx.HasBalance {
			continue
		}
		if known && expected.Sub(tx.Balance).Abs().GreaterThan(balanceTolerance) {
			tx.Consistent = false
			res.Failed++
		}
		expected, known = tx.Balance, true
	}
	return res
}
