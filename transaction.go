package extracto

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/extracto/date"
)

// Kind classifies a ledger entry.
type Kind int

const (
	KindOther Kind = iota
	KindTransfer
	KindTrade
	KindInterest
	KindDividend
	KindBonus
)

var kindLabels = [...]string{
	KindOther:    "other",
	KindTransfer: "transfer",
	KindTrade:    "trade",
	KindInterest: "interest",
	KindDividend: "dividend",
	KindBonus:    "bonus",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindLabels) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindLabels[k]
}

// IsIncome reports whether entries of this kind are income (interest,
// dividends and bonuses).
func (k Kind) IsIncome() bool {
	return k == KindInterest || k == KindDividend || k == KindBonus
}

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, l := range kindLabels {
		if l == s {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", s)
}

// Transaction is one row of the cash ledger.
type Transaction struct {
	Index       int       `json:"index"`
	RawDate     string    `json:"raw_date"`
	Date        date.Date `json:"date"` // zero when RawDate could not be parsed
	RawKind     string    `json:"raw_kind"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description"`
	ISIN        string    `json:"isin,omitempty"`
	Name        string    `json:"name,omitempty"`
	Quantity    Quantity  `json:"quantity"`
	HasQuantity bool      `json:"has_quantity"`
	Incoming    Money     `json:"incoming"`
	Outgoing    Money     `json:"outgoing"`
	Balance     Money     `json:"balance"`
	HasBalance  bool      `json:"has_balance"`
	Consistent  bool      `json:"consistent"`
}

// IsBuy reports whether the transaction is a trade that spends cash.
func (t Transaction) IsBuy() bool { return t.Kind == KindTrade && t.Outgoing.IsPositive() }

// IsSell reports whether the transaction is a trade that brings cash in.
func (t Transaction) IsSell() bool { return t.Kind == KindTrade && t.Incoming.IsPositive() }

// Currency returns the currency of the transaction amounts, "" when none
// is known.
func (t Transaction) Currency() string {
	for _, m := range []Money{t.Incoming, t.Outgoing, t.Balance} {
		if c := m.Currency(); c != "" {
			return c
		}
	}
	return ""
}

// IncomeRow is one row of the money market fund table.
type IncomeRow struct {
	Index     int       `json:"index"`
	RawDate   string    `json:"raw_date"`
	Date      date.Date `json:"date"`
	RawKind   string    `json:"raw_kind"`
	Kind      Kind      `json:"kind"`
	Fund      string    `json:"fund"`
	Quantity  Quantity  `json:"quantity"`
	UnitPrice Money     `json:"unit_price"`
	Amount    Money     `json:"amount"`
}

// Statement is the result of parsing a statement document: the cash ledger
// and the income table, kept apart.
type Statement struct {
	Cash   []Transaction `json:"cash"`
	Income []IncomeRow   `json:"income"`
}

// Undated returns the cash transactions whose date could not be parsed.
//
// They are kept in the ledger but sort before every dated transaction, so
// they deserve a manual review.
func (s *Statement) Undated() []Transaction {
	var res []Transaction
	for _, tx := range s.Cash {
		if tx.Date.IsZero() {
			res = append(res, tx)
		}
	}
	return res
}

// InstrumentKey identifies an instrument by its code when known, and by its
// name otherwise.
type InstrumentKey struct {
	code string
	name string
}

// ByCode returns the key of an instrument identified by its ISIN.
func ByCode(isin string) InstrumentKey { return InstrumentKey{code: isin} }

// ByName returns the key of an instrument known only by name.
func ByName(name string) InstrumentKey { return InstrumentKey{name: name} }

// KeyOf returns the instrument key of a trade.
func KeyOf(tx Transaction) InstrumentKey {
	if tx.ISIN != "" {
		return ByCode(tx.ISIN)
	}
	return ByName(tx.Name)
}

// IsCode reports whether the key is an instrument code.
func (k InstrumentKey) IsCode() bool { return k.code != "" }

// IsZero reports whether the key identifies nothing.
func (k InstrumentKey) IsZero() bool { return k.code == "" && k.name == "" }

func (k InstrumentKey) String() string {
	if k.IsCode() {
		return k.code
	}
	return k.name
}

// MarshalText encodes a code as is and a name as "name:<name>", so that a
// name never collides with a code.
func (k InstrumentKey) MarshalText() ([]byte, error) {
	if k.IsCode() {
		return []byte(k.code), nil
	}
	return []byte("name:" + k.name), nil
}
