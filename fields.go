package extracto

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/etnz/extracto/date"
	"github.com/shopspring/decimal"
)

var (
	amountRegex     = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?`)
	currencyCodes   = regexp.MustCompile(`(?i)EUR|USD|GBP|CHF`)
	isoDateRegex    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	dottedDateRegex = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	namedDateRegex  = regexp.MustCompile(`(\d{1,2})\s+([\p{L}.\-]+)\s*(\d{4})?`)
	dateLikeRegex   = regexp.MustCompile(`\b\d{1,2}\s+\p{L}{3,}|\b\d{1,2}\.\d{1,2}\.\d{4}|\b\d{4}\b`)

	quantityRegex = regexp.MustCompile(`(?i)(?:` + strings.Join(quantityKeywords, "|") + `)[:\s]+([0-9]+(?:[.,][0-9]+)*)`)
	isinToken     = regexp.MustCompile(`(?i)\b([A-Z]{2}[A-Z0-9]{9}[0-9])\b`)
	looseISIN     = regexp.MustCompile(`\b([A-Z]{1,2}[0-9A-Z\-]{6,})\b`)
	letterDigit   = regexp.MustCompile(`[A-Z]{1,2}\d`)
	actionRegex   = regexp.MustCompile(`(?i)^(?:` + quoteAll(actionPrefixes) + `)(?:\s+|$)`)
)

func quoteAll(list []string) string {
	quoted := make([]string, len(list))
	for i, s := range list {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}

// ParseAmount parses a localized amount like "1.234,56 €" where '.' groups
// thousands and ',' is the decimal separator.
//
// Text that cannot be parsed yields zero: a bad cell never stops a parse.
func ParseAmount(s, currency string) Money {
	s = strings.TrimSpace(s)
	negative := strings.HasSuffix(s, "-")
	s = strings.TrimSuffix(s, "-")
	s = currencyCodes.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	num := amountRegex.FindString(s)
	if num == "" {
		return M(0, currency)
	}
	v, err := decimal.NewFromString(num)
	if err != nil {
		return M(0, currency)
	}
	if negative {
		v = v.Neg()
	}
	return M(v, currency)
}

// ParseQuantity parses a localized number of units, using the same rules
// as ParseAmount.
func ParseQuantity(s string) Quantity {
	return Q(ParseAmount(s, "").Decimal())
}

// ParseStatementDate parses a statement date such as "14 ago 2024",
// "03 Dez.", "14.08.2024" or "2024-08-14".
//
// fallbackYear is used when the text carries no year. It returns false when
// no date can be read.
func ParseStatementDate(raw string, fallbackYear int) (date.Date, bool) {
	raw = collapseSpaces(raw)
	if raw == "" {
		return date.Date{}, false
	}
	if m := isoDateRegex.FindStringSubmatch(raw); m != nil {
		return validDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
	}
	if m := dottedDateRegex.FindStringSubmatch(raw); m != nil {
		return validDate(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]))
	}
	m := namedDateRegex.FindStringSubmatch(raw)
	if m == nil {
		return date.Date{}, false
	}
	month, ok := lookupMonth(m[2])
	if !ok {
		return date.Date{}, false
	}
	year := fallbackYear
	if m[3] != "" {
		year = atoi(m[3])
	}
	return validDate(year, month, atoi(m[1]))
}

// lookupMonth resolves a month name, trying the full token then its first
// three letters.
func lookupMonth(token string) (time.Month, bool) {
	token = strings.ToLower(strings.ReplaceAll(token, ".", ""))
	if m, ok := monthNames[token]; ok {
		return m, true
	}
	r := []rune(token)
	if len(r) < 3 {
		return 0, false
	}
	m, ok := monthNames[string(r[:3])]
	return m, ok
}

// validDate builds the date, rejecting days that do not exist in the month.
func validDate(year int, month time.Month, day int) (date.Date, bool) {
	if month < time.January || month > time.December || day < 1 {
		return date.Date{}, false
	}
	d := date.New(year, month, day)
	if d.Day() != day {
		return date.Date{}, false
	}
	return d, true
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

// isDateLike reports whether s looks like the date cell of a data row.
func isDateLike(s string) bool { return dateLikeRegex.MatchString(s) }

// ParseKind maps the localized type column to a Kind.
func ParseKind(raw string) Kind {
	norm := normalizeText(raw)
	if k, ok := kindNames[norm]; ok {
		return k
	}
	if first, _, found := strings.Cut(norm, " "); found {
		if k, ok := kindNames[first]; ok {
			return k
		}
	}
	return KindOther
}

// Description is a trade description split into its parts.
type Description struct {
	Text        string
	ISIN        string
	ValidISIN   bool // ISIN passes the check digit test
	Name        string
	Quantity    Quantity
	HasQuantity bool
}

// DecomposeDescription extracts the quantity, the instrument code and the
// instrument name out of a description like
// "Buy trade IE00B4L5Y983 iShares Core MSCI World, quantity: 1,5".
func DecomposeDescription(desc string) Description {
	res := Description{Text: collapseSpaces(desc)}
	d := res.Text

	if m := quantityRegex.FindStringSubmatchIndex(d); m != nil {
		raw := d[m[2]:m[3]]
		if strings.Contains(raw, ".") && strings.Contains(raw, ",") {
			res.Quantity = ParseQuantity(raw)
			res.HasQuantity = true
		} else if q, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ".")); err == nil {
			// either separator is the decimal point
			res.Quantity = Q(q)
			res.HasQuantity = true
		}
		d = d[:m[0]] + d[m[1]:]
	}

	if m := isinToken.FindStringSubmatchIndex(d); m != nil {
		res.ISIN = strings.ToUpper(d[m[2]:m[3]])
		d = d[:m[0]] + d[m[1]:]
	} else if m := looseISIN.FindStringSubmatchIndex(d); m != nil {
		if cand := d[m[2]:m[3]]; letterDigit.MatchString(cand) {
			res.ISIN = cand
			d = d[:m[0]] + d[m[1]:]
		}
	}
	if res.ISIN != "" {
		res.ValidISIN = ValidateISIN(res.ISIN) == nil
	}

	d = actionRegex.ReplaceAllString(strings.TrimSpace(d), "")
	res.Name = strings.Trim(collapseSpaces(d), " ,:-")
	return res
}

// IsSavingsPlan reports whether the description marks an automated
// recurring purchase.
func IsSavingsPlan(desc string, markers []string) bool {
	lower := strings.ToLower(desc)
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
