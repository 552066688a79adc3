package extracto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented letters and drops the combining marks,
// so that "Umsatzübersicht" and "UMSATZUBERSICHT" compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText strips diacritics, collapses whitespace and upper-cases s.
// All keyword comparisons are made on normalized text.
func normalizeText(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	return strings.ToUpper(collapseSpaces(stripped))
}

// collapseSpaces trims s and replaces every run of whitespace (including
// non-breaking spaces) with a single space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isUpper reports whether s has no lower case letters.
func isUpper(s string) bool { return s == strings.ToUpper(s) }
