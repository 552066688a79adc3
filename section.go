package extracto

import "strings"

// Section identifies one of the tables of a statement.
type Section int

const (
	// SectionCash is the cash ledger: every movement on the account.
	SectionCash Section = iota
	// SectionIncome is the money market fund table: interest and fund
	// distributions.
	SectionIncome
)

func (s Section) String() string {
	switch s {
	case SectionCash:
		return "cash"
	case SectionIncome:
		return "income"
	}
	return "unknown"
}

func (s Section) markers() (start, end keywordSet) {
	if s == SectionIncome {
		return incomeStartMarkers, incomeEndMarkers
	}
	return cashStartMarkers, cashEndMarkers
}

// SectionSpan is the part of a page that belongs to a section.
type SectionSpan struct {
	// Active is true when the page holds rows of the section.
	Active bool
	// Items are the page fragments inside the section.
	Items []TextFragment
	// Start and End point to the markers found on the page, if any.
	Start, End *TextFragment
	// Inside is the section state carried to the next page.
	Inside bool
}

// LocateSection finds the part of the page fragments that belongs to the
// section, given whether the previous page ended inside it.
//
// A start marker opens the section (fragments above it are excluded), an end
// marker closes it (fragments at or below it are excluded). The section
// stays open across pages until an end marker is found.
func LocateSection(s Section, inside bool, items []TextFragment) SectionSpan {
	startSet, endSet := s.markers()
	span := SectionSpan{
		Start: findMarker(items, startSet),
		End:   findMarker(items, endSet),
	}
	span.Active = inside || span.Start != nil
	if span.Active {
		span.Items = filter(items, func(it TextFragment) bool {
			if span.Start != nil && it.Y > span.Start.Y {
				return false
			}
			if span.End != nil && it.Y <= span.End.Y {
				return false
			}
			return true
		})
	}
	span.Inside = span.End == nil && span.Active
	return span
}

// findMarker returns the first fragment matching the marker set.
func findMarker(items []TextFragment, set keywordSet) *TextFragment {
	for i := range items {
		if set.match(normalizeText(strings.TrimSpace(items[i].Text))) {
			return &items[i]
		}
	}
	return nil
}
