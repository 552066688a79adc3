package extracto

import "testing"

func texts(items []TextFragment) []string {
	var res []string
	for _, it := range items {
		res = append(res, it.Text)
	}
	return res
}

func TestLocateSection(t *testing.T) {
	page := []TextFragment{
		frag("Intro", 50, 750),
		frag("UMSATZÜBERSICHT", 50, 700),
		frag("row a", 50, 650),
		frag("row b", 50, 620),
		frag("BARMITTELÜBERSICHT", 50, 600),
		frag("after", 50, 550),
	}

	tests := []struct {
		name       string
		inside     bool
		items      []TextFragment
		wantActive bool
		wantInside bool
		wantTexts  []string
	}{
		{
			name:       "start and end on the same page",
			items:      page,
			wantActive: true,
			wantInside: false,
			wantTexts:  []string{"UMSATZÜBERSICHT", "row a", "row b"},
		},
		{
			name:       "start only",
			items:      page[:4],
			wantActive: true,
			wantInside: true,
			wantTexts:  []string{"UMSATZÜBERSICHT", "row a", "row b"},
		},
		{
			name:       "continuation page",
			inside:     true,
			items:      []TextFragment{frag("row c", 50, 700), frag("row d", 50, 650)},
			wantActive: true,
			wantInside: true,
			wantTexts:  []string{"row c", "row d"},
		},
		{
			name:       "end of a continued section",
			inside:     true,
			items:      []TextFragment{frag("row e", 50, 700), frag("Cash summary", 50, 650), frag("other", 50, 600)},
			wantActive: true,
			wantInside: false,
			wantTexts:  []string{"row e"},
		},
		{
			name:       "outside",
			items:      []TextFragment{frag("row", 50, 700)},
			wantActive: false,
			wantInside: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := LocateSection(SectionCash, tt.inside, tt.items)
			if span.Active != tt.wantActive {
				t.Errorf("Active = %v, want %v", span.Active, tt.wantActive)
			}
			if span.Inside != tt.wantInside {
				t.Errorf("Inside = %v, want %v", span.Inside, tt.wantInside)
			}
			got := texts(span.Items)
			if len(got) != len(tt.wantTexts) {
				t.Fatalf("Items = %q, want %q", got, tt.wantTexts)
			}
			for i := range got {
				if got[i] != tt.wantTexts[i] {
					t.Errorf("Items[%d] = %q, want %q", i, got[i], tt.wantTexts[i])
				}
			}
		})
	}
}

func TestLocateSection_Multilingual(t *testing.T) {
	tests := []struct {
		section Section
		marker  string
		start   bool
	}{
		{SectionCash, "Umsatzübersicht", true},
		{SectionCash, "TRANSAZIONI SUL CONTO", true},
		{SectionCash, "Account transactions", true},
		{SectionCash, "RESUMEN DE MOVIMIENTOS", true},
		{SectionCash, "Transacciones de cuenta", true},
		{SectionCash, "Balance overview", false},
		{SectionCash, "Resumen del saldo", false},
		{SectionIncome, "Transaktionsübersicht", true},
		{SectionIncome, "Transaction overview", true},
		{SectionIncome, "Detalle del fondo", true},
		{SectionIncome, "Hinweise zum Kontoauszug", false},
		{SectionIncome, "Notas sobre el extracto", false},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			span := LocateSection(tt.section, !tt.start, []TextFragment{frag(tt.marker, 50, 700)})
			if tt.start && span.Start == nil {
				t.Errorf("%q is not a %s start marker", tt.marker, tt.section)
			}
			if !tt.start && span.End == nil {
				t.Errorf("%q is not a %s end marker", tt.marker, tt.section)
			}
		})
	}
}
