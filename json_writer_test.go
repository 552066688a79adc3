package extracto

import "testing"

func TestJsonObjectWriter(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *jsonObjectWriter)
		want  string
	}{
		{
			name:  "empty",
			write: func(w *jsonObjectWriter) {},
			want:  `{}`,
		},
		{
			name: "order is kept",
			write: func(w *jsonObjectWriter) {
				w.Append("sell_date", "2025-08-15")
				w.Append("quantity", 10)
				w.Append("isin", "IE00B4L5Y983")
			},
			want: `{"sell_date":"2025-08-15","quantity":10,"isin":"IE00B4L5Y983"}`,
		},
		{
			name: "keys are escaped",
			write: func(w *jsonObjectWriter) {
				w.Append(`fund "core"`, 1)
			},
			want: `{"fund \"core\"":1}`,
		},
		{
			name: "optional",
			write: func(w *jsonObjectWriter) {
				w.Append("tax", 0)
				w.Optional("withheld", false)
				w.Optional("isin", "")
				w.Optional("name", "Core MMF")
			},
			want: `{"tax":0,"name":"Core MMF"}`,
		},
		{
			name: "money",
			write: func(w *jsonObjectWriter) {
				w.Append("eur", EUR(4.691358))
				w.Append("weak", NO(4.691358))
			},
			want: `{"eur":{"currency":"EUR","amount":"4.69"},"weak":{"amount":"4.691358"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w jsonObjectWriter
			tt.write(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJsonObjectWriter_Error(t *testing.T) {
	var w jsonObjectWriter
	w.Append("bad", make(chan int))
	w.Append("good", 1)
	if _, err := w.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() accepted a channel")
	}
}
