package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/extracto"
	"github.com/etnz/extracto/date"
)

func TestRunEngine_Validates(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	eur := func(v float64) extracto.Money { return extracto.M(v, "EUR") }
	trade := func(i int, day date.Date, in, out, balance float64) extracto.Transaction {
		return extracto.Transaction{
			Index: i, Date: day, Kind: extracto.KindTrade,
			ISIN: "IE00B4L5Y983", Quantity: extracto.Q(10), HasQuantity: true,
			Incoming: eur(in), Outgoing: eur(out), Balance: eur(balance), HasBalance: true,
			Consistent: true,
		}
	}

	tests := []struct {
		name    string
		balance float64
		want    bool
	}{
		{"balanced", 1018, false},
		{"broken", 1500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := runEngine([]extracto.Transaction{
				trade(0, date.New(2025, time.January, 2), 0, 101, 899),
				trade(1, date.New(2025, time.August, 15), 119, 0, tt.balance),
			}, cfg)
			if len(report.Realized) != 1 {
				t.Fatalf("Realized = %d sales, want 1", len(report.Realized))
			}
			if got := report.Realized[0].Inconsistent; got != tt.want {
				t.Errorf("Inconsistent = %v, want %v", got, tt.want)
			}
			raw, err := json.Marshal(report)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Contains(string(raw), `"inconsistent":true`); got != tt.want {
				t.Errorf("JSON %s: inconsistent written = %v, want %v", raw, got, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.json")
	if err := writeJSON(path, map[string]int{"rows": 4}); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"rows\": 4\n}\n"; string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	if err := writeJSON(filepath.Join(t.TempDir(), "missing", "out.json"), 1); err == nil {
		t.Error("writeJSON() into a missing directory succeeded")
	}
}
