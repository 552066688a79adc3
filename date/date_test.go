package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	got := New(2025, time.February, 30)
	if want := New(2025, time.March, 2); got != want {
		t.Errorf("New(2025, 2, 30) = %v, want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	a := New(2025, 6, 30)
	b := New(2025, 7, 1)
	tests := []struct {
		name string
		x, y Date
		want int
	}{
		{"before", a, b, -1},
		{"after", b, a, 1},
		{"equal", a, a, 0},
		{"zero first", Date{}, a, -1},
		{"zero last", a, Date{}, 1},
		{"both zero", Date{}, Date{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.x, tt.y); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Date
		err   bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("Parse(%q) error = %v, want error %v", tt.input, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	type holder struct {
		On Date `json:"on"`
	}
	data, err := json.Marshal(holder{On: New(2024, 8, 14)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"on":"2024-08-14"}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	data, err = json.Marshal(holder{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"on":null}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var h holder
	if err := json.Unmarshal([]byte(`{"on":null}`), &h); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !h.On.IsZero() {
		t.Errorf("null date decoded as %v, want zero", h.On)
	}
}
