package numparse

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "decimal comma with thousands dot", raw: "1.234,56", want: 1234.56},
		{name: "decimal comma", raw: "12,5", want: 12.5},
		{name: "plain dot decimal", raw: "12.5", want: 12.5},
		{name: "integer", raw: "120", want: 120},
		{name: "multiple grouping dots", raw: "1.234.567", want: 1234567},
		{name: "leading and trailing spaces", raw: "  7,25  ", want: 7.25},
		{name: "negative decimal comma", raw: "-3,5", want: -3.5},
		{name: "empty", raw: "", want: 0},
		{name: "whitespace only", raw: "   ", want: 0},
		{name: "non numeric", raw: "N/A", want: 0},
		{name: "garbage with digits", raw: "12a", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Float(tt.raw)
			if !almostEqual(got, tt.want) {
				t.Fatalf("Float(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	got, ok := Date("03/15/2024")
	if !ok {
		t.Fatal("expected valid date")
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Date() = %v, want %v", got, want)
	}

	for _, raw := range []string{"", "not a date", "2024-03-15", "13/40/2024"} {
		if _, ok := Date(raw); ok {
			t.Fatalf("Date(%q) unexpectedly parsed", raw)
		}
	}
}
