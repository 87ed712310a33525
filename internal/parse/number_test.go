package parse

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain", "175.26", "175.26"},
		{"european_comma", "175,26", "175.26"},
		{"currency_noise", "1 234,50 zł", "1234.5"},
		{"negative", "-12.5", "-12.5"},
		{"int_passthrough", 42, "42"},
		{"float_passthrough", 3.14, "3.14"},
		{"integer_text", "1000", "1000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Number(tc.in)
			if got == nil {
				t.Fatalf("Number(%v) = nil, want %s", tc.in, tc.want)
			}
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("Number(%v) = %s, want %s", tc.in, got, want)
			}
		})
	}
}

func TestNumberCommaEqualsDot(t *testing.T) {
	a, b := Number("175,26"), Number("175.26")
	if a == nil || b == nil || !a.Equal(*b) {
		t.Fatalf("comma and dot forms differ: %v vs %v", a, b)
	}
}

func TestNumberFailures(t *testing.T) {
	for _, in := range []any{nil, "", "   ", "abc", "-", "zł"} {
		if got := Number(in); got != nil {
			t.Fatalf("Number(%v) = %s, want nil", in, got)
		}
	}
}

// Documented limitation: a thousands-separator comma reads as a decimal
// point. The engine does not guess; this pins the behavior so a future
// change is a conscious one.
func TestNumberThousandsSeparatorLimitation(t *testing.T) {
	got := Number("1,234")
	if got == nil || !got.Equal(decimal.RequireFromString("1.234")) {
		t.Fatalf("Number(\"1,234\") = %v, want 1.234", got)
	}
}
