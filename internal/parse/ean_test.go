package parse

import "testing"

func TestEAN(t *testing.T) {
	tests := []struct {
		in   any
		want string // "" means nil expected
	}{
		{"5901234123457", "5901234123457"},
		{"590-1234-123457", "5901234123457"},
		{" 5901234123457 ", "5901234123457"},
		{"590123412345", ""},   // 12 digits
		{"59012341234578", ""}, // 14 digits
		{"59012341234ab", ""},
		{nil, ""},
		{"", ""},
	}
	for _, tc := range tests {
		got := EAN(tc.in)
		if tc.want == "" {
			if got != nil {
				t.Fatalf("EAN(%v) = %q, want nil", tc.in, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("EAN(%v) = %v, want %q", tc.in, got, tc.want)
		}
	}
}
