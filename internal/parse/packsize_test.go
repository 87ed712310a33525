package parse

import "testing"

func TestPackageSize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"ml_to_liters", "6x330ml", "6 × 0.33 L"},
		{"unicode_times", "6×330ml", "6 × 0.33 L"},
		{"upper_x_spaces", "4 X 500 ml", "4 × 0.5 L"},
		{"grams_to_kg", "10x250g", "10 × 0.25 kg"},
		{"liters_passthrough", "0.5L", "1 × 0.5 L"},
		{"kg_passthrough", "2x1kg", "2 × 1 kg"},
		{"comma_decimal", "4x0,75l", "4 × 0.75 L"},
		{"bare_number_is_value", "12", "1 × 12"},
		{"count_only", "6x", "6"},
		{"unit_only", "3 x pcs", "3 × pcs"},
		{"unknown_unit_passthrough", "2x5oz", "2 × 5 oz"},
		{"no_count_defaults_one", "x330ml", "1 × 0.33 L"},
		{"blank", "", ""},
		{"nil", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PackageSize(tc.in); got != tc.want {
				t.Fatalf("PackageSize(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Rounding: at most two decimals, trailing zeros dropped.
func TestPackageSizeRounding(t *testing.T) {
	tests := []struct{ in, want string }{
		{"3x333ml", "3 × 0.33 L"},
		{"1x1000ml", "1 × 1 L"},
		{"1x100ml", "1 × 0.1 L"},
		{"1x125g", "1 × 0.13 kg"},
	}
	for _, tc := range tests {
		if got := PackageSize(tc.in); got != tc.want {
			t.Fatalf("PackageSize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
