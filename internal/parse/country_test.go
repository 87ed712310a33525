package parse

import "testing"

func TestCountry(t *testing.T) {
	tests := []struct{ in, want string }{
		{"polska", "Poland"},
		{"PL", "Poland"},
		{"Poland", "Poland"},
		{"DEUTSCHLAND", "Germany"},
		{"czech republic", "Czechia"},
		{"uk", "United Kingdom"},
		{" españa ", "Spain"},
		{"narnia", "Narnia"}, // unknown preserved, not dropped
		{"", ""},
	}
	for _, tc := range tests {
		if got := Country(tc.in); got != tc.want {
			t.Fatalf("Country(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCountryAliasesAgree(t *testing.T) {
	if Country("polska") != Country("PL") {
		t.Fatalf("alias forms disagree: %q vs %q", Country("polska"), Country("PL"))
	}
	if Country(nil) != "" {
		t.Fatalf("Country(nil) = %q, want empty", Country(nil))
	}
}
