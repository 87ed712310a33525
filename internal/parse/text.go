package parse

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// allowedDiacritics is the fixed allow-list of accented letters that survive
// Text; everything outside ASCII letters, digits, space, period, and this
// set is dropped.
const allowedDiacritics = "ąćęłńóśźżĄĆĘŁŃÓŚŹŻ"

// diacriticPairs is the ordered substitution table used by StripDiacritics.
// Substitutions target disjoint characters, so the order does not change the
// result, but it is fixed anyway to keep behavior reproducible.
var diacriticPairs = [][2]string{
	{"ą", "a"}, {"ć", "c"}, {"ę", "e"}, {"ł", "l"}, {"ń", "n"},
	{"ó", "o"}, {"ś", "s"}, {"ź", "z"}, {"ż", "z"},
	{"Ą", "A"}, {"Ć", "C"}, {"Ę", "E"}, {"Ł", "L"}, {"Ń", "N"},
	{"Ó", "O"}, {"Ś", "S"}, {"Ź", "Z"}, {"Ż", "Z"},
}

var titleCaser = cases.Title(language.Und)

// Text normalizes free-form descriptive text: keeps letters (ASCII plus the
// diacritic allow-list), digits, spaces, and periods; collapses whitespace
// runs; trims; title-cases. Returns nil for nil or blank input.
//
// Not safe for structured codes (order IDs, SKUs, EANs): title-casing and
// character stripping would corrupt them. Callers map identifier fields to
// the id kind instead.
func Text(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case strings.ContainsRune(allowedDiacritics, r):
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if out == "" {
		return nil
	}
	out = titleCaser.String(out)
	return &out
}

// StripDiacritics replaces accented letters with their ASCII equivalents
// using the fixed substitution table. Characters outside the table pass
// through unchanged.
func StripDiacritics(s string) string {
	for _, p := range diacriticPairs {
		s = strings.ReplaceAll(s, p[0], p[1])
	}
	return s
}

// Email canonicalizes an e-mail address: trim, lowercase, strip diacritics,
// drop anything non-ASCII. Returns nil for nil, blank, or an address without
// "@".
func Email(v any) *string {
	if v == nil {
		return nil
	}
	s := StripDiacritics(strings.ToLower(strings.TrimSpace(asString(v))))
	var b strings.Builder
	for _, r := range s {
		if r < 128 && !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" || !strings.Contains(out, "@") {
		return nil
	}
	return &out
}

// Phone canonicalizes a phone number to digits plus an optional leading "+".
// Returns nil when no digits remain.
func Phone(v any) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(asString(v))
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" || out == "+" {
		return nil
	}
	return &out
}
