// Package clean prepares raw source rows for transformation: it drops blank
// rows, trims string values, and rewrites field names into canonical form.
// Re-running on already-cleaned rows is a no-op.
package clean

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"salesmart/pkg/records"
)

// Rows drops rows where every field is nil or empty, trims whitespace from
// string values, and rewrites field names via Rename. Records are rebuilt,
// not mutated, so callers keep the raw input intact.
func Rows(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		if r.IsEmpty() {
			continue
		}
		rec := make(records.Record, len(r))
		for k, v := range r {
			if s, ok := v.(string); ok {
				v = strings.TrimSpace(s)
			}
			rec[Rename(k)] = v
		}
		out = append(out, rec)
	}
	return out
}

// Rename rewrites a field name: spaces become underscores, "#" becomes "No".
func Rename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "#", "No")
	return strings.ReplaceAll(name, " ", "_")
}

// deaccent decomposes, removes combining marks, and recomposes.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FieldName fully canonicalizes a source header into a snake_case ASCII
// identifier: lowercase, accents stripped, separator runs collapsed to a
// single underscore. Used when mapping source headers onto canonical fields.
func FieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "#", "no")
	ascii, _, _ := transform.String(deaccent, s)
	// Polish ł does not decompose into letter + combining mark.
	ascii = strings.ReplaceAll(ascii, "ł", "l")

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
