package parse

import "strings"

// EAN validates a European Article Number: after trimming separators the
// value must be exactly 13 digits. Anything else is a parse failure; the
// engine never pads or truncates barcodes.
func EAN(v any) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(asString(v))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			// separator noise
		default:
			return nil
		}
	}
	out := b.String()
	if len(out) != 13 {
		return nil
	}
	return &out
}
