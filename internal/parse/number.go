package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Number parses v into a decimal. Already-numeric values pass through; text
// is cleaned first: "," becomes "." (commas in this data are European
// decimal separators), then everything except digits, ".", and a leading
// "-" is stripped.
//
// Known limitation: a value using "," as a thousands separator ("1,234") is
// read as 1.234. The sources do not use thousands separators; we do not try
// to guess.
func Number(v any) *decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		return &t
	case int:
		return decPtr(decimal.NewFromInt(int64(t)))
	case int64:
		return decPtr(decimal.NewFromInt(t))
	case float64:
		return decPtr(decimal.NewFromFloat(t))
	}

	s := strings.ReplaceAll(strings.TrimSpace(asString(v)), ",", ".")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }
