package parse

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// unitConversions folds small units into their canonical large ones and
// fixes the display casing of known symbols. Units not listed here pass
// through lowercased and unconverted; extending this table is a policy
// decision, not a bug fix.
var unitConversions = map[string]struct {
	symbol  string
	divisor int64
}{
	"ml": {"L", 1000},
	"l":  {"L", 1},
	"g":  {"kg", 1000},
	"kg": {"kg", 1},
}

// PackageSize canonicalizes a package-size description such as "6x330ml",
// "4 X 0,5 L", or a bare "12" into one of four shapes, depending on which
// parts the source supplied:
//
//	"{count}"                   no value, no unit
//	"{count} × {value} {unit}"  full information
//	"{count} × {value}"         magnitude without a unit
//	"{count} × {unit}"          unit without a magnitude
//
// The pack count defaults to 1 when no "x" delimiter (or no leading digits
// before it) is present. Values in ml/g are converted to L/kg; the number is
// rendered with at most two decimals, trailing zeros dropped. Nil or blank
// input yields "".
func PackageSize(v any) string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("×", "x", "X", "x").Replace(s)

	count := 1
	rest := s
	if i := strings.IndexByte(s, 'x'); i >= 0 {
		if n, ok := leadingInt(strings.TrimSpace(s[:i])); ok {
			count = n
		}
		rest = strings.TrimSpace(s[i+1:])
	}

	var num, unit strings.Builder
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			num.WriteRune(r)
		case unicode.IsLetter(r):
			unit.WriteRune(r)
		}
	}

	value := formatValue(num.String(), strings.ToLower(unit.String()))
	symbol := displayUnit(strings.ToLower(unit.String()))

	switch {
	case value == "" && symbol == "":
		return strconv.Itoa(count)
	case value != "" && symbol != "":
		return strconv.Itoa(count) + " × " + value + " " + symbol
	case value != "":
		return strconv.Itoa(count) + " × " + value
	default:
		return strconv.Itoa(count) + " × " + symbol
	}
}

// leadingInt extracts the leading digit run of s as an int.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// formatValue parses the numeric run, applies the unit conversion, and
// renders with at most two decimals, trailing zeros dropped.
func formatValue(numRun, unit string) string {
	d := Number(numRun)
	if d == nil {
		return ""
	}
	val := *d
	if conv, ok := unitConversions[unit]; ok && conv.divisor > 1 {
		val = val.Div(decimal.NewFromInt(conv.divisor))
	}
	f, _ := val.Round(2).Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// displayUnit returns the canonical symbol for a lowercased unit run, or the
// run itself when no conversion is known.
func displayUnit(unit string) string {
	if unit == "" {
		return ""
	}
	if conv, ok := unitConversions[unit]; ok {
		return conv.symbol
	}
	return unit
}
