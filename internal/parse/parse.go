// Package parse implements the scalar parsers that turn raw, ambiguously
// formatted source values into canonical typed values.
//
// Every parser is a total function: it accepts a possibly-nil, possibly
// mistyped value and returns either the canonical value or a nil/zero result
// marking a parse failure. Failures are values, never errors; a malformed
// cell must not stop the batch.
//
// Design goals:
//   - No panics and no error returns on the hot path.
//   - Ambiguity is resolved by fixed precedence (see Date), not heuristics.
//   - Static lookup tables (country aliases, diacritic pairs, unit
//     conversions) are immutable package data, safe to share across workers.
package parse

import (
	"fmt"
	"strconv"
	"time"
)

// asString converts common scalar types to their string form without going
// through fmt for the frequent cases.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}
