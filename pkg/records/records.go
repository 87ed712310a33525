// Package records defines the loosely-typed row representation that flows
// between pipeline stages. A Record maps canonical field names to raw or
// parsed values; absence and nil both mean "no value".
package records

// Record is one row. Values may be string, int, int64, float64, bool,
// time.Time, decimal.Decimal, or nil.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsEmpty reports whether every value in r is nil or an empty string.
func (r Record) IsEmpty() bool {
	for _, v := range r {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return false
	}
	return true
}

// String returns the value under key as a string, or "" when the value is
// missing, nil, or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}
