package parse

import "strings"

// Fixed boolean vocabularies, matched on the uppercased text form.
var (
	truthy = map[string]struct{}{"YES": {}, "Y": {}, "TRUE": {}, "1": {}}
	falsy  = map[string]struct{}{"NO": {}, "N": {}, "FALSE": {}, "0": {}}
)

// Logical parses v into a bool. Numeric 0/1 and native bools are stringified
// first, then matched against the truthy/falsy sets. Anything else, nil
// included, is a parse failure.
func Logical(v any) *bool {
	if v == nil {
		return nil
	}
	if b, ok := v.(bool); ok {
		return &b
	}
	s := strings.ToUpper(strings.TrimSpace(asString(v)))
	if _, ok := truthy[s]; ok {
		t := true
		return &t
	}
	if _, ok := falsy[s]; ok {
		f := false
		return &f
	}
	return nil
}
