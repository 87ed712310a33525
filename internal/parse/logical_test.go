package parse

import "testing"

func TestLogical(t *testing.T) {
	truthyIn := []any{"Y", "y", "YES", "yes", "TRUE", "True", "1", 1, true}
	for _, in := range truthyIn {
		got := Logical(in)
		if got == nil || !*got {
			t.Fatalf("Logical(%v) = %v, want true", in, got)
		}
	}
	falsyIn := []any{"N", "no", "FALSE", "false", "0", 0, false}
	for _, in := range falsyIn {
		got := Logical(in)
		if got == nil || *got {
			t.Fatalf("Logical(%v) = %v, want false", in, got)
		}
	}
	for _, in := range []any{nil, "", "maybe", "2", "tak"} {
		if got := Logical(in); got != nil {
			t.Fatalf("Logical(%v) = %v, want nil", in, got)
		}
	}
}
