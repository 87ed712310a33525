// Package transform maps cleaned source rows onto canonical records. Each
// Source carries the field mapping and per-field parser kinds for one input
// table; applying it yields records with canonical names and parsed values.
//
// Failure semantics follow the engine contract: a field that fails to parse
// becomes nil; a required field failing marks the whole row rejected and
// reported, never silently dropped; a natural-key column missing from the
// row shape is a configuration error and aborts the run.
package transform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"salesmart/internal/parse"
	"salesmart/pkg/records"
)

// Kind selects the scalar parser applied to a field.
type Kind string

const (
	KindID       Kind = "id"       // structured code: trim only, never normalized
	KindText     Kind = "text"     // free text: parse.Text
	KindDate     Kind = "date"     // parse.Date
	KindNumber   Kind = "number"   // parse.Number -> decimal
	KindInt      Kind = "int"      // parse.Number truncated to int
	KindLogical  Kind = "logical"  // parse.Logical
	KindCountry  Kind = "country"  // parse.Country
	KindPackSize Kind = "packsize" // parse.PackageSize
	KindEmail    Kind = "email"    // parse.Email
	KindPhone    Kind = "phone"    // parse.Phone
	KindEAN      Kind = "ean"      // parse.EAN
	KindMonth    Kind = "month"    // parse.Date folded to "YYYY-MM", or literal
)

// Field maps one source column onto a canonical field.
type Field struct {
	Source   string // column name after clean.Rows renaming
	Name     string // canonical field name
	Kind     Kind
	Required bool // parse failure rejects the row
}

// Source describes one input table: its canonical natural key and the full
// field mapping. Derive, when set, runs after parsing and may add computed
// fields (e.g. ascii_name from name).
type Source struct {
	Name   string
	Key    []string // canonical key field names; values must parse
	Fields []Field
	Derive func(records.Record)
}

// RejectedRow reports one row excluded from downstream stages.
type RejectedRow struct {
	Source string
	Line   int // 0-based position in the cleaned input
	Raw    records.Record
	Reason string
}

// Options control row-level parallelism. Zero values mean sequential.
type Options struct {
	Workers int
}

// Apply transforms all rows of one source. Output order matches input order
// regardless of Workers; deduplication depends on it. The returned error is
// non-nil only for configuration problems (missing key column in the row
// shape), which abort the whole run.
func (s Source) Apply(ctx context.Context, in []records.Record, reject func(RejectedRow), opts Options) ([]records.Record, error) {
	srcByName := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		srcByName[f.Name] = f
	}
	for _, key := range s.Key {
		if _, ok := srcByName[key]; !ok {
			return nil, fmt.Errorf("source %q: natural key field %q has no mapping", s.Name, key)
		}
	}

	out := make([]records.Record, len(in))
	reasons := make([]string, len(in))

	work := func(i int) error {
		rec, reason, err := s.transformRow(in[i])
		if err != nil {
			return err
		}
		out[i], reasons[i] = rec, reason
		return nil
	}

	if opts.Workers > 1 && len(in) > 1 {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range in {
			i := i
			g.Go(func() error { return work(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range in {
			if err := work(i); err != nil {
				return nil, err
			}
		}
	}

	// Compact in input order; rejected rows go to the sink with their
	// position, not to the output.
	kept := out[:0]
	for i, rec := range out {
		if rec == nil {
			if reject != nil {
				reject(RejectedRow{Source: s.Name, Line: i, Raw: in[i], Reason: reasons[i]})
			}
			continue
		}
		kept = append(kept, rec)
	}
	return kept, nil
}

// transformRow maps one row. A nil record with a reason means the row was
// rejected; a non-nil error means the source shape is wrong.
func (s Source) transformRow(row records.Record) (records.Record, string, error) {
	rec := make(records.Record, len(s.Fields))
	for _, f := range s.Fields {
		raw, exists := row[f.Source]
		if !exists {
			if contains(s.Key, f.Name) {
				return nil, "", fmt.Errorf("source %q: key column %q missing from row shape", s.Name, f.Source)
			}
			rec[f.Name] = nil
			continue
		}
		v := coerce(f.Kind, raw)
		if v == nil && (f.Required || contains(s.Key, f.Name)) {
			return nil, fmt.Sprintf("field %q: cannot parse %v as %s", f.Name, raw, f.Kind), nil
		}
		rec[f.Name] = v
	}
	if s.Derive != nil {
		s.Derive(rec)
	}
	return rec, "", nil
}

func coerce(kind Kind, v any) any {
	switch kind {
	case KindDate:
		if d := parse.Date(v); d != nil {
			return *d
		}
	case KindNumber:
		if d := parse.Number(v); d != nil {
			return *d
		}
	case KindInt:
		if d := parse.Number(v); d != nil {
			return int(d.IntPart())
		}
	case KindLogical:
		if b := parse.Logical(v); b != nil {
			return *b
		}
	case KindText:
		if t := parse.Text(v); t != nil {
			return *t
		}
	case KindCountry:
		if c := parse.Country(v); c != "" {
			return c
		}
	case KindPackSize:
		if p := parse.PackageSize(v); p != "" {
			return p
		}
	case KindEmail:
		if e := parse.Email(v); e != nil {
			return *e
		}
	case KindPhone:
		if p := parse.Phone(v); p != nil {
			return *p
		}
	case KindEAN:
		if e := parse.EAN(v); e != nil {
			return *e
		}
	case KindMonth:
		if m := month(v); m != "" {
			return m
		}
	case KindID:
		return idString(v)
	}
	return nil
}

// month folds a date into "YYYY-MM"; a value already in that shape passes
// through.
func month(v any) string {
	if d := parse.Date(v); d != nil {
		return d.Format("2006-01")
	}
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if len(s) == 7 && s[4] == '-' {
		if _, err := strconv.Atoi(s[:4]); err == nil {
			if m, err := strconv.Atoi(s[5:]); err == nil && m >= 1 && m <= 12 {
				return s
			}
		}
	}
	return ""
}

// idString trims a structured code without normalizing it.
func idString(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		return s
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
