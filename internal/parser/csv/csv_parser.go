// Package csv implements a streaming CSV parser producing records keyed by
// canonical header names. It never buffers the whole input, so large source
// files are safe to feed through it.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"salesmart/internal/clean"
	"salesmart/internal/parser"
	"salesmart/pkg/records"
)

var _ parser.Parser = (*Parser)(nil)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing whitespace from each field value.
	TrimSpace bool

	// ExpectedFields, when > 0, enforces a fixed field count per record.
	// Rows with a different width are skipped (soft-fail) and counted.
	ExpectedFields int

	// HeaderMap maps raw source header names to canonical keys. Entries
	// match the header text exactly, before any normalization; headers
	// without an entry fall back to clean.FieldName. Only applies when
	// HasHeader is true.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Parse consumes CSV records from r and returns the parsed rows along with
// the number of rows that were skipped due to parse errors or field-count
// mismatches. Empty cells become nil values so downstream cleaning can tell
// "absent" from "blank string".
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1

	var headers []string
	var out []records.Record
	var skipped int

	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = normalizeHeaders(h, p.opt)
	} else if p.opt.ExpectedFields > 0 {
		headers = make([]string, p.opt.ExpectedFields)
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i)
		}
	}

	const logLimit = 400
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < logLimit {
				log.Printf("Skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if len(headers) > 0 && len(row) != len(headers) {
			if skipped < logLimit {
				log.Printf("Skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil; all other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys: HeaderMap wins when it
// has an entry for the raw header text, everything else goes through
// clean.FieldName. A UTF-8 BOM on the first cell is stripped.
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if m, ok := opt.HeaderMap[c]; ok {
			res[i] = m
			continue
		}
		res[i] = clean.FieldName(c)
	}
	return res
}
