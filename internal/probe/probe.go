// Package probe inspects a raw source file and suggests the run-config
// stanza for it: the detected delimiter, the canonical header names, and
// the canonical table whose field mapping matches the headers best. It is
// a configuration aid, not part of the run path.
package probe

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"salesmart/internal/clean"
	"salesmart/internal/config"
	"salesmart/internal/pipeline"
)

// sampleLimit bounds how much of the input is read for inspection.
const sampleLimit = 256 * 1024

// maxSampleRows bounds how many body rows are kept in the Result.
const maxSampleRows = 5

// Header pairs a raw header cell with its canonical form.
type Header struct {
	Raw       string
	Canonical string
}

// Result is the outcome of probing one file.
type Result struct {
	Delimiter rune
	Headers   []Header
	Rows      [][]string // up to maxSampleRows body rows

	// Table is the best-matching canonical table; Matched counts how many
	// of its mapped columns were found among the headers.
	Table   string
	Matched int
}

// Probe reads a sample from r and inspects it.
func Probe(r io.Reader) (Result, error) {
	sample, err := io.ReadAll(io.LimitReader(r, sampleLimit))
	if err != nil {
		return Result{}, fmt.Errorf("probe: read sample: %w", err)
	}
	// Cut at the last newline to avoid a half record at the end.
	if i := bytes.LastIndexByte(sample, '\n'); i > 0 {
		sample = sample[:i+1]
	}
	if len(bytes.TrimSpace(sample)) == 0 {
		return Result{}, fmt.Errorf("probe: empty input")
	}

	delim := detectDelimiter(sample)
	cr := csv.NewReader(bytes.NewReader(sample))
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	raw, err := cr.Read()
	if err != nil {
		return Result{}, fmt.Errorf("probe: parse header: %w", err)
	}
	res := Result{Delimiter: delim}
	for i, h := range raw {
		if i == 0 {
			h = trimBOM(h)
		}
		res.Headers = append(res.Headers, Header{Raw: h, Canonical: clean.FieldName(h)})
	}

	for len(res.Rows) < maxSampleRows {
		row, err := cr.Read()
		if err != nil {
			break
		}
		res.Rows = append(res.Rows, row)
	}

	res.Table, res.Matched = guessTable(res.Headers)
	return res, nil
}

// Source builds the run-config stanza for a probed file. Headers whose
// canonical form is not among the guessed table's mapped columns get a
// header_map placeholder so the operator sees what is left to map.
func Source(name, path string, res Result) config.Source {
	src := config.Source{Name: name, Table: res.Table, Path: path}
	if res.Delimiter != ',' {
		src.Delimiter = string(res.Delimiter)
	}

	mapped := tableColumns(res.Table)
	for _, h := range res.Headers {
		if _, ok := mapped[h.Canonical]; ok {
			continue
		}
		if src.HeaderMap == nil {
			src.HeaderMap = make(map[string]string)
		}
		src.HeaderMap[h.Raw] = h.Canonical
	}
	return src
}

// detectDelimiter counts candidate separators in the first line and picks
// the most frequent; ties and absence fall back to the comma.
func detectDelimiter(sample []byte) rune {
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, c := range []byte{';', '\t', '|'} {
		if n := bytes.Count(line, []byte{c}); n > bestCount {
			best, bestCount = rune(c), n
		}
	}
	return best
}

// guessTable scores every canonical table by how many of its mapped source
// columns appear among the canonical headers.
func guessTable(headers []Header) (string, int) {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h.Canonical] = true
	}

	bestTable, bestScore := "", 0
	for name, tbl := range pipeline.Catalog() {
		score := 0
		for _, f := range tbl.Source.Fields {
			if present[f.Source] {
				score++
			}
		}
		if score > bestScore {
			bestTable, bestScore = name, score
		}
	}
	return bestTable, bestScore
}

func tableColumns(table string) map[string]struct{} {
	cols := make(map[string]struct{})
	tbl, ok := pipeline.Catalog()[table]
	if !ok {
		return cols
	}
	for _, f := range tbl.Source.Fields {
		cols[f.Source] = struct{}{}
	}
	return cols
}

const utf8BOM = "\uFEFF"

func trimBOM(s string) string {
	if len(s) >= len(utf8BOM) && s[:len(utf8BOM)] == utf8BOM {
		return s[len(utf8BOM):]
	}
	return s
}
