// Package config defines the canonical, JSON-serializable configuration
// model for a normalization run. It is intentionally small, explicit, and
// dependency-free so that run files can be loaded from disk and passed
// through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the JSON structure used in run files
//     under configs/*.json.
//  3. Minimalism: decoding is performed by the standard library.
//
// Example (trimmed):
//
//	{
//	  "job": "q1-consolidation",
//	  "sources": [
//	    { "name": "orders_q1", "table": "sales", "path": "data/orders_q1.csv" },
//	    { "name": "products",  "table": "products", "path": "data/products.csv",
//	      "header_map": { "Nazwa": "name" } }
//	  ],
//	  "run":  { "workers": 4, "min_date": "2015-01-01" },
//	  "sink": { "kind": "sqlite", "dsn": "file:mart.db" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Pipeline describes one full normalization run. It is the top-level object
// decoded from a run file.
type Pipeline struct {
	// Job identifies the run; used for metrics labeling.
	Job string `json:"job"`

	// Sources lists the input tables. Several sources may feed the same
	// canonical table (e.g. quarterly sales batches all map to "sales");
	// they are merged, in listed order, before deduplication.
	Sources []Source `json:"sources"`

	Run     Run     `json:"run"`
	Sink    Sink    `json:"sink"`
	Metrics Metrics `json:"metrics"`
}

// Source identifies one input file and the canonical table it feeds.
type Source struct {
	// Name is the unique identifier of this input (used in reject reports
	// and metrics). Required.
	Name string `json:"name"`

	// Table selects the canonical table this source feeds: one of "sales",
	// "products", "customers", "returns", "fees", "shipping", "targets".
	Table string `json:"table"`

	// Path is the local filesystem path to the input CSV.
	Path string `json:"path"`

	// Delimiter overrides the CSV field delimiter; default ",".
	Delimiter string `json:"delimiter,omitempty"`

	// HeaderMap renames source-specific headers to the column names the
	// table's field mapping expects, applied after generic cleaning.
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// Run controls row-level parallelism and the validator's expected
// order-date range.
type Run struct {
	// Workers bounds concurrent row transformation; 0 or 1 means
	// sequential.
	Workers int `json:"workers"`

	// MinDate/MaxDate bound plausible order dates ("2006-01-02"). Blank
	// fields fall back to 2015-01-01 and the end of the current year.
	MinDate string `json:"min_date,omitempty"`
	MaxDate string `json:"max_date,omitempty"`
}

// Sink selects where finished tables are written. An empty Kind disables
// persistence; the run still produces in-memory tables and the report.
type Sink struct {
	// Kind is "", "sqlite", or "postgres".
	Kind string `json:"kind,omitempty"`

	// DSN is the connection string: a file DSN for sqlite, a pgx URL for
	// postgres.
	DSN string `json:"dsn,omitempty"`

	// TablePrefix is prepended to every output table name.
	TablePrefix string `json:"table_prefix,omitempty"`
}

// Metrics selects the metrics backend. An empty Backend keeps the no-op.
type Metrics struct {
	// Backend is "", "prometheus", or "datadog".
	Backend string `json:"backend,omitempty"`

	// Gateway is the Pushgateway base URL (prometheus backend).
	Gateway string `json:"gateway,omitempty"`

	// Addr is the DogStatsD address (datadog backend).
	Addr string `json:"addr,omitempty"`
}

// Load reads and decodes a run file.
func Load(path string) (Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a run file from r. Unknown fields are rejected so a typo
// in a run file fails fast instead of silently disabling an option.
func Decode(r io.Reader) (Pipeline, error) {
	var p Pipeline
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode config: %w", err)
	}
	return p, nil
}
