package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	const js = `{
	  "job": "q1-consolidation",
	  "sources": [
	    { "name": "orders_q1", "table": "sales", "path": "data/orders_q1.csv" },
	    { "name": "products", "table": "products", "path": "data/products.csv",
	      "delimiter": ";",
	      "header_map": { "Nazwa": "name" } }
	  ],
	  "run":  { "workers": 4, "min_date": "2015-01-01" },
	  "sink": { "kind": "sqlite", "dsn": "file:mart.db", "table_prefix": "mart_" },
	  "metrics": { "backend": "prometheus", "gateway": "http://localhost:9091" }
	}`

	got, err := Decode(strings.NewReader(js))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := Pipeline{
		Job: "q1-consolidation",
		Sources: []Source{
			{Name: "orders_q1", Table: "sales", Path: "data/orders_q1.csv"},
			{
				Name: "products", Table: "products", Path: "data/products.csv",
				Delimiter: ";",
				HeaderMap: map[string]string{"Nazwa": "name"},
			},
		},
		Run:     Run{Workers: 4, MinDate: "2015-01-01"},
		Sink:    Sink{Kind: "sqlite", DSN: "file:mart.db", TablePrefix: "mart_"},
		Metrics: Metrics{Backend: "prometheus", Gateway: "http://localhost:9091"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode: got %#v want %#v", got, want)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"job":"x","srcs":[]}`))
	if err == nil {
		t.Fatalf("Decode: expected error for unknown field, got nil")
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"job": `))
	if err == nil {
		t.Fatalf("Decode: expected error for malformed JSON, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load("testdata/does-not-exist.json")
	if err == nil {
		t.Fatalf("Load: expected error for missing file, got nil")
	}
}
