package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

func validPipeline() Pipeline {
	return Pipeline{
		Job: "q1",
		Sources: []Source{
			{Name: "orders_q1", Table: "sales", Path: "data/orders.csv"},
			{Name: "products", Table: "products", Path: "data/products.csv"},
		},
		Run:  Run{Workers: 4, MinDate: "2015-01-01", MaxDate: "2026-12-31"},
		Sink: Sink{Kind: "sqlite", DSN: "file:mart.db"},
	}
}

func TestValidateOK(t *testing.T) {
	t.Parallel()

	issues := Validate(validPipeline())
	if len(issues) != 0 {
		t.Fatalf("Validate: unexpected issues %v", issues)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Pipeline)
		sev    IssueSeverity
		path   string
		substr string
	}{
		{
			name:   "empty job",
			mutate: func(p *Pipeline) { p.Job = " " },
			sev:    SeverityError, path: "job", substr: "must not be empty",
		},
		{
			name:   "no sources",
			mutate: func(p *Pipeline) { p.Sources = nil },
			sev:    SeverityError, path: "sources", substr: "at least one",
		},
		{
			name:   "source without name",
			mutate: func(p *Pipeline) { p.Sources[0].Name = "" },
			sev:    SeverityError, path: "sources[0].name", substr: "must not be empty",
		},
		{
			name:   "source without path",
			mutate: func(p *Pipeline) { p.Sources[1].Path = "" },
			sev:    SeverityError, path: "sources[1].path", substr: "non-empty path",
		},
		{
			name:   "unknown table",
			mutate: func(p *Pipeline) { p.Sources[0].Table = "orders" },
			sev:    SeverityError, path: "sources[0].table", substr: `unknown canonical table "orders"`,
		},
		{
			name:   "duplicate source names",
			mutate: func(p *Pipeline) { p.Sources[1].Name = "orders_q1" },
			sev:    SeverityError, path: "sources[1].name", substr: "duplicate source name",
		},
		{
			name:   "long delimiter",
			mutate: func(p *Pipeline) { p.Sources[0].Delimiter = ";;" },
			sev:    SeverityWarning, path: "sources[0].delimiter", substr: "one character",
		},
		{
			name:   "negative workers",
			mutate: func(p *Pipeline) { p.Run.Workers = -1 },
			sev:    SeverityError, path: "run.workers", substr: "negative",
		},
		{
			name:   "bad min date",
			mutate: func(p *Pipeline) { p.Run.MinDate = "01.01.2015" },
			sev:    SeverityError, path: "run.min_date", substr: "want YYYY-MM-DD",
		},
		{
			name:   "bad max date",
			mutate: func(p *Pipeline) { p.Run.MaxDate = "never" },
			sev:    SeverityError, path: "run.max_date", substr: "want YYYY-MM-DD",
		},
		{
			name:   "unknown sink kind",
			mutate: func(p *Pipeline) { p.Sink.Kind = "mysql" },
			sev:    SeverityError, path: "sink.kind", substr: "unknown sink kind",
		},
		{
			name:   "sink without dsn",
			mutate: func(p *Pipeline) { p.Sink.DSN = "" },
			sev:    SeverityError, path: "sink.dsn", substr: "requires a DSN",
		},
		{
			name:   "unknown metrics backend",
			mutate: func(p *Pipeline) { p.Metrics.Backend = "statsd" },
			sev:    SeverityError, path: "metrics.backend", substr: "unknown metrics backend",
		},
		{
			name:   "prometheus without gateway",
			mutate: func(p *Pipeline) { p.Metrics.Backend = "prometheus" },
			sev:    SeverityError, path: "metrics.gateway", substr: "gateway",
		},
		{
			name:   "datadog without addr",
			mutate: func(p *Pipeline) { p.Metrics.Backend = "datadog" },
			sev:    SeverityError, path: "metrics.addr", substr: "DogStatsD",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPipeline()
			tc.mutate(&p)
			issues := Validate(p)
			if !hasIssue(issues, tc.sev, tc.path, tc.substr) {
				t.Fatalf("Validate: missing %s at %s containing %q; got %v", tc.sev, tc.path, tc.substr, issues)
			}
		})
	}
}

func TestHasErrors(t *testing.T) {
	t.Parallel()

	if HasErrors([]Issue{{Severity: SeverityWarning}}) {
		t.Fatalf("HasErrors: warning alone should not count as error")
	}
	if !HasErrors([]Issue{{Severity: SeverityWarning}, {Severity: SeverityError}}) {
		t.Fatalf("HasErrors: expected true when an error is present")
	}
}
