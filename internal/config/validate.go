// Package config provides configuration models and helpers for
// normalization runs.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of
// issues (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
	"time"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "sink.kind",
// "sources[1].table"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownTables are the canonical tables a source may feed.
var knownTables = map[string]struct{}{
	"sales": {}, "products": {}, "customers": {}, "returns": {},
	"fees": {}, "shipping": {}, "targets": {},
}

// Validate performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue
// values; callers decide whether to treat warnings as fatal.
func Validate(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}

	if len(p.Sources) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "sources",
			Message:  "at least one source is required",
		})
	}
	seen := make(map[string]struct{}, len(p.Sources))
	for i, s := range p.Sources {
		issues = append(issues, validateSource(i, s)...)
		if _, dup := seen[s.Name]; dup && s.Name != "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("sources[%d].name", i),
				Message:  fmt.Sprintf("duplicate source name %q", s.Name),
			})
		}
		seen[s.Name] = struct{}{}
	}

	issues = append(issues, validateRun(p.Run)...)
	issues = append(issues, validateSink(p.Sink)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateSource(i int, s Source) []Issue {
	var issues []Issue
	path := func(field string) string { return fmt.Sprintf("sources[%d].%s", i, field) }

	if strings.TrimSpace(s.Name) == "" {
		issues = append(issues, Issue{Severity: SeverityError, Path: path("name"), Message: "source name must not be empty"})
	}
	if strings.TrimSpace(s.Path) == "" {
		issues = append(issues, Issue{Severity: SeverityError, Path: path("path"), Message: "source requires a non-empty path"})
	}
	if _, ok := knownTables[s.Table]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path("table"),
			Message:  fmt.Sprintf("unknown canonical table %q", s.Table),
		})
	}
	if len(s.Delimiter) > 1 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     path("delimiter"),
			Message:  "delimiter longer than one character; only the first is used",
		})
	}
	return issues
}

func validateRun(r Run) []Issue {
	var issues []Issue
	if r.Workers < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "run.workers",
			Message:  "workers must not be negative",
		})
	}
	for _, f := range []struct{ path, v string }{
		{"run.min_date", r.MinDate},
		{"run.max_date", r.MaxDate},
	} {
		if f.v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", f.v); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     f.path,
				Message:  fmt.Sprintf("invalid date %q; want YYYY-MM-DD", f.v),
			})
		}
	}
	return issues
}

func validateSink(s Sink) []Issue {
	var issues []Issue
	switch s.Kind {
	case "", "sqlite", "postgres":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "sink.kind",
			Message:  fmt.Sprintf("unknown sink kind %q; want sqlite or postgres", s.Kind),
		})
	}
	if s.Kind != "" && strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "sink.dsn",
			Message:  "sink requires a DSN",
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue
	switch m.Backend {
	case "", "prometheus", "datadog":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; want prometheus or datadog", m.Backend),
		})
	}
	if m.Backend == "prometheus" && strings.TrimSpace(m.Gateway) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.gateway",
			Message:  "prometheus backend requires a gateway URL",
		})
	}
	if m.Backend == "datadog" && strings.TrimSpace(m.Addr) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.addr",
			Message:  "datadog backend requires a DogStatsD address",
		})
	}
	return issues
}
