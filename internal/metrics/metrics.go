// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the normalization pipeline.
//
// The package is intentionally minimal and opinionated:
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - Concrete metric systems stay isolated in subpackages (prompush,
//     datadog); the pipeline depends only on this interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures one pipeline stage: latency plus success/failure.
// Stages are "parse", "transform", "integrate", "validate", "store".
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	backend.IncCounter("mart_stage_total", 1, lbls)
	backend.ObserveHistogram("mart_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a record-level counter for the given source and
// kind. Typical kinds: "parsed", "skipped", "transformed", "rejected",
// "deduped".
func RecordRows(job, source, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("mart_records_total", float64(delta), Labels{
		"job":    job,
		"source": source,
		"kind":   kind,
	})
}

// RecordChecks counts validation check outcomes for the run.
func RecordChecks(job string, failed, total int) {
	backend.IncCounter("mart_checks_total", float64(total), Labels{"job": job})
	if failed > 0 {
		backend.IncCounter("mart_checks_failed_total", float64(failed), Labels{"job": job})
	}
}
