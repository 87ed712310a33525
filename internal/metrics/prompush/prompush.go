// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang CounterVec and SummaryVec collectors.
//   - Mapping the pipeline labels (job, stage, status, source, kind) onto
//     Prometheus labels.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead
//     of exposing an HTTP scrape endpoint; a once-per-run batch job has
//     nothing long-lived to scrape.
//
// All Prometheus-specific dependencies live here so the rest of the project
// can swap to alternative backends (e.g. Datadog) without changes to the
// core pipeline.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"salesmart/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // "mart_stage_total"
	stageDuration *prometheus.SummaryVec // "mart_stage_duration_seconds"
	recordCounter *prometheus.CounterVec // "mart_records_total"
	checksTotal   prometheus.Counter     // "mart_checks_total"
	checksFailed  prometheus.Counter     // "mart_checks_failed_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (often same as the pipeline job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "salesmart"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mart_stage_total",
			Help: "Total number of pipeline stage executions, partitioned by stage and status.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "mart_stage_duration_seconds",
			Help:       "Duration of pipeline stages in seconds, partitioned by stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage", "status"},
	)
	recordCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mart_records_total",
			Help: "Record-level counts per source and kind (cleaned, transformed, rejected, deduped).",
		},
		[]string{"source", "kind"},
	)
	checksTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mart_checks_total",
			Help: "Total number of validation checks executed for this run.",
		},
	)
	checksFailed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mart_checks_failed_total",
			Help: "Number of validation checks that reported FAIL for this run.",
		},
	)

	for name, c := range map[string]prometheus.Collector{
		"stage counter":  stageCounter,
		"stage summary":  stageDuration,
		"record counter": recordCounter,
		"checks total":   checksTotal,
		"checks failed":  checksFailed,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register %s: %w", name, err)
		}
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		recordCounter: recordCounter,
		checksTotal:   checksTotal,
		checksFailed:  checksFailed,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "mart_stage_total":
		if b.stageCounter == nil {
			return
		}
		b.stageCounter.WithLabelValues(labels["stage"], labels["status"]).Add(delta)

	case "mart_records_total":
		if b.recordCounter == nil {
			return
		}
		b.recordCounter.WithLabelValues(labels["source"], labels["kind"]).Add(delta)

	case "mart_checks_total":
		if b.checksTotal == nil {
			return
		}
		b.checksTotal.Add(delta)

	case "mart_checks_failed_total":
		if b.checksFailed == nil {
			return
		}
		b.checksFailed.Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "mart_stage_duration_seconds" || b.stageDuration == nil {
		return
	}
	b.stageDuration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
