package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"salesmart/internal/config"
	"salesmart/internal/metrics"
	"salesmart/internal/metrics/datadog"
	"salesmart/internal/metrics/prompush"
	"salesmart/internal/pipeline"
	"salesmart/internal/storage"
	"salesmart/internal/storage/postgres"
	"salesmart/internal/storage/sqlite"
	"salesmart/internal/validate"
)

// main is the entry point for the salesmart binary. It loads the run config,
// optionally initializes a metrics backend and a sink, executes the run, and
// prints the validation report. The process exits nonzero when the config is
// invalid, the run errors, or any check fails.
func main() {
	var (
		cfgPath      string
		validateOnly bool
	)
	flag.StringVar(&cfgPath, "config", "configs/run.json", "run config JSON path")
	flag.BoolVar(&validateOnly, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validateOnly {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	initMetrics(cfg, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()
	repo, closeRepo, err := openSink(ctx, cfg.Sink)
	if err != nil {
		fatalf("%v", err)
	}
	if closeRepo != nil {
		defer closeRepo()
	}

	start := time.Now()
	res, err := pipeline.Run(ctx, cfg, pipeline.DefaultOpener, repo)
	if err != nil {
		log.Fatalf("%v", err)
	}

	for _, rej := range res.Rejects {
		log.Printf("rejected: source=%s line=%d reason=%s", rej.Source, rej.Line, rej.Reason)
	}
	for name, n := range res.Skipped {
		if n > 0 {
			log.Printf("skipped: source=%s rows=%d", name, n)
		}
	}
	printReport(res.Report)

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
	if res.Report.Failed() {
		os.Exit(1)
	}
}

// initMetrics wires the configured metrics backend; the nop backend stays
// in place when none is configured or initialization fails.
func initMetrics(cfg config.Pipeline, verbose bool) {
	switch cfg.Metrics.Backend {
	case "prometheus":
		b, err := prompush.NewBackend(cfg.Job, cfg.Metrics.Gateway)
		if err != nil {
			log.Printf("metrics: failed to init prometheus backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=prometheus gateway=%v job=%v", cfg.Metrics.Gateway, cfg.Job)
		metrics.SetBackend(b)

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{Addr: cfg.Metrics.Addr})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=datadog addr=%v job=%v", cfg.Metrics.Addr, cfg.Job)
		metrics.SetBackend(b)

	default:
		if verbose {
			log.Printf("metrics: disabled")
		}
	}
}

// openSink builds the configured storage backend. A blank kind disables
// persistence and returns a nil Repository.
func openSink(ctx context.Context, s config.Sink) (storage.Repository, func(), error) {
	switch s.Kind {
	case "":
		return nil, nil, nil
	case "sqlite":
		return sqlite.NewRepository(ctx, s.DSN)
	case "postgres":
		return postgres.NewRepository(ctx, s.DSN)
	default:
		return nil, nil, fmt.Errorf("unknown sink kind %q", s.Kind)
	}
}

func printReport(report validate.Report) {
	for _, c := range report {
		if c.Status == validate.Fail {
			fmt.Printf("%s  %s (%d rows)\n", c.Status, c.Name, c.Violations)
			continue
		}
		fmt.Printf("%s  %s\n", c.Status, c.Name)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
