// Package pipeline orchestrates a full run: parse the configured sources,
// clean and transform their rows, deduplicate per table, bind into the
// star schema, integrate, validate, and optionally persist. Each stage is
// timed and counted through the metrics facade.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"salesmart/internal/clean"
	"salesmart/internal/config"
	"salesmart/internal/dedup"
	"salesmart/internal/fetch"
	"salesmart/internal/integrate"
	"salesmart/internal/metrics"
	"salesmart/internal/parser/csv"
	"salesmart/internal/schema"
	"salesmart/internal/storage"
	"salesmart/internal/transform"
	"salesmart/internal/validate"
	"salesmart/pkg/records"
)

// Default order-date bounds used when the run config leaves them blank.
const defaultMinDate = "2015-01-01"

// Opener resolves a configured source to its byte stream. Production use
// is DefaultOpener; tests substitute in-memory readers.
type Opener func(ctx context.Context, src config.Source) (io.ReadCloser, error)

// DefaultOpener reads local paths from disk and fetches http(s) URLs with
// retry/backoff.
func DefaultOpener(ctx context.Context, src config.Source) (io.ReadCloser, error) {
	if strings.HasPrefix(src.Path, "http://") || strings.HasPrefix(src.Path, "https://") {
		return fetch.NewClient(fetch.Config{}).Fetch(ctx, src.Path)
	}
	return os.Open(src.Path)
}

// Result is the complete output of one run.
type Result struct {
	Tables  schema.Tables
	Report  validate.Report
	Rejects []transform.RejectedRow

	// Skipped counts parser-level skips per source name; Written counts
	// rows persisted per table (empty when no sink is configured).
	Skipped map[string]int
	Written map[string]int64
}

// Run executes the whole pipeline for cfg. repo may be nil, in which case
// no tables are persisted and only the in-memory output and the report are
// produced.
func Run(ctx context.Context, cfg config.Pipeline, open Opener, repo storage.Repository) (*Result, error) {
	if open == nil {
		open = DefaultOpener
	}
	res := &Result{
		Skipped: make(map[string]int),
		Written: make(map[string]int64),
	}

	perTable, err := parseSources(ctx, cfg, open, res)
	if err != nil {
		return nil, err
	}

	catalog := Catalog()
	deduped := make(map[string][]records.Record, len(tableNames))
	start := time.Now()
	for _, name := range tableNames {
		rows := perTable[name]
		if len(rows) == 0 {
			continue
		}
		tbl := catalog[name]
		out, err := tbl.Source.Apply(ctx, rows, func(r transform.RejectedRow) {
			res.Rejects = append(res.Rejects, r)
		}, transform.Options{Workers: cfg.Run.Workers})
		if err != nil {
			metrics.RecordStage(cfg.Job, "transform", err, time.Since(start))
			return nil, fmt.Errorf("transform %s: %w", name, err)
		}
		metrics.RecordRows(cfg.Job, name, "transformed", int64(len(out)))
		metrics.RecordRows(cfg.Job, name, "rejected", int64(len(rows)-len(out)))

		unique := dedup.Dedup(out, tbl.Source.Key, tbl.Policy)
		metrics.RecordRows(cfg.Job, name, "deduped", int64(len(out)-len(unique)))
		deduped[name] = unique
	}
	metrics.RecordStage(cfg.Job, "transform", nil, time.Since(start))

	start = time.Now()
	res.Tables = bindTables(deduped)
	res.Tables.Enriched = integrate.Enrich(res.Tables.Sales, res.Tables.Products, res.Tables.Customers)
	metrics.RecordStage(cfg.Job, "integrate", nil, time.Since(start))

	start = time.Now()
	opts, err := validateOptions(cfg.Run)
	if err != nil {
		return nil, err
	}
	res.Report = validate.Run(res.Tables, opts)
	metrics.RecordStage(cfg.Job, "validate", nil, time.Since(start))
	failed := 0
	for _, c := range res.Report {
		if c.Status == validate.Fail {
			failed++
		}
	}
	metrics.RecordChecks(cfg.Job, failed, len(res.Report))

	if repo != nil {
		start = time.Now()
		counts, err := storage.WriteTables(ctx, repo, cfg.Sink.TablePrefix, res.Tables)
		metrics.RecordStage(cfg.Job, "store", err, time.Since(start))
		if err != nil {
			return nil, err
		}
		res.Written = counts
	}

	return res, nil
}

// parseSources reads every configured source, cleans its rows, and groups
// them by canonical table in listed order.
func parseSources(ctx context.Context, cfg config.Pipeline, open Opener, res *Result) (map[string][]records.Record, error) {
	perTable := make(map[string][]records.Record)
	start := time.Now()
	for _, src := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, skipped, err := parseSource(ctx, src, open)
		if err != nil {
			metrics.RecordStage(cfg.Job, "parse", err, time.Since(start))
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}
		res.Skipped[src.Name] = skipped
		metrics.RecordRows(cfg.Job, src.Name, "parsed", int64(len(rows)))
		metrics.RecordRows(cfg.Job, src.Name, "skipped", int64(skipped))
		perTable[src.Table] = append(perTable[src.Table], clean.Rows(rows)...)
	}
	metrics.RecordStage(cfg.Job, "parse", nil, time.Since(start))
	return perTable, nil
}

func parseSource(ctx context.Context, src config.Source, open Opener) ([]records.Record, int, error) {
	r, err := open(ctx, src)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	opt := csv.Options{
		HasHeader: true,
		TrimSpace: true,
		HeaderMap: src.HeaderMap,
	}
	if src.Delimiter != "" {
		opt.Comma = rune(src.Delimiter[0])
	}
	return csv.NewParser(opt).Parse(r)
}

// bindTables lifts the deduplicated records into their typed tables.
func bindTables(deduped map[string][]records.Record) schema.Tables {
	var t schema.Tables
	for _, r := range deduped["sales"] {
		t.Sales = append(t.Sales, schema.BindSale(r))
	}
	for _, r := range deduped["products"] {
		t.Products = append(t.Products, schema.BindProduct(r))
	}
	for _, r := range deduped["customers"] {
		t.Customers = append(t.Customers, schema.BindCustomer(r))
	}
	for _, r := range deduped["returns"] {
		t.Returns = append(t.Returns, schema.BindReturn(r))
	}
	for _, r := range deduped["fees"] {
		t.Fees = append(t.Fees, schema.BindFee(r))
	}
	for _, r := range deduped["shipping"] {
		t.Shipping = append(t.Shipping, schema.BindShipping(r))
	}
	for _, r := range deduped["targets"] {
		t.Targets = append(t.Targets, schema.BindTarget(r))
	}
	return t
}

// validateOptions resolves the configured date range, falling back to
// defaultMinDate and the end of the current year.
func validateOptions(run config.Run) (validate.Options, error) {
	min := defaultMinDate
	if run.MinDate != "" {
		min = run.MinDate
	}
	minDate, err := time.Parse("2006-01-02", min)
	if err != nil {
		return validate.Options{}, fmt.Errorf("min_date: %w", err)
	}

	var maxDate time.Time
	if run.MaxDate != "" {
		maxDate, err = time.Parse("2006-01-02", run.MaxDate)
		if err != nil {
			return validate.Options{}, fmt.Errorf("max_date: %w", err)
		}
	} else {
		maxDate = time.Date(time.Now().UTC().Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return validate.Options{MinDate: minDate, MaxDate: maxDate}, nil
}
