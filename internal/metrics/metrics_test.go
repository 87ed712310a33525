package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	callsCounters   []counterCall
	callsHistograms []histCall
	flushCount      int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type histCall struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsCounters = append(f.callsCounters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsHistograms = append(f.callsHistograms, histCall{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	return nil
}

func TestRecordStage_SuccessAndFailure(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordStage("jobA", "transform", nil, 2*time.Second)
	RecordStage("jobB", "sink", errors.New("boom"), 1500*time.Millisecond)

	if len(fb.callsCounters) != 2 {
		t.Fatalf("expected 2 counter calls, got %d", len(fb.callsCounters))
	}
	if len(fb.callsHistograms) != 2 {
		t.Fatalf("expected 2 histogram calls, got %d", len(fb.callsHistograms))
	}

	cc0 := fb.callsCounters[0]
	if cc0.name != "mart_stage_total" || cc0.delta != 1 {
		t.Fatalf("counter[0] = %#v; want name=mart_stage_total, delta=1", cc0)
	}
	if cc0.labels["job"] != "jobA" || cc0.labels["stage"] != "transform" || cc0.labels["status"] != "success" {
		t.Fatalf("counter[0].labels = %v", cc0.labels)
	}

	h0 := fb.callsHistograms[0]
	if h0.name != "mart_stage_duration_seconds" {
		t.Fatalf("hist[0].name=%q; want mart_stage_duration_seconds", h0.name)
	}
	if h0.value < 2.0-0.001 || h0.value > 2.0+0.001 {
		t.Fatalf("hist[0].value=%v; want ~2.0", h0.value)
	}

	cc1 := fb.callsCounters[1]
	if cc1.labels["stage"] != "sink" || cc1.labels["status"] != "failure" {
		t.Fatalf("counter[1].labels = %v; want sink/failure", cc1.labels)
	}
	h1 := fb.callsHistograms[1]
	if h1.value < 1.5-0.001 || h1.value > 1.5+0.001 {
		t.Fatalf("hist[1].value=%v; want ~1.5", h1.value)
	}
}

func TestRecordRowsAndChecks(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordRows("jobX", "orders_q1", "transformed", 3)
	RecordRows("jobX", "orders_q1", "rejected", 0) // ignored
	RecordRows("jobY", "products", "deduped", 5)
	RecordChecks("jobZ", 2, 16)

	if len(fb.callsCounters) != 4 {
		t.Fatalf("expected 4 counter calls, got %d", len(fb.callsCounters))
	}

	c0 := fb.callsCounters[0]
	if c0.name != "mart_records_total" || c0.delta != 3 {
		t.Fatalf("counter[0] = %#v; want name=mart_records_total, delta=3", c0)
	}
	if c0.labels["source"] != "orders_q1" || c0.labels["kind"] != "transformed" {
		t.Fatalf("counter[0] labels = %v", c0.labels)
	}

	c1 := fb.callsCounters[1]
	if c1.name != "mart_records_total" || c1.delta != 5 || c1.labels["job"] != "jobY" {
		t.Fatalf("counter[1] = %#v", c1)
	}

	c2 := fb.callsCounters[2]
	if c2.name != "mart_checks_total" || c2.delta != 16 {
		t.Fatalf("counter[2] = %#v; want mart_checks_total delta=16", c2)
	}
	c3 := fb.callsCounters[3]
	if c3.name != "mart_checks_failed_total" || c3.delta != 2 {
		t.Fatalf("counter[3] = %#v; want mart_checks_failed_total delta=2", c3)
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	SetBackend(fb)

	if backend != fb {
		t.Fatal("SetBackend did not replace global backend")
	}

	if err := Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if fb.flushCount != 1 {
		t.Fatalf("expected flushCount=1, got %d", fb.flushCount)
	}

	// SetBackend(nil) should not nil out the backend.
	SetBackend(nil)
	if backend != fb {
		t.Fatal("SetBackend(nil) should not change backend")
	}
}
