package dedup

import (
	"reflect"
	"testing"
	"time"

	"salesmart/pkg/records"
)

func TestDedupKeepFirst(t *testing.T) {
	in := []records.Record{
		{"order_id": "A-1", "quantity": 2},
		{"order_id": "A-1", "quantity": 9},
		{"order_id": "A-2", "quantity": 1},
	}
	got := Dedup(in, []string{"order_id"}, KeepFirst{})
	want := []records.Record{
		{"order_id": "A-1", "quantity": 2},
		{"order_id": "A-2", "quantity": 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keep-first: got %#v want %#v", got, want)
	}
}

func TestDedupLatestBy(t *testing.T) {
	d1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	in := []records.Record{
		{"customer_id": "C-1", "join_date": d1, "city": "Old"},
		{"customer_id": "C-1", "join_date": d2, "city": "New"},
		{"customer_id": "C-2", "join_date": d1, "city": "Other"},
	}
	got := Dedup(in, []string{"customer_id"}, LatestBy{Field: "join_date"})
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0]["city"] != "New" {
		t.Fatalf("latest-by kept %v, want the 2023 record", got[0])
	}
	// Winner order follows first occurrence, not the winning row's position.
	if got[1]["customer_id"] != "C-2" {
		t.Fatalf("order broken: %#v", got)
	}
}

func TestDedupLatestByMissingDateLoses(t *testing.T) {
	d := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []records.Record{
		{"customer_id": "C-1", "join_date": nil},
		{"customer_id": "C-1", "join_date": d},
		{"customer_id": "C-1"},
	}
	got := Dedup(in, []string{"customer_id"}, LatestBy{Field: "join_date"})
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if jd, ok := got[0]["join_date"].(time.Time); !ok || !jd.Equal(d) {
		t.Fatalf("winner = %#v, want the dated record", got[0])
	}
}

func TestDedupCompositeKey(t *testing.T) {
	in := []records.Record{
		{"salesperson": "Anna", "month": "2023-01", "target_amount": 100},
		{"salesperson": "Anna", "month": "2023-02", "target_amount": 120},
		{"salesperson": "Anna", "month": "2023-01", "target_amount": 999},
	}
	got := Dedup(in, []string{"salesperson", "month"}, KeepFirst{})
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0]["target_amount"] != 100 {
		t.Fatalf("composite keep-first kept %#v", got[0])
	}
}

func TestDedupMissingKeyDropped(t *testing.T) {
	in := []records.Record{
		{"order_id": nil, "quantity": 1},
		{"order_id": "A-1", "quantity": 2},
	}
	got := Dedup(in, []string{"order_id"}, KeepFirst{})
	if len(got) != 1 || got[0]["order_id"] != "A-1" {
		t.Fatalf("got %#v, want only A-1", got)
	}
}
