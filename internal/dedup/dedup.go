// Package dedup collapses records sharing a natural key down to a single
// winner. The policy is explicit per key: most tables keep the first
// occurrence in input order; customers keep the record with the most recent
// join date. Getting this wrong silently changes which duplicate survives,
// so the policy is part of each source's configuration, never a global.
//
// Input order is a contract here: callers must hand records in as an
// ordered slice (re-sorted to original order if transformation ran in
// parallel), and winners are emitted in first-occurrence order.
package dedup

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"salesmart/pkg/records"
)

// Policy selects the winner among records sharing a key.
type Policy interface {
	// wins reports whether candidate should replace current.
	wins(current, candidate records.Record) bool
}

// KeepFirst keeps the earliest occurrence in input order.
type KeepFirst struct{}

func (KeepFirst) wins(records.Record, records.Record) bool { return false }

// LatestBy keeps the record whose Field holds the most recent date. Records
// without the field lose to records that have it; when both lack it or the
// dates are equal, the earlier occurrence stays.
type LatestBy struct {
	Field string
}

func (p LatestBy) wins(current, candidate records.Record) bool {
	cur, curOK := current[p.Field].(time.Time)
	cand, candOK := candidate[p.Field].(time.Time)
	if !candOK {
		return false
	}
	if !curOK {
		return true
	}
	return cand.After(cur)
}

// Dedup returns one winner per natural key, in first-occurrence order.
// Records missing a key field cannot be grouped and are dropped from the
// dedup domain; the transformer rejects such rows before this stage, so in
// practice none arrive here.
func Dedup(in []records.Record, key []string, policy Policy) []records.Record {
	if len(in) == 0 || len(key) == 0 {
		return in
	}
	if policy == nil {
		policy = KeepFirst{}
	}

	type slot struct {
		rec   records.Record
		index int
	}
	winners := make(map[uint64]slot, len(in))
	order := make([]uint64, 0, len(in))

	for i, r := range in {
		k, ok := keyHash(r, key)
		if !ok {
			continue
		}
		prev, exists := winners[k]
		switch {
		case !exists:
			winners[k] = slot{rec: r, index: i}
			order = append(order, k)
		case policy.wins(prev.rec, r):
			// Winner changes but keeps the group's original position.
			winners[k] = slot{rec: r, index: prev.index}
		}
	}

	out := make([]records.Record, 0, len(winners))
	for _, k := range order {
		out = append(out, winners[k].rec)
	}
	return out
}

// keyHash hashes the composite key with xxh3 over a field-separated
// encoding. Returns false when any key field is absent or nil.
func keyHash(r records.Record, key []string) (uint64, bool) {
	var buf []byte
	for _, f := range key {
		v, ok := r[f]
		if !ok || v == nil {
			return 0, false
		}
		switch t := v.(type) {
		case string:
			buf = append(buf, t...)
		case time.Time:
			buf = append(buf, t.Format("2006-01-02")...)
		default:
			buf = fmt.Append(buf, t)
		}
		buf = append(buf, 0x1f)
	}
	return xxh3.Hash(buf), true
}
