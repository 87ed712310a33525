// Package storage contains storage-agnostic contracts and utilities for
// persisting finished tables. Backends (sqlite, postgres) implement
// Repository using their most efficient primitives; this package owns the
// portable DDL, the flattening of typed rows into column-aligned slices,
// and a batched writer with progress logging.
package storage

import "context"

// Repository abstracts a SQL backend capable of bulk-inserting
// column-aligned rows into a named table and executing DDL.
type Repository interface {
	// CopyInto inserts rows (aligned to the columns order) into table and
	// returns the number of rows inserted.
	CopyInto(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Exec runs an arbitrary SQL statement, typically CREATE TABLE.
	Exec(ctx context.Context, sql string) error
}
