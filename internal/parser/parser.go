// Package parser defines the contract input decoders implement. Concrete
// decoders live in subpackages (csv).
package parser

import (
	"io"

	"salesmart/pkg/records"
)

// Parser decodes raw input into records. The second return value counts
// rows skipped because they could not be decoded.
type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
