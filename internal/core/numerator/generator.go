// Package numerator provides the domain contract for sequential invoice numbering.
// Implementations live in the infrastructure layer.
package numerator

import (
	"context"
	"time"
)

// Generator allocates sequential document numbers.
//
// Exclusivity under concurrent callers is guaranteed by the implementation
// (atomic reserve-next semantics, e.g. UPDATE .. RETURNING on a sequence row),
// not by this module.
type Generator interface {
	// NextNumber allocates the next document number.
	// Pattern: PREFIX-YEAR-XXXXX (e.g. INV-2026-00042).
	//
	// Numbers are monotonically increasing and unique within the
	// allocation scope derived from cfg and period.
	NextNumber(ctx context.Context, cfg Config, period time.Time) (string, error)

	// SetNextNumber sets the next raw sequence value (for migration purposes).
	SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error
}
