// Package numerator provides the PostgreSQL implementation of sequential
// invoice numbering. It implements core/numerator.Generator.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "shopinvoice/internal/core/numerator"
)

const sequencesTable = "shop_invoice_sequences"

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service allocates numbers with an atomic UPSERT .. RETURNING per call.
// Sequential without gaps on the happy path; a number allocated for a
// render that later fails is burned, which is acceptable for collision
// safety and keeps allocation lock-free for concurrent callers.
type Service struct {
	querier Querier
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates a numerator service on a pool or transaction querier.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// NextNumber reserves the next value for the scope of cfg and period and
// formats it as a display number.
func (s *Service) NextNumber(ctx context.Context, cfg corenumerator.Config, period time.Time) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := cfg.Key(period)

	var value int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO `+sequencesTable+` (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = `+sequencesTable+`.current_val + 1
        RETURNING current_val
	`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("reserve next value: %w", err)
	}

	return cfg.Format(period, value), nil
}

// SetNextNumber positions the sequence so the next allocation returns value.
// Used for migrations from an existing numbering scheme.
func (s *Service) SetNextNumber(ctx context.Context, cfg corenumerator.Config, period time.Time, value int64) error {
	key := cfg.Key(period)

	var current int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO `+sequencesTable+` (key, current_val)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET current_val = $2
        RETURNING current_val
	`, key, value-1).Scan(&current)
	if err != nil {
		return fmt.Errorf("set next value: %w", err)
	}

	return nil
}
