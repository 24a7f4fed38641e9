package invoice

import (
	"context"

	"shopinvoice/internal/core/id"
)

// Repository defines persistence operations for invoice records.
// Implementations live in infrastructure/storage/postgres.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error

	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetByOrder returns all invoices of an order, newest first by
	// creation time. Empty slice when none exist.
	GetByOrder(ctx context.Context, orderID id.ID) ([]*Invoice, error)

	// GetLatestByOrder returns the most recent invoice of an order.
	// Fails with NotFound when the order has no invoices.
	GetLatestByOrder(ctx context.Context, orderID id.ID) (*Invoice, error)

	// GetByOrderIDs resolves many orders at once for reporting contexts.
	// Each order maps to its single latest invoice; orders without one
	// are absent from the result.
	GetByOrderIDs(ctx context.Context, orderIDs []id.ID) (map[id.ID]*Invoice, error)

	// MarkPaid flips the paid flag when payment is confirmed externally.
	MarkPaid(ctx context.Context, invoiceID id.ID, paid bool) error
}
