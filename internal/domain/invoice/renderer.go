package invoice

import (
	"context"
)

// Renderer converts an assembled Document into document bytes (PDF stream).
// Layout internals are owned by the implementation; this module only hands
// over the render input and stores the result.
//
// Rendering is assumed deterministic and idempotent. Errors are propagated
// to the caller without retry.
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
}

// DocumentStore persists rendered documents under a configured root.
type DocumentStore interface {
	// Write stores data under the relative path, creating directories
	// on demand.
	Write(ctx context.Context, relPath string, data []byte) error

	// AbsolutePath resolves a stored relative path against the root.
	AbsolutePath(relPath string) string
}

// Notifier is told about finished invoices after the record is durable.
// Delivery (e.g. email) is owned by the implementation.
type Notifier interface {
	InvoiceCreated(ctx context.Context, inv *Invoice, absPath string, regenerated bool) error
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) InvoiceCreated(context.Context, *Invoice, string, bool) error { return nil }

var _ Notifier = NopNotifier{}
