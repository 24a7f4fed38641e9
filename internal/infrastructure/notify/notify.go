// Package notify delivers invoice lifecycle notifications.
// Outbound email is owned by the shop core; this implementation records the
// event so an external mailer can pick it up from the log stream.
package notify

import (
	"context"

	"shopinvoice/internal/domain/invoice"
	"shopinvoice/pkg/logger"
)

// LogNotifier implements invoice.Notifier by emitting a structured log entry
// per created document.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.WithComponent("notifier")}
}

var _ invoice.Notifier = (*LogNotifier)(nil)

// InvoiceCreated records the created document and its location.
func (n *LogNotifier) InvoiceCreated(ctx context.Context, inv *invoice.Invoice, absPath string, regenerated bool) error {
	n.log.WithContext(ctx).Infow("invoice document ready",
		"id", inv.ID,
		"number", inv.Number,
		"order", inv.OrderNumber,
		"label", inv.Label(),
		"path", absPath,
		"regenerated", regenerated,
	)
	return nil
}
