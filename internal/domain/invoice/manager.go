package invoice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/id"
	"shopinvoice/internal/core/numerator"
	"shopinvoice/internal/core/tx"
	"shopinvoice/internal/domain/order"
	"shopinvoice/pkg/logger"
)

// pathSuffixLen is the length of the random filename suffix that keeps
// regenerated documents from colliding.
const pathSuffixLen = 6

// ManagerConfig holds the static configuration of the lifecycle manager.
type ManagerConfig struct {
	// Supplier is the fixed legal identity printed on every document.
	// Injected configuration, never derived from the order.
	Supplier Participant

	// FooterText is the registry note printed at the document bottom.
	FooterText string

	// Numbering maps invoice types to their allocation scope.
	Numbering map[Type]numerator.Config
}

// DefaultNumbering returns the standard per-type allocation scopes.
func DefaultNumbering() map[Type]numerator.Config {
	return map[Type]numerator.Config{
		TypeInvoice:        numerator.DefaultConfig("INV"),
		TypeProforma:       numerator.DefaultConfig("PRO"),
		TypePaymentRequest: numerator.DefaultConfig("REQ"),
		TypeOrder:          numerator.DefaultConfig("ORD"),
	}
}

// Manager orchestrates the invoice lifecycle: find-or-create the record,
// assign a number, render the document, persist the path.
//
// Execution is single-request and synchronous; the only concurrency concern,
// number allocation, is delegated to the numerator.
type Manager struct {
	repo      Repository
	allocator numerator.Generator
	renderer  Renderer
	store     DocumentStore
	notifier  Notifier
	txManager tx.Manager
	cfg       ManagerConfig

	// now and suffix are injectable for deterministic tests.
	now    func() time.Time
	suffix func(n int) string
}

// NewManager creates a lifecycle manager. A nil notifier disables
// notifications.
func NewManager(
	repo Repository,
	allocator numerator.Generator,
	renderer Renderer,
	store DocumentStore,
	notifier Notifier,
	txManager tx.Manager,
	cfg ManagerConfig,
) *Manager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cfg.Numbering == nil {
		cfg.Numbering = DefaultNumbering()
	}
	return &Manager{
		repo:      repo,
		allocator: allocator,
		renderer:  renderer,
		store:     store,
		notifier:  notifier,
		txManager: txManager,
		cfg:       cfg,
		now:       time.Now,
		suffix:    randomSuffix,
	}
}

// WithClock overrides the time source (tests).
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// WithSuffixSource overrides the random filename suffix source (tests).
func (m *Manager) WithSuffixSource(suffix func(n int) string) *Manager {
	m.suffix = suffix
	return m
}

// IsInvoiced reports whether at least one invoice exists for the order.
func (m *Manager) IsInvoiced(ctx context.Context, orderID id.ID) (bool, error) {
	invoices, err := m.repo.GetByOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	return len(invoices) > 0, nil
}

// LatestByOrder returns the most recent invoice of an order.
func (m *Manager) LatestByOrder(ctx context.Context, orderID id.ID) (*Invoice, error) {
	return m.repo.GetLatestByOrder(ctx, orderID)
}

// ByID returns a single invoice record.
func (m *Manager) ByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return m.repo.GetByID(ctx, invoiceID)
}

// ByOrder returns all invoices of an order, newest first.
func (m *Manager) ByOrder(ctx context.Context, orderID id.ID) ([]*Invoice, error) {
	return m.repo.GetByOrder(ctx, orderID)
}

// Lookup resolves many orders to their latest invoice in one round trip.
// Orders without an invoice are absent from the result.
func (m *Manager) Lookup(ctx context.Context, orderIDs []id.ID) (map[id.ID]*Invoice, error) {
	return m.repo.GetByOrderIDs(ctx, orderIDs)
}

// SetPaid flips the paid flag when payment is confirmed externally.
func (m *Manager) SetPaid(ctx context.Context, invoiceID id.ID, paid bool) error {
	return m.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return m.repo.MarkPaid(ctx, invoiceID, paid)
	})
}

// CreateInvoice creates an invoice for the order, or regenerates the latest
// existing one. The record is persisted only after the render succeeded, so
// a failed persist can leave an orphaned file but never a record pointing at
// a missing document.
func (m *Manager) CreateInvoice(ctx context.Context, ord *order.Order) (*Invoice, error) {
	if err := ord.Validate(ctx); err != nil {
		return nil, err
	}

	existing, err := m.repo.GetByOrder(ctx, ord.ID)
	if err != nil {
		return nil, err
	}

	regenerated := len(existing) > 0

	var inv *Invoice
	if regenerated {
		// The latest record is canonical; reuse it and refresh the price.
		inv = existing[0]
		if err := inv.UpdatePrice(ord.Price, ord.Currency); err != nil {
			return nil, err
		}
	} else {
		number, err := m.nextNumber(ctx, TypeInvoice)
		if err != nil {
			return nil, err
		}
		inv = New(ord, number, TypeInvoice)
	}

	inv.Path = m.documentPath(inv.Number)

	doc, err := BuildDocument(inv, ord, m.cfg.Supplier, m.cfg.FooterText)
	if err != nil {
		return nil, err
	}

	data, err := m.renderer.Render(ctx, doc)
	if err != nil {
		return nil, apperror.NewRenderFailure(inv.Number, err)
	}

	if err := m.store.Write(ctx, inv.Path, data); err != nil {
		return nil, err
	}

	err = m.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if regenerated {
			return m.repo.Update(ctx, inv)
		}
		return m.repo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	absPath := m.store.AbsolutePath(inv.Path)
	if err := m.notifier.InvoiceCreated(ctx, inv, absPath, regenerated); err != nil {
		// Delivery is best-effort; the record is already durable.
		logger.Warn(ctx, "invoice notification failed",
			"number", inv.Number, "error", err)
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID, "number", inv.Number,
		"order", ord.Number, "regenerated", regenerated)

	return inv, nil
}

// GetDocumentPath resolves the absolute path of the rendered document.
// Fails with MissingDocument when no render has happened yet.
func (m *Manager) GetDocumentPath(inv *Invoice) (string, error) {
	if !inv.HasDocument() {
		return "", apperror.NewMissingDocument(inv.Number)
	}
	return m.store.AbsolutePath(inv.Path), nil
}

func (m *Manager) nextNumber(ctx context.Context, typ Type) (string, error) {
	cfg, ok := m.cfg.Numbering[typ]
	if !ok {
		cfg = numerator.DefaultConfig("INV")
	}
	number, err := m.allocator.NextNumber(ctx, cfg, m.now())
	if err != nil {
		return "", fmt.Errorf("allocate number: %w", err)
	}
	return number, nil
}

// documentPath derives the storage path from the creation month, the invoice
// number and a short random suffix: invoice/{YYYY-MM}/{number}_{random6}.pdf.
func (m *Manager) documentPath(number string) string {
	return fmt.Sprintf("invoice/%s/%s_%s.pdf",
		m.now().Format("2006-01"), number, m.suffix(pathSuffixLen))
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
