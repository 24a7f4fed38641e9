// Package invoice provides the invoice record and its lifecycle orchestration.
package invoice

import (
	"context"
	"fmt"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/entity"
	"shopinvoice/internal/core/id"
	"shopinvoice/internal/core/types"
	"shopinvoice/internal/domain/order"
)

// Type classifies an invoice record.
type Type string

const (
	TypeInvoice        Type = "invoice"
	TypePaymentRequest Type = "payment-request"
	TypeProforma       Type = "proforma"
	TypeOrder          Type = "order"
)

// Valid reports whether t is a known invoice type.
func (t Type) Valid() bool {
	switch t {
	case TypeInvoice, TypePaymentRequest, TypeProforma, TypeOrder:
		return true
	}
	return false
}

// Invoice is the persisted document metadata (not the PDF bytes themselves).
// Invoices are append-only audit artifacts; there is no deletion path.
type Invoice struct {
	entity.BaseRecord

	// OrderID references exactly one owning order.
	OrderID id.ID `db:"order_id" json:"orderId"`

	// OrderNumber is the human-readable order number, used as the
	// payment reference on the document.
	OrderNumber string `db:"order_number" json:"orderNumber"`

	Type Type `db:"type" json:"type"`

	// Number is the display number, unique and immutable once assigned.
	Number string `db:"number" json:"number"`

	// Price is the invoiced amount in Currency.
	Price    types.Money `db:"price" json:"price"`
	Currency string      `db:"currency" json:"currency"`

	// Paid is mutated externally when payment is confirmed.
	Paid bool `db:"paid" json:"paid"`

	// Path is the relative storage path of the rendered document,
	// empty until the first render.
	Path string `db:"path" json:"path,omitempty"`
}

// New creates an invoice record for an order with an allocated number.
// Price and currency are captured from the order snapshot.
func New(ord *order.Order, number string, typ Type) *Invoice {
	if typ == "" {
		typ = TypeInvoice
	}
	return &Invoice{
		BaseRecord:  entity.NewBaseRecord(),
		OrderID:     ord.ID,
		OrderNumber: ord.Number,
		Type:        typ,
		Number:      number,
		Price:       ord.Price,
		Currency:    ord.Currency,
	}
}

// Label returns a human-readable description, e.g. "Invoice INV-2026-00042 (proforma)".
func (i *Invoice) Label() string {
	return fmt.Sprintf("Invoice %s (%s)", i.Number, i.Type)
}

// HasDocument reports whether a rendered document exists for this record.
func (i *Invoice) HasDocument() bool {
	return i.Path != ""
}

// UpdatePrice overwrites the price from a fresh order total. The currency
// must match the one the invoice was issued in; a mismatch is a contract
// violation, never coerced.
func (i *Invoice) UpdatePrice(price types.Money, currency string) error {
	if currency != i.Currency {
		return apperror.NewCurrencyMismatch(i.Currency, currency).
			WithDetail("invoice", i.Number)
	}
	i.Price = price
	return nil
}

// Validate implements entity.Validatable.
func (i *Invoice) Validate(ctx context.Context) error {
	if id.IsNil(i.OrderID) {
		return apperror.NewValidation("order is required").
			WithDetail("field", "orderId")
	}

	if i.Number == "" {
		return apperror.NewValidation("number is required").
			WithDetail("field", "number")
	}

	if !i.Type.Valid() {
		return apperror.NewValidation("unknown invoice type").
			WithDetail("field", "type").
			WithDetail("value", string(i.Type))
	}

	if i.Currency == "" {
		return apperror.NewValidation("currency is required").
			WithDetail("field", "currency")
	}

	return nil
}
