package invoice

import (
	"context"
	"testing"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/types"
)

func TestNew_CapturesOrderSnapshot(t *testing.T) {
	ord := testOrder()
	inv := New(ord, "INV-2026-00007", "")

	if inv.Type != TypeInvoice {
		t.Errorf("empty type must default to invoice, got %q", inv.Type)
	}
	if inv.OrderID != ord.ID {
		t.Error("order reference not captured")
	}
	if inv.Currency != "CZK" {
		t.Errorf("currency = %q, want CZK", inv.Currency)
	}
	if !inv.Price.Equal(ord.Price) {
		t.Errorf("price = %s, want %s", inv.Price, ord.Price)
	}
	if inv.Paid {
		t.Error("paid must default to false")
	}
	if inv.HasDocument() {
		t.Error("fresh record must have no document")
	}
	if inv.CreatedAt.IsZero() {
		t.Error("creation timestamp must be set")
	}
}

func TestUpdatePrice(t *testing.T) {
	inv := New(testOrder(), "INV-2026-00007", TypeInvoice)

	if err := inv.UpdatePrice(types.MustMoney("999"), "CZK"); err != nil {
		t.Fatalf("matching currency must update: %v", err)
	}
	if !inv.Price.Equal(types.MustMoney("999")) {
		t.Errorf("price = %s, want 999", inv.Price)
	}

	err := inv.UpdatePrice(types.MustMoney("42"), "EUR")
	if !apperror.IsCurrencyMismatch(err) {
		t.Fatalf("expected CurrencyMismatch, got %v", err)
	}
	if !inv.Price.Equal(types.MustMoney("999")) {
		t.Error("price must not change on mismatch")
	}
}

func TestLabel(t *testing.T) {
	inv := New(testOrder(), "INV-2026-00007", TypeProforma)
	if got := inv.Label(); got != "Invoice INV-2026-00007 (proforma)" {
		t.Errorf("label = %q", got)
	}
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeInvoice, TypePaymentRequest, TypeProforma, TypeOrder} {
		if !typ.Valid() {
			t.Errorf("%q must be valid", typ)
		}
	}
	if Type("credit-note").Valid() {
		t.Error("unknown type must be invalid")
	}
}

func TestInvoiceValidate(t *testing.T) {
	ctx := context.Background()

	valid := New(testOrder(), "INV-2026-00007", TypeInvoice)
	if err := valid.Validate(ctx); err != nil {
		t.Fatalf("valid invoice rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Invoice)
	}{
		{"missing number", func(i *Invoice) { i.Number = "" }},
		{"unknown type", func(i *Invoice) { i.Type = "receipt" }},
		{"missing currency", func(i *Invoice) { i.Currency = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := New(testOrder(), "INV-2026-00007", TypeInvoice)
			tt.mutate(inv)
			if err := inv.Validate(ctx); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
