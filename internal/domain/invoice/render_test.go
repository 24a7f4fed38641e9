package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopinvoice/internal/core/types"
)

func TestBuildDocument_LineAssembly(t *testing.T) {
	ord := testOrder()
	inv := New(ord, "INV-2026-00042", TypeInvoice)
	supplier := Participant{Name: "ACME s.r.o.", Street: "Main 1", City: "Praha", Zip: "110 00", CompanyID: "01585100", TaxID: "CZ01585100"}

	doc, err := BuildDocument(inv, ord, supplier, "footer")
	require.NoError(t, err)

	// 2 items + delivery + payment fee + discount
	require.Len(t, doc.Lines, 5)

	assert.Equal(t, "Widget", doc.Lines[0].Label)
	assert.Equal(t, 2, doc.Lines[0].Count)
	assert.Equal(t, "Delivery - Courier", doc.Lines[2].Label)
	assert.Equal(t, "Payment - Card", doc.Lines[3].Label)

	discount := doc.Lines[4]
	assert.Equal(t, "Discount on the whole order", discount.Label)
	assert.True(t, discount.UnitPrice.IsNegative(), "discount line must be negative-valued")
	assert.True(t, discount.UnitPrice.Equal(types.MustMoney("-10")))
	assert.True(t, discount.TaxRate.Equal(types.TaxRateFromPercent(21)))

	// Delivery and payment fee carry the fixed service rate as well.
	assert.True(t, doc.Lines[2].TaxRate.Equal(types.TaxRateFromPercent(21)))
	assert.True(t, doc.Lines[3].TaxRate.Equal(types.TaxRateFromPercent(21)))

	// Item lines keep their own VAT rates.
	assert.True(t, doc.Lines[0].TaxRate.Equal(types.TaxRateFromPercent(21)))
	assert.True(t, doc.Lines[1].TaxRate.Equal(types.TaxRateFromPercent(10)))
}

func TestBuildDocument_Dates(t *testing.T) {
	ord := testOrder()
	inv := New(ord, "INV-2026-00042", TypeInvoice)

	doc, err := BuildDocument(inv, ord, Participant{Name: "ACME"}, "")
	require.NoError(t, err)

	assert.Equal(t, inv.CreatedAt, doc.IssueDate)
	assert.Equal(t, inv.CreatedAt, doc.TaxPointDate)
	assert.Equal(t, inv.CreatedAt.AddDate(0, 0, 14), doc.DueDate)
	assert.Equal(t, ord.Number, doc.PaymentReference)
}

func TestBuildDocument_CustomerFallbacks(t *testing.T) {
	t.Run("personal name when no company", func(t *testing.T) {
		ord := testOrder()
		doc, err := BuildDocument(New(ord, "N1", TypeInvoice), ord, Participant{Name: "ACME"}, "")
		require.NoError(t, err)
		assert.Equal(t, "Jan Novak", doc.Customer.Name)
		assert.Empty(t, doc.Customer.CompanyID)
	})

	t.Run("company name and tax ids when present", func(t *testing.T) {
		ord := testOrder()
		ord.BillingAddress.CompanyName = "Novak Trade s.r.o."
		ord.BillingAddress.CompanyID = "12345678"
		ord.BillingAddress.TaxID = "CZ12345678"

		doc, err := BuildDocument(New(ord, "N1", TypeInvoice), ord, Participant{Name: "ACME"}, "")
		require.NoError(t, err)
		assert.Equal(t, "Novak Trade s.r.o.", doc.Customer.Name)
		assert.Equal(t, "12345678", doc.Customer.CompanyID)
		assert.Equal(t, "CZ12345678", doc.Customer.TaxID)
	})
}

func TestBuildDocument_NoOptionalLines(t *testing.T) {
	ord := testOrder()
	ord.Delivery = nil
	ord.Payment = nil
	ord.Discount = types.Zero()

	doc, err := BuildDocument(New(ord, "N1", TypeInvoice), ord, Participant{Name: "ACME"}, "")
	require.NoError(t, err)
	assert.Len(t, doc.Lines, 2)
}

func TestBuildDocument_MissingBillingAddress(t *testing.T) {
	ord := testOrder()
	ord.BillingAddress = nil

	_, err := BuildDocument(New(ord, "N1", TypeInvoice), ord, Participant{Name: "ACME"}, "")
	require.Error(t, err)
}

func TestDocumentTotal(t *testing.T) {
	doc := &Document{
		Lines: []Line{
			{Label: "a", Count: 2, UnitPrice: types.MustMoney("250")},
			{Label: "b", Count: 1, UnitPrice: types.MustMoney("-10")},
		},
	}
	assert.True(t, doc.Total().Equal(types.MustMoney("490")))
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeInvoice, "Invoice"},
		{TypeProforma, "Proforma invoice"},
		{TypePaymentRequest, "Payment request"},
		{TypeOrder, "Order"},
	}
	for _, tt := range tests {
		if got := documentTitle(tt.typ); got != tt.want {
			t.Errorf("documentTitle(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestBuildDocument_DueDateAcrossMonthBoundary(t *testing.T) {
	ord := testOrder()
	inv := New(ord, "N1", TypeInvoice)
	inv.CreatedAt = time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC)

	doc, err := BuildDocument(inv, ord, Participant{Name: "ACME"}, "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC), doc.DueDate)
}
