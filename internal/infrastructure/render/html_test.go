package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"shopinvoice/internal/core/types"
	"shopinvoice/internal/domain/invoice"
)

func testDocument() *invoice.Document {
	issued := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	return &invoice.Document{
		Number:   "INV-2026-00042",
		Title:    "Invoice",
		Currency: "CZK",
		Locale:   "cs",
		Supplier: invoice.Participant{
			Name: "ACME s.r.o.", Street: "Main 1", City: "Praha", Zip: "110 00",
			CompanyID: "01585100", TaxID: "CZ01585100", BankAccount: "2900428677/2010",
		},
		Customer: invoice.Participant{
			Name: "Jan Novak", Street: "Dlouha 12", City: "Praha", Zip: "110 00",
		},
		Lines: []invoice.Line{
			{Label: "Widget", Count: 2, UnitPrice: types.MustMoney("250"), TaxRate: types.TaxRateFromPercent(21)},
			{Label: "Discount on the whole order", Count: 1, UnitPrice: types.MustMoney("-10"), TaxRate: types.TaxRateFromPercent(21)},
		},
		IssueDate:        issued,
		DueDate:          issued.AddDate(0, 0, 14),
		TaxPointDate:     issued,
		PaymentReference: "22001234",
		FooterText:       "Registered in the commercial register",
	}
}

func TestRender(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	data, err := r.Render(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := string(data)
	for _, want := range []string{
		"Invoice INV-2026-00042",
		"ACME s.r.o.",
		"Jan Novak",
		"Bank account: 2900428677/2010",
		"Payment reference: 22001234",
		"Discount on the whole order",
		"-10.00",
		"Issue date: 2026-03-14",
		"Due date: 2026-03-28",
		"Total (CZK)",
		"490.00",
		"Registered in the commercial register",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRender_OmitsEmptyCustomerIDs(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	doc := testDocument()
	data, err := r.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// The customer has no company or tax id; only the supplier block may
	// carry those labels.
	if n := strings.Count(string(data), "Company ID:"); n != 1 {
		t.Errorf("Company ID rendered %d times, want 1", n)
	}
	if n := strings.Count(string(data), "Tax ID:"); n != 1 {
		t.Errorf("Tax ID rendered %d times, want 1", n)
	}
}
