package invoice

import (
	"fmt"
	"time"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/types"
	"shopinvoice/internal/domain/order"
)

// serviceTaxPercent is the VAT rate applied to delivery, payment-fee and
// discount lines.
const serviceTaxPercent = 21

// dueDays is the payment term counted from the invoice creation date.
const dueDays = 14

// Participant identifies one party on the document.
type Participant struct {
	Name string `json:"name"`

	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`

	// CompanyID and TaxID are rendered only when present.
	CompanyID string `json:"companyId,omitempty"`
	TaxID     string `json:"taxId,omitempty"`

	// BankAccount is set on the supplier side only.
	BankAccount string `json:"bankAccount,omitempty"`
}

// Line is one billed row on the document.
type Line struct {
	Label     string        `json:"label"`
	Count     int           `json:"count"`
	UnitPrice types.Money   `json:"unitPrice"`
	TaxRate   types.TaxRate `json:"taxRate"`
}

// Total returns count times unit price.
func (l Line) Total() types.Money {
	return l.UnitPrice.Mul(types.NewMoneyFromInt(int64(l.Count)))
}

// Document is the render input: the structured participant/line-item bundle
// handed to document generation.
type Document struct {
	Number   string `json:"number"`
	Title    string `json:"title"`
	Currency string `json:"currency"`
	Locale   string `json:"locale,omitempty"`

	Supplier Participant `json:"supplier"`
	Customer Participant `json:"customer"`

	Lines []Line `json:"lines"`

	IssueDate    time.Time `json:"issueDate"`
	DueDate      time.Time `json:"dueDate"`
	TaxPointDate time.Time `json:"taxPointDate"`

	// PaymentReference is the order's human-readable number.
	PaymentReference string `json:"paymentReference"`

	FooterText string `json:"footerText,omitempty"`
}

// Total sums all line totals.
func (d *Document) Total() types.Money {
	total := types.Zero()
	for _, l := range d.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// BuildDocument assembles the render input for an invoice from its order
// snapshot and the supplier identity.
//
// One line per order item, then a delivery line and a payment-fee line when
// those methods are attached, then a negative discount line when the order
// carries a sale greater than zero.
func BuildDocument(inv *Invoice, ord *order.Order, supplier Participant, footer string) (*Document, error) {
	if ord.BillingAddress == nil {
		return nil, apperror.NewValidation("billing address is required").
			WithDetail("field", "billingAddress")
	}
	if ord.CustomerName == "" && ord.BillingAddress.CompanyName == "" {
		return nil, apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	customer := buildCustomer(ord)

	lines := make([]Line, 0, len(ord.Items)+3)
	for _, item := range ord.Items {
		lines = append(lines, Line{
			Label:     item.Label,
			Count:     item.Count,
			UnitPrice: item.FinalPrice,
			TaxRate:   item.VATRate,
		})
	}

	serviceRate := types.TaxRateFromPercent(serviceTaxPercent)

	if ord.Delivery != nil {
		lines = append(lines, Line{
			Label:     fmt.Sprintf("Delivery - %s", ord.Delivery.Name),
			Count:     1,
			UnitPrice: ord.Delivery.Price,
			TaxRate:   serviceRate,
		})
	}

	if ord.Payment != nil {
		lines = append(lines, Line{
			Label:     fmt.Sprintf("Payment - %s", ord.Payment.Name),
			Count:     1,
			UnitPrice: ord.Payment.Price,
			TaxRate:   serviceRate,
		})
	}

	if ord.Discount.IsPositive() {
		lines = append(lines, Line{
			Label:     "Discount on the whole order",
			Count:     1,
			UnitPrice: ord.Discount.Neg(),
			TaxRate:   serviceRate,
		})
	}

	issued := inv.CreatedAt

	return &Document{
		Number:           inv.Number,
		Title:            documentTitle(inv.Type),
		Currency:         inv.Currency,
		Locale:           ord.Locale,
		Supplier:         supplier,
		Customer:         customer,
		Lines:            lines,
		IssueDate:        issued,
		DueDate:          issued.AddDate(0, 0, dueDays),
		TaxPointDate:     issued,
		PaymentReference: ord.Number,
		FooterText:       footer,
	}, nil
}

// buildCustomer builds the customer participant from the billing address,
// falling back to the customer's personal name when no company name is set.
func buildCustomer(ord *order.Order) Participant {
	addr := ord.BillingAddress

	name := addr.CompanyName
	if name == "" {
		name = ord.CustomerName
	}

	return Participant{
		Name:      name,
		Street:    addr.Street,
		City:      addr.City,
		Zip:       addr.Zip,
		CompanyID: addr.CompanyID,
		TaxID:     addr.TaxID,
	}
}

func documentTitle(t Type) string {
	switch t {
	case TypeProforma:
		return "Proforma invoice"
	case TypePaymentRequest:
		return "Payment request"
	case TypeOrder:
		return "Order"
	default:
		return "Invoice"
	}
}
