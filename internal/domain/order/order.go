// Package order defines the order snapshot consumed by invoicing.
// Orders are owned by the shop core; this module only reads a fully-formed
// snapshot of one.
package order

import (
	"context"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/id"
	"shopinvoice/internal/core/types"
)

// Order is a point-in-time snapshot of an order being invoiced.
type Order struct {
	ID       id.ID  `json:"id"`
	Number   string `json:"number"`
	Currency string `json:"currency"`
	Locale   string `json:"locale,omitempty"`

	// CustomerName is the personal name used when the billing address
	// carries no company name.
	CustomerName string `json:"customerName"`

	BillingAddress *Address `json:"billingAddress"`

	Items []Item `json:"items"`

	Delivery *Delivery `json:"delivery,omitempty"`
	Payment  *Payment  `json:"payment,omitempty"`

	// Discount is the sale on the whole order; zero means none.
	Discount types.Money `json:"discount"`

	// Price is the current order total.
	Price types.Money `json:"price"`
}

// Address is the billing address of the order.
type Address struct {
	CompanyName string `json:"companyName,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Zip         string `json:"zip"`

	// CompanyID and TaxID are present for business customers only.
	CompanyID string `json:"companyId,omitempty"`
	TaxID     string `json:"taxId,omitempty"`
}

// Item is one order line.
type Item struct {
	Label      string        `json:"label"`
	Count      int           `json:"count"`
	FinalPrice types.Money   `json:"finalPrice"`
	VATRate    types.TaxRate `json:"vatRate"`
}

// Delivery is the delivery method attached to the order.
type Delivery struct {
	Name  string      `json:"name"`
	Price types.Money `json:"price"`
}

// Payment is the payment method attached to the order.
type Payment struct {
	Name  string      `json:"name"`
	Price types.Money `json:"price"`
}

// Validate implements entity.Validatable. Invoicing assumes a fully-formed
// order; anything missing here is a hard failure, not a fallback.
func (o *Order) Validate(ctx context.Context) error {
	if id.IsNil(o.ID) {
		return apperror.NewValidation("order id is required").
			WithDetail("field", "id")
	}

	if o.Number == "" {
		return apperror.NewValidation("order number is required").
			WithDetail("field", "number")
	}

	if o.Currency == "" {
		return apperror.NewValidation("order currency is required").
			WithDetail("field", "currency")
	}

	if o.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	if o.BillingAddress == nil {
		return apperror.NewValidation("billing address is required").
			WithDetail("field", "billingAddress")
	}

	for i, item := range o.Items {
		if item.Label == "" {
			return apperror.NewValidation("item label is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Count <= 0 {
			return apperror.NewValidation("item count must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
