// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"shopinvoice/internal/core/id"
	"shopinvoice/internal/core/types"
	"shopinvoice/internal/domain/invoice"
	"shopinvoice/internal/domain/order"
)

// --- Requests ---

// CreateInvoiceRequest carries the order snapshot to invoice.
// The snapshot is trusted as-is; the shop core owns order state.
type CreateInvoiceRequest struct {
	Order OrderSnapshot `json:"order" binding:"required"`
}

// OrderSnapshot mirrors the order fields invoicing needs.
type OrderSnapshot struct {
	ID           string `json:"id" binding:"required"`
	Number       string `json:"number" binding:"required"`
	Currency     string `json:"currency" binding:"required"`
	Locale       string `json:"locale"`
	CustomerName string `json:"customerName" binding:"required"`

	BillingAddress *AddressSnapshot `json:"billingAddress" binding:"required"`

	Items []ItemSnapshot `json:"items" binding:"required,min=1,dive"`

	Delivery *MethodSnapshot `json:"delivery"`
	Payment  *MethodSnapshot `json:"payment"`

	Discount types.Money `json:"discount"`
	Price    types.Money `json:"price" binding:"required"`
}

// AddressSnapshot mirrors the billing address.
type AddressSnapshot struct {
	CompanyName string `json:"companyName"`
	Street      string `json:"street" binding:"required"`
	City        string `json:"city" binding:"required"`
	Zip         string `json:"zip" binding:"required"`
	CompanyID   string `json:"companyId"`
	TaxID       string `json:"taxId"`
}

// ItemSnapshot mirrors one order line.
type ItemSnapshot struct {
	Label      string        `json:"label" binding:"required"`
	Count      int           `json:"count" binding:"required,min=1"`
	FinalPrice types.Money   `json:"finalPrice"`
	VATRate    types.TaxRate `json:"vatRate"`
}

// MethodSnapshot mirrors a delivery or payment method.
type MethodSnapshot struct {
	Name  string      `json:"name" binding:"required"`
	Price types.Money `json:"price"`
}

// ToEntity converts the snapshot into the domain order.
func (r *OrderSnapshot) ToEntity() (*order.Order, error) {
	orderID, err := id.Parse(r.ID)
	if err != nil {
		return nil, err
	}

	ord := &order.Order{
		ID:           orderID,
		Number:       r.Number,
		Currency:     r.Currency,
		Locale:       r.Locale,
		CustomerName: r.CustomerName,
		Discount:     r.Discount,
		Price:        r.Price,
	}

	if r.BillingAddress != nil {
		ord.BillingAddress = &order.Address{
			CompanyName: r.BillingAddress.CompanyName,
			Street:      r.BillingAddress.Street,
			City:        r.BillingAddress.City,
			Zip:         r.BillingAddress.Zip,
			CompanyID:   r.BillingAddress.CompanyID,
			TaxID:       r.BillingAddress.TaxID,
		}
	}

	ord.Items = make([]order.Item, 0, len(r.Items))
	for _, item := range r.Items {
		ord.Items = append(ord.Items, order.Item{
			Label:      item.Label,
			Count:      item.Count,
			FinalPrice: item.FinalPrice,
			VATRate:    item.VATRate,
		})
	}

	if r.Delivery != nil {
		ord.Delivery = &order.Delivery{Name: r.Delivery.Name, Price: r.Delivery.Price}
	}
	if r.Payment != nil {
		ord.Payment = &order.Payment{Name: r.Payment.Name, Price: r.Payment.Price}
	}

	return ord, nil
}

// LookupInvoicesRequest resolves many orders to their latest invoice.
type LookupInvoicesRequest struct {
	OrderIDs []string `json:"orderIds" binding:"required,min=1"`
}

// SetPaidRequest flips the paid flag.
type SetPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

// --- Responses ---

// InvoiceResponse contains invoice fields.
type InvoiceResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Type        string    `json:"type"`
	Number      string    `json:"number"`
	Label       string    `json:"label"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	Paid        bool      `json:"paid"`
	HasDocument bool      `json:"hasDocument"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromInvoice creates InvoiceResponse from invoice.Invoice.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID.String(),
		OrderID:     inv.OrderID.String(),
		OrderNumber: inv.OrderNumber,
		Type:        string(inv.Type),
		Number:      inv.Number,
		Label:       inv.Label(),
		Price:       inv.Price.String(),
		Currency:    inv.Currency,
		Paid:        inv.Paid,
		HasDocument: inv.HasDocument(),
		Version:     inv.Version,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// InvoiceListResponse wraps the invoices of one order, newest first.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// FromInvoices creates InvoiceListResponse from a slice of invoices.
func FromInvoices(invoices []*invoice.Invoice) InvoiceListResponse {
	out := InvoiceListResponse{Invoices: make([]InvoiceResponse, 0, len(invoices))}
	for _, inv := range invoices {
		out.Invoices = append(out.Invoices, FromInvoice(inv))
	}
	return out
}

// LookupInvoicesResponse maps order IDs to their latest invoice.
type LookupInvoicesResponse struct {
	Invoices map[string]InvoiceResponse `json:"invoices"`
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
