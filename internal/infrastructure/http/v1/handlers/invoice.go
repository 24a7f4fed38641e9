package handlers

import (
	"github.com/gin-gonic/gin"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/id"
	"shopinvoice/internal/domain/invoice"
	"shopinvoice/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler exposes the invoice lifecycle over HTTP.
type InvoiceHandler struct {
	base    *BaseHandler
	manager *invoice.Manager
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, manager *invoice.Manager) *InvoiceHandler {
	return &InvoiceHandler{base: base, manager: manager}
}

// Create creates an invoice for the submitted order snapshot, or regenerates
// the latest existing one.
// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	ord, err := req.Order.ToEntity()
	if err != nil {
		h.base.Error(c, apperror.NewValidation("invalid order id").WithDetail("error", err.Error()))
		return
	}

	inv, err := h.manager.CreateInvoice(c.Request.Context(), ord)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromInvoice(inv))
}

// ListByOrder returns all invoices of one order, newest first.
// GET /api/v1/orders/:orderId/invoices
func (h *InvoiceHandler) ListByOrder(c *gin.Context) {
	orderID, ok := h.base.ParseID(c, "orderId")
	if !ok {
		return
	}

	invoices, err := h.manager.ByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromInvoices(invoices))
}

// LatestByOrder returns the most recent invoice of one order.
// GET /api/v1/orders/:orderId/invoices/latest
func (h *InvoiceHandler) LatestByOrder(c *gin.Context) {
	orderID, ok := h.base.ParseID(c, "orderId")
	if !ok {
		return
	}

	inv, err := h.manager.LatestByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromInvoice(inv))
}

// Lookup resolves many orders to their latest invoice in one call.
// POST /api/v1/invoices/lookup
func (h *InvoiceHandler) Lookup(c *gin.Context) {
	var req dto.LookupInvoicesRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	orderIDs := make([]id.ID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.base.Error(c, apperror.NewValidation("invalid order id").WithDetail("orderId", raw))
			return
		}
		orderIDs = append(orderIDs, parsed)
	}

	result, err := h.manager.Lookup(c.Request.Context(), orderIDs)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	resp := dto.LookupInvoicesResponse{Invoices: make(map[string]dto.InvoiceResponse, len(result))}
	for orderID, inv := range result {
		resp.Invoices[orderID.String()] = dto.FromInvoice(inv)
	}

	h.base.OK(c, resp)
}

// GetByID returns a single invoice record.
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.manager.ByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromInvoice(inv))
}

// Document serves the rendered document of an invoice.
// GET /api/v1/invoices/:id/document
func (h *InvoiceHandler) Document(c *gin.Context) {
	invoiceID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.manager.ByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	path, err := h.manager.GetDocumentPath(inv)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+inv.Number+`.pdf"`)
	c.File(path)
}

// SetPaid flips the paid flag when payment is confirmed externally.
// PUT /api/v1/invoices/:id/paid
func (h *InvoiceHandler) SetPaid(c *gin.Context) {
	invoiceID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetPaidRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	if err := h.manager.SetPaid(c.Request.Context(), invoiceID, *req.Paid); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.NoContent(c)
}
