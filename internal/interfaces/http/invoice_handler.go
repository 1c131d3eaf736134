package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-billing/internal/application/billing"
	"github.com/jhoicas/energy-billing/internal/application/dto"
)

// InvoiceHandler consulta y descarga de facturas.
type InvoiceHandler struct {
	query *billing.InvoiceQueryUseCase
	pdf   *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(query *billing.InvoiceQueryUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{query: query, pdf: pdf}
}

// List facturas, opcionalmente filtradas por periodo.
// GET /api/invoices?period=YYYY-MM
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.query.List(c.UserContext(), c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceList(list))
}

// GetByID obtiene una factura.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.query.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// GetPDF genera el PDF de la factura.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
