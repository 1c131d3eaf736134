package dto

import (
	"time"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID               string `json:"id"`
	Period           string `json:"period"`
	ContractID       string `json:"contract_id"`
	MeterID          string `json:"meter_id"`
	CustomerFullName string `json:"customer_full_name"`
	ContractType     string `json:"contract_type"`
	TotalQuantity    string `json:"total_kwh"`
	Subtotal         string `json:"subtotal"`
	Tax              string `json:"tax"`
	Total            string `json:"total"`
	GeneratedAt      string `json:"generated_at"`
}

// NewInvoiceResponse mapea la entidad.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               inv.ID,
		Period:           inv.Period,
		ContractID:       inv.ContractID,
		MeterID:          inv.MeterID,
		CustomerFullName: inv.CustomerFullName,
		ContractType:     string(inv.ContractType),
		TotalQuantity:    quantity(inv.TotalQuantity),
		Subtotal:         money(inv.Subtotal),
		Tax:              money(inv.Tax),
		Total:            money(inv.Total),
		GeneratedAt:      inv.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

// NewInvoiceList mapea una lista; nunca devuelve nil.
func NewInvoiceList(list []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, NewInvoiceResponse(inv))
	}
	return out
}

// ContractFailureDTO contrato que no se pudo facturar.
type ContractFailureDTO struct {
	ContractID string `json:"contract_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// DocumentFailureDTO PDF que no se pudo archivar.
type DocumentFailureDTO struct {
	InvoiceID string `json:"invoice_id"`
	Message   string `json:"message"`
}

// BillingRunResponse respuesta de POST /api/billing/run.
type BillingRunResponse struct {
	Period           string               `json:"period"`
	Generated        int                  `json:"generated"`
	Invoices         []string             `json:"invoices"`
	Skipped          []string             `json:"skipped"`
	Failures         []ContractFailureDTO `json:"failures"`
	DocumentFailures []DocumentFailureDTO `json:"document_failures,omitempty"`
}
