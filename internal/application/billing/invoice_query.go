package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/energy-billing/internal/domain"
	billingdom "github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

// InvoiceQueryUseCase consultas de facturas emitidas.
type InvoiceQueryUseCase struct {
	invoices repository.InvoiceRepository
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(invoices repository.InvoiceRepository) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoices: invoices}
}

// Get devuelve la factura o domain.ErrNotFound.
func (uc *InvoiceQueryUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List devuelve las facturas de un periodo o, con period vacío, todas.
func (uc *InvoiceQueryUseCase) List(ctx context.Context, period string) ([]*entity.Invoice, error) {
	if period == "" {
		return uc.invoices.List(ctx)
	}
	p, err := billingdom.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return uc.invoices.ListByPeriod(ctx, p.String())
}
