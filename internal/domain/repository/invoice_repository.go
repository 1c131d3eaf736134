package repository

import (
	"context"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
// Las facturas no se actualizan: solo se crean y se consultan.
type InvoiceRepository interface {
	// Create inserta la factura si no existe otra para (ContractID, Period).
	// Si ya existe devuelve domain.ErrDuplicateInvoice.
	Create(ctx context.Context, invoice *entity.Invoice) error
	ExistsByContractAndPeriod(ctx context.Context, contractID, period string) (bool, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListByPeriod(ctx context.Context, period string) ([]*entity.Invoice, error)
	// List devuelve todas las facturas, periodo y fecha de generación descendentes.
	List(ctx context.Context) ([]*entity.Invoice, error)
}
