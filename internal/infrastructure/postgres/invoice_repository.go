package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, period, contract_id, meter_id, customer_full_name, contract_type,
	total_kwh, subtotal, tax, total, generated_at`

// Create inserta la factura. Si ya existe una para (contrato, periodo) no escribe nada
// y devuelve domain.ErrDuplicateInvoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (contract_id, period) DO NOTHING`,
		inv.ID, inv.Period, inv.ContractID, inv.MeterID, inv.CustomerFullName, string(inv.ContractType),
		inv.TotalQuantity, inv.Subtotal, inv.Tax, inv.Total, inv.GeneratedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice %s: %w", inv.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contrato %s periodo %s: %w", inv.ContractID, inv.Period, domain.ErrDuplicateInvoice)
	}
	return nil
}

func (r *InvoiceRepo) ExistsByContractAndPeriod(ctx context.Context, contractID, period string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE contract_id = $1 AND period = $2)`,
		contractID, period,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists invoice: %w", err)
	}
	return ok, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) ListByPeriod(ctx context.Context, period string) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE period = $1 ORDER BY contract_id`, period)
}

func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY period DESC, generated_at DESC`)
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv   entity.Invoice
		ctype string
	)
	err := row.Scan(
		&inv.ID, &inv.Period, &inv.ContractID, &inv.MeterID, &inv.CustomerFullName, &ctype,
		&inv.TotalQuantity, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ContractType = entity.ContractType(ctype)
	return &inv, nil
}
