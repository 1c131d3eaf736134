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

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador.
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, meter_id, customer_id, full_name, nif, email, contract_type,
	start_date, end_date, billing_cycle, flat_monthly_fee, included_kwh,
	overage_price_per_kwh, fixed_price_per_kwh, tax_rate, iban`

func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contracts (`+contractColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		c.ID, c.MeterID, c.CustomerID, c.FullName, c.NIF, c.Email, string(c.Type),
		c.StartDate, c.EndDate, string(c.BillingCycle),
		c.FlatMonthlyFee, c.IncludedUnits, c.OveragePricePerUnit, c.FixedPricePerUnit,
		c.TaxRate, nullIfEmpty(c.IBAN),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contract %s: %w", c.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	c, err := scanContract(r.q.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

func (r *ContractRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contracts WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists contract: %w", err)
	}
	return ok, nil
}

func (r *ContractRepo) List(ctx context.Context) ([]*entity.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY id`)
}

func (r *ContractRepo) ListByMeter(ctx context.Context, meterID string) ([]*entity.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts WHERE meter_id = $1 ORDER BY id`, meterID)
}

func (r *ContractRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Contract, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var (
		c     entity.Contract
		ctype string
		cycle string
		iban  *string
	)
	err := row.Scan(
		&c.ID, &c.MeterID, &c.CustomerID, &c.FullName, &c.NIF, &c.Email, &ctype,
		&c.StartDate, &c.EndDate, &cycle,
		&c.FlatMonthlyFee, &c.IncludedUnits, &c.OveragePricePerUnit, &c.FixedPricePerUnit,
		&c.TaxRate, &iban,
	)
	if err != nil {
		return nil, err
	}
	c.Type = entity.ContractType(ctype)
	c.BillingCycle = entity.BillingCycle(cycle)
	c.IBAN = valueOrEmpty(iban)
	return &c, nil
}
