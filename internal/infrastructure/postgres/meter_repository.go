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

var _ repository.MeterRepository = (*MeterRepo)(nil)

// MeterRepo implementación de MeterRepository (usable con pool o tx).
type MeterRepo struct {
	q Querier
}

// NewMeterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMeterRepository(q Querier) *MeterRepo {
	return &MeterRepo{q: q}
}

const meterColumns = `id, cups, address, postal_code, city, created_at`

func (r *MeterRepo) Create(ctx context.Context, m *entity.Meter) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO meters (`+meterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, nullIfEmpty(m.CUPS), m.Address, m.PostalCode, m.City, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("meter %s: %w", m.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert meter: %w", err)
	}
	return nil
}

func (r *MeterRepo) GetByID(ctx context.Context, id string) (*entity.Meter, error) {
	row := r.q.QueryRow(ctx, `SELECT `+meterColumns+` FROM meters WHERE id = $1`, id)
	m, err := scanMeter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meter: %w", err)
	}
	return m, nil
}

func (r *MeterRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM meters WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists meter: %w", err)
	}
	return ok, nil
}

func (r *MeterRepo) List(ctx context.Context) ([]*entity.Meter, error) {
	rows, err := r.q.Query(ctx, `SELECT `+meterColumns+` FROM meters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list meters: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Meter, 0)
	for rows.Next() {
		m, err := scanMeter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meter: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMeter(row pgx.Row) (*entity.Meter, error) {
	var (
		m    entity.Meter
		cups *string
	)
	if err := row.Scan(&m.ID, &cups, &m.Address, &m.PostalCode, &m.City, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.CUPS = valueOrEmpty(cups)
	return &m, nil
}
