package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

var _ repository.ReadingRepository = (*ReadingRepo)(nil)

// ReadingRepo implementación de ReadingRepository (usable con pool o tx).
type ReadingRepo struct {
	q Querier
}

// NewReadingRepository construye el adaptador.
func NewReadingRepository(q Querier) *ReadingRepo {
	return &ReadingRepo{q: q}
}

func (r *ReadingRepo) Create(ctx context.Context, rd *entity.Reading) error {
	var quality *string
	if rd.Quality != nil {
		q := string(*rd.Quality)
		quality = &q
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO readings (meter_id, date, hour, kwh, quality)
		VALUES ($1, $2, $3, $4, $5)`,
		rd.MeterID, rd.Date, rd.Hour, rd.Quantity, quality,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reading %s %s %d: %w", rd.MeterID, rd.Date.Format(time.DateOnly), rd.Hour, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (r *ReadingRepo) Exists(ctx context.Context, meterID string, date time.Time, hour int) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM readings WHERE meter_id = $1 AND date = $2 AND hour = $3)`,
		meterID, date, hour,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists reading: %w", err)
	}
	return ok, nil
}

func (r *ReadingRepo) ListByMeter(ctx context.Context, meterID string, from, to time.Time) ([]*entity.Reading, error) {
	rows, err := r.q.Query(ctx, `
		SELECT meter_id, date, hour, kwh, quality
		FROM readings
		WHERE meter_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, hour`,
		meterID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Reading, 0)
	for rows.Next() {
		var (
			rd      entity.Reading
			quality *string
		)
		if err := rows.Scan(&rd.MeterID, &rd.Date, &rd.Hour, &rd.Quantity, &quality); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		if quality != nil {
			q := entity.ReadingQuality(*quality)
			rd.Quality = &q
		}
		list = append(list, &rd)
	}
	return list, rows.Err()
}

// SumQuantity devuelve 0 si el contador no tiene lecturas en el rango.
func (r *ReadingRepo) SumQuantity(ctx context.Context, meterID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(kwh), 0)
		FROM readings
		WHERE meter_id = $1 AND date BETWEEN $2 AND $3`,
		meterID, from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum readings: %w", err)
	}
	return total, nil
}
