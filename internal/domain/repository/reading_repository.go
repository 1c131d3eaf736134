package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// ReadingRepository define el puerto de persistencia para lecturas horarias.
type ReadingRepository interface {
	Create(ctx context.Context, reading *entity.Reading) error
	Exists(ctx context.Context, meterID string, date time.Time, hour int) (bool, error)
	// ListByMeter lecturas del contador entre from y to (fechas incluidas), ordenadas por fecha y hora.
	ListByMeter(ctx context.Context, meterID string, from, to time.Time) ([]*entity.Reading, error)
	// SumQuantity suma las cantidades del contador entre from y to (incluidas).
	// Sin lecturas devuelve cero, nunca error.
	SumQuantity(ctx context.Context, meterID string, from, to time.Time) (decimal.Decimal, error)
}
