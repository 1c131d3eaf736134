package repository

import (
	"context"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// MeterRepository define el puerto de persistencia para Meter.
type MeterRepository interface {
	Create(ctx context.Context, meter *entity.Meter) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Meter, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Meter, error)
}
