package repository

import (
	"context"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// ContractRepository define el puerto de persistencia para Contract.
type ContractRepository interface {
	Create(ctx context.Context, contract *entity.Contract) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	Exists(ctx context.Context, id string) (bool, error)
	// List devuelve todos los contratos ordenados por ID.
	List(ctx context.Context) ([]*entity.Contract, error)
	ListByMeter(ctx context.Context, meterID string) ([]*entity.Contract, error)
}
