// Package catalog consultas de solo lectura sobre contadores, contratos y lecturas.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/energy-billing/internal/application/dto"
	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

// UseCase consultas del catálogo.
type UseCase struct {
	meters    repository.MeterRepository
	contracts repository.ContractRepository
	readings  repository.ReadingRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(meters repository.MeterRepository, contracts repository.ContractRepository, readings repository.ReadingRepository) *UseCase {
	return &UseCase{meters: meters, contracts: contracts, readings: readings}
}

// ListMeters todos los contadores ordenados por ID.
func (uc *UseCase) ListMeters(ctx context.Context) ([]dto.MeterResponse, error) {
	list, err := uc.meters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar contadores: %w", err)
	}
	out := make([]dto.MeterResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMeterResponse(m))
	}
	return out, nil
}

// GetMeter contador por ID o domain.ErrNotFound.
func (uc *UseCase) GetMeter(ctx context.Context, id string) (*dto.MeterResponse, error) {
	m, err := uc.meters.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener contador: %w", err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewMeterResponse(m)
	return &out, nil
}

// ListContracts contratos ordenados por ID; con meterID solo los de ese contador.
func (uc *UseCase) ListContracts(ctx context.Context, meterID string) ([]dto.ContractResponse, error) {
	var (
		list []*entity.Contract
		err  error
	)
	if meterID == "" {
		list, err = uc.contracts.List(ctx)
	} else {
		list, err = uc.contracts.ListByMeter(ctx, meterID)
	}
	if err != nil {
		return nil, fmt.Errorf("listar contratos: %w", err)
	}
	out := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewContractResponse(c))
	}
	return out, nil
}

// GetContract contrato por ID o domain.ErrNotFound.
func (uc *UseCase) GetContract(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := uc.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener contrato: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewContractResponse(c)
	return &out, nil
}

// Readings lecturas del contador entre from y to (YYYY-MM-DD, ambos incluidos) y su suma.
func (uc *UseCase) Readings(ctx context.Context, meterID, from, to string) (*dto.ReadingsResponse, error) {
	if meterID == "" {
		return nil, fmt.Errorf("%w: meter_id obligatorio", domain.ErrInvalidInput)
	}
	fromDate, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return nil, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	toDate, err := time.Parse(time.DateOnly, to)
	if err != nil {
		return nil, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: to anterior a from", domain.ErrInvalidInput)
	}
	exists, err := uc.meters.Exists(ctx, meterID)
	if err != nil {
		return nil, fmt.Errorf("comprobar contador: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	list, err := uc.readings.ListByMeter(ctx, meterID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("listar lecturas: %w", err)
	}
	total, err := uc.readings.SumQuantity(ctx, meterID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("sumar lecturas: %w", err)
	}
	out := &dto.ReadingsResponse{
		MeterID:  meterID,
		From:     from,
		To:       to,
		TotalKwh: total.StringFixed(3),
		Readings: make([]dto.ReadingResponse, 0, len(list)),
	}
	for _, r := range list {
		out.Readings = append(out.Readings, dto.NewReadingResponse(r))
	}
	return out, nil
}
