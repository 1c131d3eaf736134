package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	billingdom "github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

// ConsumptionAggregator suma el consumo de un contador en un rango de fechas.
type ConsumptionAggregator struct {
	readings repository.ReadingRepository
}

// NewConsumptionAggregator construye el agregador.
func NewConsumptionAggregator(readings repository.ReadingRepository) *ConsumptionAggregator {
	return &ConsumptionAggregator{readings: readings}
}

// Total suma todas las lecturas del contador con fecha dentro de rng (ambos extremos
// incluidos), sin tener en cuenta la calidad. Sin lecturas devuelve cero.
func (a *ConsumptionAggregator) Total(ctx context.Context, meterID string, rng billingdom.DateRange) (decimal.Decimal, error) {
	total, err := a.readings.SumQuantity(ctx, meterID, rng.From, rng.To)
	if err != nil {
		return decimal.Zero, fmt.Errorf("consumo del contador %s: %w", meterID, err)
	}
	return total, nil
}
