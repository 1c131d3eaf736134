package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// Tariff es la unión cerrada de modelos de tarifa: FixedTariff o FlatTariff.
// El método privado impide variantes fuera de este paquete.
type Tariff interface {
	ContractType() entity.ContractType
	isTariff()
}

// FixedTariff tarifa por unidad consumida.
type FixedTariff struct {
	PricePerUnit decimal.Decimal
}

// FlatTariff cuota mensual que cubre IncludedUnits; el exceso se cobra a OveragePricePerUnit.
type FlatTariff struct {
	MonthlyFee          decimal.Decimal
	IncludedUnits       decimal.Decimal
	OveragePricePerUnit decimal.Decimal
}

func (FixedTariff) ContractType() entity.ContractType { return entity.ContractTypeFixed }
func (FlatTariff) ContractType() entity.ContractType  { return entity.ContractTypeFlat }

func (FixedTariff) isTariff() {}
func (FlatTariff) isTariff()  {}

// TariffFromContract construye la variante de tarifa a partir de los campos opcionales
// del contrato. Falla con ErrMissingTariffField si falta un campo obligatorio del tipo
// declarado y con ErrUnsupportedContractType si el tipo no es FIXED ni FLAT.
func TariffFromContract(c *entity.Contract) (Tariff, error) {
	switch c.Type {
	case entity.ContractTypeFixed:
		if !c.FixedPricePerUnit.Valid {
			return nil, missingField(c, "fixedPricePerUnit")
		}
		return FixedTariff{PricePerUnit: c.FixedPricePerUnit.Decimal}, nil
	case entity.ContractTypeFlat:
		switch {
		case !c.FlatMonthlyFee.Valid:
			return nil, missingField(c, "flatMonthlyFee")
		case !c.IncludedUnits.Valid:
			return nil, missingField(c, "includedUnits")
		case !c.OveragePricePerUnit.Valid:
			return nil, missingField(c, "overagePricePerUnit")
		}
		return FlatTariff{
			MonthlyFee:          c.FlatMonthlyFee.Decimal,
			IncludedUnits:       c.IncludedUnits.Decimal,
			OveragePricePerUnit: c.OveragePricePerUnit.Decimal,
		}, nil
	default:
		return nil, fmt.Errorf("%w: contrato %s tipo %q", domain.ErrUnsupportedContractType, c.ID, c.Type)
	}
}

func missingField(c *entity.Contract, field string) error {
	return fmt.Errorf("%w: contrato %s (%s) sin %s", domain.ErrMissingTariffField, c.ID, c.Type, field)
}
