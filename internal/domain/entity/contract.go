package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractType modelo de tarifa del contrato.
type ContractType string

// Tipos de contrato soportados. Añadir uno nuevo exige un conjunto de campos de tarifa
// y una rama en el calculador.
const (
	ContractTypeFixed ContractType = "FIXED" // precio por unidad consumida
	ContractTypeFlat  ContractType = "FLAT"  // cuota mensual con unidades incluidas + exceso
)

// Valid indica si el tipo pertenece al conjunto cerrado {FIXED, FLAT}.
func (t ContractType) Valid() bool {
	return t == ContractTypeFixed || t == ContractTypeFlat
}

// BillingCycle frecuencia de facturación. Solo existe el ciclo mensual.
type BillingCycle string

const BillingCycleMonthly BillingCycle = "MONTHLY"

// Contract contrato de suministro entre un cliente y un contador.
//
// Los campos de tarifa son excluyentes según Type:
//   - FIXED: FixedPricePerUnit.
//   - FLAT:  FlatMonthlyFee, IncludedUnits y OveragePricePerUnit.
//
// Se guardan tal como llegan de la importación; la validación semántica la hace el
// calculador de tarifas (billing.TariffFromContract).
type Contract struct {
	ID           string
	MeterID      string
	CustomerID   string
	FullName     string
	NIF          string
	Email        string
	Type         ContractType
	StartDate    time.Time
	EndDate      *time.Time // nil = contrato indefinido
	BillingCycle BillingCycle

	FlatMonthlyFee      decimal.NullDecimal
	IncludedUnits       decimal.NullDecimal
	OveragePricePerUnit decimal.NullDecimal
	FixedPricePerUnit   decimal.NullDecimal

	TaxRate decimal.Decimal // fracción decimal, ej. 0.21
	IBAN    string
}
