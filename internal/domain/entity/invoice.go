package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura de un contrato para un periodo mensual.
// Es inmutable una vez creada; como máximo existe una por (ContractID, Period).
type Invoice struct {
	ID               string
	Period           string // YYYY-MM
	ContractID       string
	MeterID          string
	CustomerFullName string
	ContractType     ContractType
	TotalQuantity    decimal.Decimal // 3 decimales
	Subtotal         decimal.Decimal // 2 decimales
	Tax              decimal.Decimal
	Total            decimal.Decimal
	GeneratedAt      time.Time
}
