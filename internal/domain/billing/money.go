package billing

import "github.com/shopspring/decimal"

// Escalas de redondeo.
const (
	MoneyScale    int32 = 2 // importes en moneda
	QuantityScale int32 = 3 // energía agregada
)

// RoundMoney redondea un importe a 2 decimales (half-up).
// decimal.Round redondea "half away from zero", que coincide con half-up para importes ≥ 0.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// RoundQuantity redondea una cantidad de energía a 3 decimales (half-up).
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityScale)
}

// MulMoney multiplica y redondea a 2 decimales en un solo paso.
func MulMoney(a, b decimal.Decimal) decimal.Decimal {
	return RoundMoney(a.Mul(b))
}

// AddMoney suma y redondea a 2 decimales.
func AddMoney(a, b decimal.Decimal) decimal.Decimal {
	return RoundMoney(a.Add(b))
}
