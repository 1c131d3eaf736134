package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// Charges importes calculados para una factura. Se devuelven completos o no se devuelven.
type Charges struct {
	TotalQuantity decimal.Decimal // 3 decimales
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// Subtotal aplica la tarifa a la cantidad consumida.
//
//	FIXED: round2(qty × precio)
//	FLAT:  round2(cuota + round2(max(0, qty − incluidas) × precioExceso))
//
// Con consumo cero un contrato FLAT paga la cuota completa.
func Subtotal(t Tariff, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch t := t.(type) {
	case FixedTariff:
		return MulMoney(quantity, t.PricePerUnit), nil
	case FlatTariff:
		overage := decimal.Max(decimal.Zero, quantity.Sub(t.IncludedUnits))
		overageCharge := MulMoney(overage, t.OveragePricePerUnit)
		return AddMoney(t.MonthlyFee, overageCharge), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", domain.ErrUnsupportedContractType, t)
	}
}

// Calculate obtiene subtotal, impuesto y total de un contrato para la cantidad agregada.
// El impuesto se redondea antes de sumarse al total.
func Calculate(c *entity.Contract, quantity decimal.Decimal) (Charges, error) {
	tariff, err := TariffFromContract(c)
	if err != nil {
		return Charges{}, err
	}
	subtotal, err := Subtotal(tariff, quantity)
	if err != nil {
		return Charges{}, err
	}
	tax := MulMoney(subtotal, c.TaxRate)
	return Charges{
		TotalQuantity: RoundQuantity(quantity),
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         AddMoney(subtotal, tax),
	}, nil
}
