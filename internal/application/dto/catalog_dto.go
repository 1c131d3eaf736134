package dto

import "github.com/jhoicas/energy-billing/internal/domain/entity"

// MeterResponse contador en respuestas.
type MeterResponse struct {
	ID         string `json:"id"`
	CUPS       string `json:"cups,omitempty"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// NewMeterResponse mapea la entidad.
func NewMeterResponse(m *entity.Meter) MeterResponse {
	return MeterResponse{ID: m.ID, CUPS: m.CUPS, Address: m.Address, PostalCode: m.PostalCode, City: m.City}
}

// ContractResponse contrato en respuestas. Los campos de tarifa ausentes van a null.
type ContractResponse struct {
	ID                 string  `json:"id"`
	MeterID            string  `json:"meter_id"`
	CustomerID         string  `json:"customer_id"`
	FullName           string  `json:"full_name"`
	NIF                string  `json:"nif"`
	Email              string  `json:"email"`
	ContractType       string  `json:"contract_type"`
	StartDate          string  `json:"start_date"`
	EndDate            *string `json:"end_date"`
	BillingCycle       string  `json:"billing_cycle"`
	FlatMonthlyFee     *string `json:"flat_monthly_fee"`
	IncludedKwh        *string `json:"included_kwh"`
	OveragePricePerKwh *string `json:"overage_price_per_kwh"`
	FixedPricePerKwh   *string `json:"fixed_price_per_kwh"`
	TaxRate            string  `json:"tax_rate"`
	IBAN               string  `json:"iban,omitempty"`
}

// NewContractResponse mapea la entidad.
func NewContractResponse(c *entity.Contract) ContractResponse {
	out := ContractResponse{
		ID:                 c.ID,
		MeterID:            c.MeterID,
		CustomerID:         c.CustomerID,
		FullName:           c.FullName,
		NIF:                c.NIF,
		Email:              c.Email,
		ContractType:       string(c.Type),
		StartDate:          dateOnly(c.StartDate),
		BillingCycle:       string(c.BillingCycle),
		FlatMonthlyFee:     optionalDecimal(c.FlatMonthlyFee),
		IncludedKwh:        optionalDecimal(c.IncludedUnits),
		OveragePricePerKwh: optionalDecimal(c.OveragePricePerUnit),
		FixedPricePerKwh:   optionalDecimal(c.FixedPricePerUnit),
		TaxRate:            c.TaxRate.String(),
		IBAN:               c.IBAN,
	}
	if c.EndDate != nil {
		end := dateOnly(*c.EndDate)
		out.EndDate = &end
	}
	return out
}

// ReadingResponse lectura horaria en respuestas.
type ReadingResponse struct {
	MeterID string  `json:"meter_id"`
	Date    string  `json:"date"`
	Hour    int     `json:"hour"`
	Kwh     string  `json:"kwh"`
	Quality *string `json:"quality"`
}

// NewReadingResponse mapea la entidad.
func NewReadingResponse(r *entity.Reading) ReadingResponse {
	out := ReadingResponse{MeterID: r.MeterID, Date: dateOnly(r.Date), Hour: r.Hour, Kwh: quantity(r.Quantity)}
	if r.Quality != nil {
		q := string(*r.Quality)
		out.Quality = &q
	}
	return out
}

// ReadingsResponse lecturas de un contador en un rango con su suma.
type ReadingsResponse struct {
	MeterID  string            `json:"meter_id"`
	From     string            `json:"from"`
	To       string            `json:"to"`
	TotalKwh string            `json:"total_kwh"`
	Readings []ReadingResponse `json:"readings"`
}
