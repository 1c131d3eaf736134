package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Importes y cantidades se serializan como texto con escala fija ("19.00", "100.000").
func money(d decimal.Decimal) string    { return d.StringFixed(2) }
func quantity(d decimal.Decimal) string { return d.StringFixed(3) }

func optionalDecimal(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func dateOnly(t time.Time) string { return t.Format(time.DateOnly) }
