package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReadingQuality calidad de la medida. No influye en la facturación.
type ReadingQuality string

const (
	ReadingQualityReal      ReadingQuality = "REAL"
	ReadingQualityEstimated ReadingQuality = "ESTIMATED"
)

// Valid indica si la calidad es un valor conocido.
func (q ReadingQuality) Valid() bool {
	return q == ReadingQualityReal || q == ReadingQualityEstimated
}

// Reading lectura horaria de un contador. Identidad: (MeterID, Date, Hour).
type Reading struct {
	MeterID  string
	Date     time.Time // fecha civil (00:00 UTC)
	Hour     int       // 0..23
	Quantity decimal.Decimal
	Quality  *ReadingQuality // nil = sin indicador
}
