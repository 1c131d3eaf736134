package billing

import (
	"fmt"
	"regexp"
	"time"

	"github.com/jhoicas/energy-billing/internal/domain"
)

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Period mes natural de facturación.
type Period struct {
	Year  int
	Month time.Month
}

// DateRange intervalo de fechas civiles, ambos extremos incluidos.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParsePeriod interpreta "YYYY-MM" (cuatro dígitos, guion, dos dígitos, mes 01..12).
// Cualquier otro formato devuelve domain.ErrInvalidPeriod.
func ParsePeriod(s string) (Period, error) {
	if !periodPattern.MatchString(s) {
		return Period{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, s)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PreviousPeriod devuelve el mes anterior al de now.
func PreviousPeriod(now time.Time) Period {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return Period{Year: prev.Year(), Month: prev.Month()}
}

// String devuelve la forma canónica YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start primer día del mes.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End último día del mes.
func (p Period) End() time.Time {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Range devuelve [primer día, último día] del mes.
func (p Period) Range() DateRange {
	return DateRange{From: p.Start(), To: p.End()}
}

// Contains indica si la fecha civil de t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(r.From)) && !d.After(DateOf(r.To))
}

// DateOf normaliza t a su fecha civil a las 00:00 UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
