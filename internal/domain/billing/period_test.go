package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePeriod_Valido(t *testing.T) {
	p, err := billing.ParsePeriod("2026-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, p.Year)
	assert.Equal(t, time.January, p.Month)
	assert.Equal(t, "2026-01", p.String())

	r := p.Range()
	assert.Equal(t, date(2026, 1, 1), r.From)
	assert.Equal(t, date(2026, 1, 31), r.To)
}

func TestParsePeriod_FinDeMes(t *testing.T) {
	cases := map[string]time.Time{
		"2024-02": date(2024, 2, 29), // bisiesto
		"2025-02": date(2025, 2, 28),
		"2025-04": date(2025, 4, 30),
		"2025-12": date(2025, 12, 31),
	}
	for s, want := range cases {
		p, err := billing.ParsePeriod(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, p.End(), s)
	}
}

func TestParsePeriod_Invalido(t *testing.T) {
	for _, s := range []string{"2026/01", "2026-13", "2026-00", "2026-1", "26-01", "", "2026-01-01", " 2026-01", "abcd-ef"} {
		_, err := billing.ParsePeriod(s)
		assert.ErrorIsf(t, err, domain.ErrInvalidPeriod, "%q debe ser inválido", s)
	}
}

func TestPreviousPeriod(t *testing.T) {
	assert.Equal(t, "2025-12", billing.PreviousPeriod(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2026-02", billing.PreviousPeriod(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)).String())
}

func TestDateRange_Contains(t *testing.T) {
	r := billing.DateRange{From: date(2026, 1, 1), To: date(2026, 1, 31)}
	assert.True(t, r.Contains(date(2026, 1, 1)))
	assert.True(t, r.Contains(time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(date(2025, 12, 31)))
	assert.False(t, r.Contains(date(2026, 2, 1)))
}

// ── Resolución de contratos activos ───────────────────────────────────────────

func contractBetween(id string, start time.Time, end *time.Time) *entity.Contract {
	return &entity.Contract{ID: id, StartDate: start, EndDate: end}
}

func TestIsActive_Solapamiento(t *testing.T) {
	jan := billing.Period{Year: 2026, Month: time.January}.Range()
	endDec := date(2025, 12, 31)
	endMid := date(2026, 1, 15)
	endFirst := date(2026, 1, 1)

	cases := []struct {
		name string
		c    *entity.Contract
		want bool
	}{
		{"termina antes del periodo", contractBetween("A", date(2025, 6, 1), &endDec), false},
		{"indefinido iniciado antes", contractBetween("B", date(2025, 1, 1), nil), true},
		{"termina a mitad de mes", contractBetween("C", date(2025, 1, 1), &endMid), true},
		{"termina el primer día", contractBetween("D", date(2025, 1, 1), &endFirst), true},
		{"empieza a mitad de mes", contractBetween("E", date(2026, 1, 20), nil), true},
		{"empieza el último día", contractBetween("F", date(2026, 1, 31), nil), true},
		{"empieza después del periodo", contractBetween("G", date(2026, 2, 1), nil), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, billing.IsActive(tc.c, jan), tc.name)
	}
}

func TestActiveContracts_ConservaOrden(t *testing.T) {
	jan := billing.Period{Year: 2026, Month: time.January}.Range()
	endDec := date(2025, 12, 31)
	in := []*entity.Contract{
		contractBetween("C3", date(2025, 1, 1), nil),
		contractBetween("C1", date(2025, 6, 1), &endDec),
		contractBetween("C2", date(2026, 1, 10), nil),
	}

	out := billing.ActiveContracts(in, jan)
	require.Len(t, out, 2)
	assert.Equal(t, "C3", out[0].ID)
	assert.Equal(t, "C2", out[1].ID)
	assert.Empty(t, billing.ActiveContracts(nil, jan))
}
