package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-billing/internal/application/catalog"
	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/infrastructure/memory"
)

func fixture(t *testing.T) *catalog.UseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	for _, id := range []string{"MTR002", "MTR001"} {
		require.NoError(t, store.Meters().Create(ctx, &entity.Meter{ID: id, Address: "Calle " + id, City: "Madrid"}))
	}
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Contracts().Create(ctx, &entity.Contract{
		ID: "CONT002", MeterID: "MTR002", Type: entity.ContractTypeFlat, BillingCycle: entity.BillingCycleMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &end,
		FlatMonthlyFee: decimal.NewNullDecimal(decimal.RequireFromString("45.00")),
		TaxRate:        decimal.RequireFromString("0.21"),
	}))
	require.NoError(t, store.Contracts().Create(ctx, &entity.Contract{
		ID: "CONT001", MeterID: "MTR001", Type: entity.ContractTypeFixed, BillingCycle: entity.BillingCycleMonthly,
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FixedPricePerUnit: decimal.NewNullDecimal(decimal.RequireFromString("0.19")),
		TaxRate:           decimal.RequireFromString("0.21"),
	}))
	quality := entity.ReadingQualityReal
	for h, q := range []string{"1.5", "0.25"} {
		require.NoError(t, store.Readings().Create(ctx, &entity.Reading{
			MeterID: "MTR001", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Hour: h,
			Quantity: decimal.RequireFromString(q), Quality: &quality,
		}))
	}
	return catalog.NewUseCase(store.Meters(), store.Contracts(), store.Readings())
}

func TestListMeters_OrdenadosPorID(t *testing.T) {
	uc := fixture(t)
	list, err := uc.ListMeters(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "MTR001", list[0].ID)
}

func TestGetMeter_NoExiste(t *testing.T) {
	_, err := fixture(t).GetMeter(context.Background(), "MTR999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListContracts_FiltroPorContador(t *testing.T) {
	uc := fixture(t)
	all, err := uc.ListContracts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byMeter, err := uc.ListContracts(context.Background(), "MTR002")
	require.NoError(t, err)
	require.Len(t, byMeter, 1)
	c := byMeter[0]
	assert.Equal(t, "CONT002", c.ID)
	require.NotNil(t, c.EndDate)
	assert.Equal(t, "2024-12-31", *c.EndDate)
	require.NotNil(t, c.FlatMonthlyFee)
	assert.Equal(t, "45", *c.FlatMonthlyFee)
	assert.Nil(t, c.FixedPricePerKwh)
}

func TestReadings_RangoYTotal(t *testing.T) {
	uc := fixture(t)
	res, err := uc.Readings(context.Background(), "MTR001", "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "1.750", res.TotalKwh)
	require.Len(t, res.Readings, 2)
	assert.Equal(t, "1.500", res.Readings[0].Kwh)
	require.NotNil(t, res.Readings[0].Quality)
	assert.Equal(t, "REAL", *res.Readings[0].Quality)
}

func TestReadings_ParametrosInvalidos(t *testing.T) {
	uc := fixture(t)
	cases := []struct{ meter, from, to string }{
		{"", "2024-03-01", "2024-03-31"},
		{"MTR001", "2024-3-1", "2024-03-31"},
		{"MTR001", "2024-03-01", "mañana"},
		{"MTR001", "2024-03-31", "2024-03-01"},
	}
	for _, c := range cases {
		_, err := uc.Readings(context.Background(), c.meter, c.from, c.to)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", c)
	}
	_, err := uc.Readings(context.Background(), "MTR404", "2024-03-01", "2024-03-31")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
