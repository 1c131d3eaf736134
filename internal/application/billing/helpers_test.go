package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/infrastructure/memory"
)

var fixedNow = time.Date(2024, 4, 2, 3, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullDec(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func addMeter(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	require.NoError(t, store.Meters().Create(context.Background(), &entity.Meter{
		ID: id, Address: "Calle Mayor 1", PostalCode: "28001", City: "Madrid", CreatedAt: fixedNow,
	}))
}

func addContract(t *testing.T, store *memory.Store, c *entity.Contract) {
	t.Helper()
	if c.BillingCycle == "" {
		c.BillingCycle = entity.BillingCycleMonthly
	}
	if c.FullName == "" {
		c.FullName = "Cliente " + c.ID
	}
	require.NoError(t, store.Contracts().Create(context.Background(), c))
}

func fixed(id, meterID, price string) *entity.Contract {
	return &entity.Contract{
		ID: id, MeterID: meterID, Type: entity.ContractTypeFixed,
		StartDate:         day(2024, 1, 1),
		FixedPricePerUnit: nullDec(price),
		TaxRate:           dec("0.21"),
	}
}

func flat(id, meterID string) *entity.Contract {
	return &entity.Contract{
		ID: id, MeterID: meterID, Type: entity.ContractTypeFlat,
		StartDate:           day(2024, 1, 1),
		FlatMonthlyFee:      nullDec("45.00"),
		IncludedUnits:       nullDec("200"),
		OveragePricePerUnit: nullDec("0.28"),
		TaxRate:             dec("0.21"),
	}
}

// addReadings reparte qty en lecturas horarias consecutivas a partir de from.
func addReadings(t *testing.T, store *memory.Store, meterID string, from time.Time, qty ...string) {
	t.Helper()
	for i, q := range qty {
		require.NoError(t, store.Readings().Create(context.Background(), &entity.Reading{
			MeterID: meterID, Date: from.AddDate(0, 0, i/24), Hour: i % 24, Quantity: dec(q),
		}))
	}
}
