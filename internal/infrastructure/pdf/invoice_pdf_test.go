package pdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/energy-billing/internal/application/billing"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

func sampleDocument(ctype entity.ContractType) appbilling.InvoiceDocument {
	d := decimal.RequireFromString
	c := &entity.Contract{
		ID: "CONT002", MeterID: "MTR002", FullName: "Jordi Puig", NIF: "87654321X",
		Type: ctype, TaxRate: d("0.21"), IBAN: "ES91 2100 0418 4502 0005 1332",
		FlatMonthlyFee:      decimal.NewNullDecimal(d("45.00")),
		IncludedUnits:       decimal.NewNullDecimal(d("200")),
		OveragePricePerUnit: decimal.NewNullDecimal(d("0.28")),
		FixedPricePerUnit:   decimal.NewNullDecimal(d("0.19")),
	}
	return appbilling.InvoiceDocument{
		Invoice: &entity.Invoice{
			ID: "8f14e45f-ceea-467f-a0e6-000000000001", Period: "2024-03", ContractID: c.ID, MeterID: c.MeterID,
			CustomerFullName: c.FullName, ContractType: ctype,
			TotalQuantity: d("250.000"), Subtotal: d("59.00"), Tax: d("12.39"), Total: d("71.39"),
			GeneratedAt: time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC),
		},
		Contract: c,
		Meter:    &entity.Meter{ID: "MTR002", Address: "Avenida Diagonal 100", PostalCode: "08019", City: "Barcelona"},
	}
}

func TestRenderInvoice_GeneraPDF(t *testing.T) {
	r := NewInvoiceRenderer("Energía Test")
	for _, ctype := range []entity.ContractType{entity.ContractTypeFlat, entity.ContractTypeFixed} {
		out, err := r.RenderInvoice(context.Background(), sampleDocument(ctype))
		require.NoError(t, err, ctype)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), ctype)
	}
}

func TestRenderInvoice_SinContador(t *testing.T) {
	doc := sampleDocument(entity.ContractTypeFixed)
	doc.Meter = nil
	out, err := NewInvoiceRenderer("x").RenderInvoice(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderInvoice_SinContrato_Error(t *testing.T) {
	doc := sampleDocument(entity.ContractTypeFixed)
	doc.Contract = nil
	_, err := NewInvoiceRenderer("x").RenderInvoice(context.Background(), doc)
	assert.Error(t, err)
}

func TestFormato(t *testing.T) {
	d := decimal.RequireFromString
	assert.Equal(t, "1.234,50 €", formatMoney(d("1234.5")))
	assert.Equal(t, "0,00 €", formatMoney(decimal.Zero))
	assert.Equal(t, "1.000.000,000", formatQuantity(d("1000000")))
	assert.Equal(t, "0,19", formatDecimal(d("0.190000")))
	assert.Equal(t, "-12,30 €", formatMoney(d("-12.3")))
	assert.Equal(t, "ES91****************1332", maskIBAN("ES91 2100 0418 4502 0005 1332"))
	assert.Equal(t, "—", maskIBAN(""))
}

func TestDirArchive_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pdfs")
	a, err := NewDirArchive(dir)
	require.NoError(t, err)

	require.NoError(t, a.Save(context.Background(), "abc.pdf", []byte("%PDF-1.4")))
	got, err := os.ReadFile(filepath.Join(dir, "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), got)

	assert.Error(t, a.Save(context.Background(), "../fuera.pdf", nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
