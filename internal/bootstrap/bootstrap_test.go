package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-billing/internal/bootstrap"
	"github.com/jhoicas/energy-billing/pkg/config"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

func memoryConfig(pdfDir string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "energy-billing"},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Billing: config.BillingConfig{Workers: 2, PDFDir: pdfDir},
		Import:  config.ImportConfig{Encoding: "utf-8"},
	}
}

func writeSeed(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"meters.csv": "meterId,cups,address,postalCode,city\nMTR001,,Calle Mayor 1,28001,Madrid\n",
		"contracts.csv": "contractId,meterId,customerId,fullName,nif,email,contractType,startDate,endDate,billingCycle,flatMonthlyFee,includedKwh,overagePricePerKwh,fixedPricePerKwh,taxRate,iban\n" +
			"CONT001,MTR001,C1,Ana García,1Z,a@x.es,FIXED,2024-01-01,,MONTHLY,,,,0.19,0.21,\n",
		"readings.csv": "meterId,date,hour,kwh,quality\nMTR001,2024-03-01,0,100.000,REAL\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestOpen_MemoriaSemillaYFacturacion(t *testing.T) {
	ctx := context.Background()
	seedDir, pdfDir := t.TempDir(), t.TempDir()
	writeSeed(t, seedDir)

	svc, err := bootstrap.Open(ctx, memoryConfig(pdfDir), logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer svc.Close()
	assert.Nil(t, svc.Pool)

	files, err := bootstrap.Seed(ctx, svc.Importer, seedDir, logger.Nop())
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		assert.Equal(t, 1, f.Result.Inserted, f.Name)
	}

	res, err := svc.RunBilling.Run(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, res.Invoices, 1)
	assert.Equal(t, "22.99", res.Invoices[0].Total.StringFixed(2))
	assert.Empty(t, res.DocumentFailures)
	assert.FileExists(t, filepath.Join(pdfDir, res.Invoices[0].ID+".pdf"))

	// Segunda siembra: todo existe ya.
	files, err = bootstrap.Seed(ctx, svc.Importer, seedDir, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, files[0].Result.Inserted)
	assert.Equal(t, 1, files[0].Result.Skipped)
}

func TestSeed_FicherosAusentes(t *testing.T) {
	ctx := context.Background()
	svc, err := bootstrap.Open(ctx, memoryConfig(""), logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)

	files, err := bootstrap.Seed(ctx, svc.Importer, t.TempDir(), logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, files)
}
