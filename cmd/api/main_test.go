package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-billing/pkg/config"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "energy-billing"},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Billing: config.BillingConfig{Workers: 1},
		Import:  config.ImportConfig{Encoding: "utf-8"},
	}
}

func TestPrepare_OK(t *testing.T) {
	cfg := memoryConfig()
	cfg.Billing.Schedule = "@monthly"

	svc, sched, err := prepare(context.Background(), cfg, logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer svc.Close()
	assert.NotNil(t, sched)
	assert.NotNil(t, svc.RunBilling)
}

func TestPrepare_ExpresionCronInvalida_DevuelveError(t *testing.T) {
	cfg := memoryConfig()
	cfg.Billing.Schedule = "cada lunes"

	svc, sched, err := prepare(context.Background(), cfg, logger.Nop(), prometheus.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "programar facturación")
	assert.Nil(t, svc)
	assert.Nil(t, sched)
}

func TestPrepare_SemillaIlegible_DevuelveError(t *testing.T) {
	cfg := memoryConfig()
	cfg.Import.SeedDir = t.TempDir()
	// meters.csv es un directorio: abrirlo funciona pero leerlo falla.
	require.NoError(t, os.Mkdir(filepath.Join(cfg.Import.SeedDir, "meters.csv"), 0o755))

	svc, _, err := prepare(context.Background(), cfg, logger.Nop(), prometheus.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cargar semillas")
	assert.Nil(t, svc)
}
