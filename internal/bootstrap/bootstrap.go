// Package bootstrap compone almacén, repositorios y casos de uso a partir de la configuración.
// Lo comparten el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/energy-billing/internal/application/billing"
	"github.com/jhoicas/energy-billing/internal/application/catalog"
	"github.com/jhoicas/energy-billing/internal/application/importer"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
	"github.com/jhoicas/energy-billing/internal/infrastructure/memory"
	"github.com/jhoicas/energy-billing/internal/infrastructure/pdf"
	"github.com/jhoicas/energy-billing/internal/infrastructure/postgres"
	"github.com/jhoicas/energy-billing/internal/observability/metrics"
	"github.com/jhoicas/energy-billing/pkg/config"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// Services casos de uso listos para usar.
type Services struct {
	Meters     repository.MeterRepository
	Contracts  repository.ContractRepository
	Readings   repository.ReadingRepository
	Invoices   repository.InvoiceRepository
	Importer   *importer.Importer
	RunBilling *billing.RunBillingUseCase
	Query      *billing.InvoiceQueryUseCase
	PDF        *billing.PDFUseCase
	Catalog    *catalog.UseCase

	// Pool es nil con STORAGE_DRIVER=memory.
	Pool *pgxpool.Pool
}

// Close libera las conexiones del almacén.
func (s *Services) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// Open abre el almacén configurado (aplicando migraciones en PostgreSQL) y construye los casos de uso.
// Las métricas se registran en reg; nil = registro por defecto de Prometheus.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger, reg prometheus.Registerer) (*Services, error) {
	s := &Services{}
	var tx importer.TxRunner

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		s.Meters, s.Contracts, s.Readings, s.Invoices = store.Meters(), store.Contracts(), store.Readings(), store.Invoices()
		tx = store
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.MigrateUp(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		metrics.RegisterPoolStats(reg, pool)
		s.Pool = pool
		s.Meters = postgres.NewMeterRepository(pool)
		s.Contracts = postgres.NewContractRepository(pool)
		s.Readings = postgres.NewReadingRepository(pool)
		s.Invoices = postgres.NewInvoiceRepository(pool)
		tx = postgres.NewTxRunner(pool)
	}

	renderer := pdf.NewInvoiceRenderer(cfg.App.Name)
	opts := []billing.Option{
		billing.WithWorkers(cfg.Billing.Workers),
		billing.WithObserver(metrics.New(reg)),
	}
	if cfg.Billing.PDFDir != "" {
		archive, err := pdf.NewDirArchive(cfg.Billing.PDFDir)
		if err != nil {
			s.Close()
			return nil, err
		}
		opts = append(opts, billing.WithArchive(s.Meters, renderer, archive))
	}

	s.Importer = importer.New(tx, cfg.Import.Encoding)
	s.RunBilling = billing.NewRunBillingUseCase(s.Contracts, s.Invoices, s.Readings, log, opts...)
	s.Query = billing.NewInvoiceQueryUseCase(s.Invoices)
	s.PDF = billing.NewPDFUseCase(s.Invoices, s.Contracts, s.Meters, renderer)
	s.Catalog = catalog.NewUseCase(s.Meters, s.Contracts, s.Readings)
	return s, nil
}
