package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/energy-billing/internal/domain"
	billingdom "github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// ContractFailure contrato que no pudo facturarse en una ejecución.
type ContractFailure struct {
	ContractID string
	Err        error
}

// DocumentFailure PDF que no pudo archivarse. La factura ya está guardada.
type DocumentFailure struct {
	InvoiceID string
	Err       error
}

// RunResult resultado de una ejecución de facturación.
type RunResult struct {
	Period           string
	Invoices         []*entity.Invoice // nuevas, en el orden de los contratos
	Skipped          []string          // contratos que ya tenían factura
	Failures         []ContractFailure
	DocumentFailures []DocumentFailure
}

// Option configura RunBillingUseCase.
type Option func(*RunBillingUseCase)

// WithWorkers número de contratos que se facturan en paralelo (mínimo 1).
func WithWorkers(n int) Option {
	return func(uc *RunBillingUseCase) {
		if n > 0 {
			uc.workers = n
		}
	}
}

// WithClock fija el reloj usado para GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(uc *RunBillingUseCase) { uc.now = now }
}

// WithObserver registra métricas de cada ejecución.
func WithObserver(o RunObserver) Option {
	return func(uc *RunBillingUseCase) {
		if o != nil {
			uc.observer = o
		}
	}
}

// WithArchive archiva el PDF de cada factura nueva. Los fallos no deshacen la factura.
func WithArchive(meters repository.MeterRepository, renderer InvoiceRenderer, archive DocumentArchive) Option {
	return func(uc *RunBillingUseCase) {
		uc.meters, uc.renderer, uc.archive = meters, renderer, archive
	}
}

// RunBillingUseCase genera las facturas mensuales de todos los contratos activos.
type RunBillingUseCase struct {
	contracts   repository.ContractRepository
	invoices    repository.InvoiceRepository
	consumption *ConsumptionAggregator
	log         *logger.Logger

	meters   repository.MeterRepository
	renderer InvoiceRenderer
	archive  DocumentArchive

	observer RunObserver
	workers  int
	now      func() time.Time
}

// NewRunBillingUseCase construye el caso de uso.
func NewRunBillingUseCase(
	contracts repository.ContractRepository,
	invoices repository.InvoiceRepository,
	readings repository.ReadingRepository,
	log *logger.Logger,
	opts ...Option,
) *RunBillingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &RunBillingUseCase{
		contracts:   contracts,
		invoices:    invoices,
		consumption: NewConsumptionAggregator(readings),
		log:         log.Component("billing"),
		observer:    nopObserver{},
		workers:     1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type outcome struct {
	invoice *entity.Invoice
	skipped bool
	err     error
	docErr  error
}

// Run factura el periodo (YYYY-MM). Un periodo inválido o un fallo al listar contratos
// aborta la ejecución; los fallos de un contrato se informan en RunResult.Failures sin
// afectar al resto. Volver a ejecutar el mismo periodo solo genera las facturas que faltan.
func (uc *RunBillingUseCase) Run(ctx context.Context, rawPeriod string) (*RunResult, error) {
	started := time.Now()
	period, err := billingdom.ParsePeriod(rawPeriod)
	if err != nil {
		uc.observer.ObserveRun(ResultError, time.Since(started))
		return nil, err
	}

	all, err := uc.contracts.List(ctx)
	if err != nil {
		uc.observer.ObserveRun(ResultError, time.Since(started))
		return nil, fmt.Errorf("facturación %s: listar contratos: %w", period, err)
	}
	active := billingdom.ActiveContracts(all, period.Range())

	outcomes := make([]outcome, len(active))
	var g errgroup.Group
	g.SetLimit(uc.workers)
	for i, c := range active {
		g.Go(func() error {
			outcomes[i] = uc.billContract(ctx, period, c)
			return nil
		})
	}
	_ = g.Wait()

	res := &RunResult{
		Period:           period.String(),
		Invoices:         []*entity.Invoice{},
		Skipped:          []string{},
		Failures:         []ContractFailure{},
		DocumentFailures: []DocumentFailure{},
	}
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			res.Failures = append(res.Failures, ContractFailure{ContractID: active[i].ID, Err: o.err})
		case o.skipped:
			res.Skipped = append(res.Skipped, active[i].ID)
		default:
			res.Invoices = append(res.Invoices, o.invoice)
			if o.docErr != nil {
				res.DocumentFailures = append(res.DocumentFailures, DocumentFailure{InvoiceID: o.invoice.ID, Err: o.docErr})
			}
		}
	}

	result := ResultSuccess
	if len(res.Failures) > 0 {
		result = ResultPartial
	}
	elapsed := time.Since(started)
	uc.observer.ObserveRun(result, elapsed)
	uc.log.Info().
		Str("period", res.Period).
		Int("active", len(active)).
		Int("generated", len(res.Invoices)).
		Int("skipped", len(res.Skipped)).
		Int("failed", len(res.Failures)).
		Dur("elapsed", elapsed).
		Msg("ejecución de facturación terminada")
	return res, nil
}

func (uc *RunBillingUseCase) billContract(ctx context.Context, period billingdom.Period, c *entity.Contract) outcome {
	log := uc.log.Zerolog().With().Str("period", period.String()).Str("contract_id", c.ID).Logger()
	fail := func(err error) outcome {
		uc.observer.ContractFailed(failureReason(err))
		log.Warn().Err(err).Msg("contrato no facturado")
		return outcome{err: err}
	}
	skip := func() outcome {
		uc.observer.ContractSkipped()
		log.Debug().Msg("contrato ya facturado en el periodo")
		return outcome{skipped: true}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	exists, err := uc.invoices.ExistsByContractAndPeriod(ctx, c.ID, period.String())
	if err != nil {
		return fail(fmt.Errorf("comprobar factura existente: %w", err))
	}
	if exists {
		return skip()
	}

	quantity, err := uc.consumption.Total(ctx, c.MeterID, period.Range())
	if err != nil {
		return fail(err)
	}
	charges, err := billingdom.Calculate(c, quantity)
	if err != nil {
		return fail(err)
	}

	inv := &entity.Invoice{
		ID:               uuid.NewString(),
		Period:           period.String(),
		ContractID:       c.ID,
		MeterID:          c.MeterID,
		CustomerFullName: c.FullName,
		ContractType:     c.Type,
		TotalQuantity:    charges.TotalQuantity,
		Subtotal:         charges.Subtotal,
		Tax:              charges.Tax,
		Total:            charges.Total,
		GeneratedAt:      uc.now(),
	}
	if err := uc.invoices.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrDuplicateInvoice) {
			return skip()
		}
		return fail(fmt.Errorf("guardar factura: %w", err))
	}
	uc.observer.InvoiceGenerated()
	log.Info().Str("invoice_id", inv.ID).Str("total", inv.Total.StringFixed(2)).Msg("factura generada")

	out := outcome{invoice: inv}
	if uc.archive != nil && uc.renderer != nil {
		out.docErr = uc.archiveDocument(ctx, inv, c)
		uc.observer.DocumentArchived(out.docErr == nil)
		if out.docErr != nil {
			log.Error().Err(out.docErr).Str("invoice_id", inv.ID).Msg("no se pudo archivar el PDF")
		}
	}
	return out
}

func (uc *RunBillingUseCase) archiveDocument(ctx context.Context, inv *entity.Invoice, c *entity.Contract) error {
	var meter *entity.Meter
	if uc.meters != nil {
		m, err := uc.meters.GetByID(ctx, inv.MeterID)
		if err != nil {
			return fmt.Errorf("obtener contador: %w", err)
		}
		meter = m
	}
	pdf, err := uc.renderer.RenderInvoice(ctx, InvoiceDocument{Invoice: inv, Contract: c, Meter: meter})
	if err != nil {
		return fmt.Errorf("generar PDF: %w", err)
	}
	if err := uc.archive.Save(ctx, inv.ID+".pdf", pdf); err != nil {
		return fmt.Errorf("archivar PDF: %w", err)
	}
	return nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingTariffField):
		return ReasonMissingTariffField
	case errors.Is(err, domain.ErrUnsupportedContractType):
		return ReasonUnsupportedType
	default:
		return ReasonStore
	}
}
