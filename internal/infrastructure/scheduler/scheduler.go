// Package scheduler lanza la facturación mensual automáticamente con una expresión cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appbilling "github.com/jhoicas/energy-billing/internal/application/billing"
	billingdom "github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// Runner ejecuta la facturación de un periodo (RunBillingUseCase).
type Runner interface {
	Run(ctx context.Context, period string) (*appbilling.RunResult, error)
}

// Scheduler factura el mes anterior cada vez que se cumple la expresión cron.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	log     *logger.Logger
	now     func() time.Time
}

// New valida la expresión (formato estándar de 5 campos o descriptores como @monthly)
// y registra el trabajo. Las ejecuciones no se solapan: si la anterior sigue en curso se omite.
func New(spec string, runner Runner, log *logger.Logger) (*Scheduler, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Scheduler{
		runner: runner,
		log:    log.Component("scheduler"),
		now:    time.Now,
	}
	cl := cronLogger{log: s.log}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("scheduler: expresión cron inválida %q: %w", spec, err)
	}
	return s, nil
}

// Start arranca el planificador en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info().Time("next", e.Next).Msg("facturación automática programada")
	}
}

// Stop detiene el planificador y espera a que termine la ejecución en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tick sin plazo: la ejecución termina todos los contratos del periodo.
func (s *Scheduler) tick() {
	s.RunPrevious(context.Background())
}

// RunPrevious factura el mes anterior al actual.
func (s *Scheduler) RunPrevious(ctx context.Context) {
	period := billingdom.PreviousPeriod(s.now()).String()
	res, err := s.runner.Run(ctx, period)
	if err != nil {
		s.log.Error().Err(err).Str("period", period).Msg("facturación automática fallida")
		return
	}
	s.log.Info().
		Str("period", period).
		Int("generated", len(res.Invoices)).
		Int("skipped", len(res.Skipped)).
		Int("failed", len(res.Failures)).
		Msg("facturación automática completada")
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
