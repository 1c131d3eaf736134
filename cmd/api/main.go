package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/energy-billing/internal/bootstrap"
	"github.com/jhoicas/energy-billing/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/energy-billing/internal/interfaces/http"
	"github.com/jhoicas/energy-billing/pkg/config"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
}

// prepare abre el almacén, carga las semillas y programa la facturación automática.
// Si algo falla cierra lo ya abierto antes de devolver el error.
func prepare(ctx context.Context, cfg *config.Config, log *logger.Logger, reg prometheus.Registerer) (*bootstrap.Services, *scheduler.Scheduler, error) {
	svc, err := bootstrap.Open(ctx, cfg, log, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("inicializar almacén: %w", err)
	}

	if cfg.Import.SeedDir != "" {
		if _, err := bootstrap.Seed(ctx, svc.Importer, cfg.Import.SeedDir, log); err != nil {
			svc.Close()
			return nil, nil, fmt.Errorf("cargar semillas de %s: %w", cfg.Import.SeedDir, err)
		}
	}

	// Facturación automática del mes anterior
	var sched *scheduler.Scheduler
	if cfg.Billing.Schedule != "" {
		sched, err = scheduler.New(cfg.Billing.Schedule, svc.RunBilling, log)
		if err != nil {
			svc.Close()
			return nil, nil, fmt.Errorf("programar facturación: %w", err)
		}
	}
	return svc, sched, nil
}

func run(cfg *config.Config, log *logger.Logger) error {
	svc, sched, err := prepare(context.Background(), cfg, log, nil)
	if err != nil {
		return err
	}
	defer svc.Close()
	if sched != nil {
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Energy Billing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RunBilling: svc.RunBilling,
		Invoices:   svc.Query,
		PDF:        svc.PDF,
		Catalog:    svc.Catalog,
		Importer:   svc.Importer,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: importaciones y facturación sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del planificador")
		}
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
