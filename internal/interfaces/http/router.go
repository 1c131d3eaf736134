package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-billing/internal/application/billing"
	"github.com/jhoicas/energy-billing/internal/application/catalog"
	"github.com/jhoicas/energy-billing/internal/application/importer"
	"github.com/jhoicas/energy-billing/pkg/jwt"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RunBilling *billing.RunBillingUseCase
	Invoices   *billing.InvoiceQueryUseCase
	PDF        *billing.PDFUseCase
	Catalog    *catalog.UseCase
	Importer   *importer.Importer
	JWTSecret  string // vacío = rutas de escritura sin autenticación
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	// Importaciones y ejecuciones: Bearer Token con rol operator.
	var guards []fiber.Handler
	if deps.JWTSecret != "" {
		guards = []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleOperator)}
	}
	protected := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guards...), h)
	}

	api := app.Group("/api")

	// Facturación
	billingHandler := NewBillingHandler(deps.RunBilling, log)
	api.Post("/billing/run", protected(billingHandler.Run)...)

	// Facturas
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.PDF)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)

	catalogHandler := NewCatalogHandler(deps.Catalog)
	importHandler := NewImportHandler(deps.Importer, log)

	// Contadores
	meters := api.Group("/meters")
	meters.Get("/", catalogHandler.ListMeters)
	meters.Post("/import", protected(importHandler.Meters)...)
	meters.Get("/:id", catalogHandler.GetMeter)

	// Contratos
	contracts := api.Group("/contracts")
	contracts.Get("/", catalogHandler.ListContracts)
	contracts.Post("/import", protected(importHandler.Contracts)...)
	contracts.Get("/:id", catalogHandler.GetContract)

	// Lecturas
	readings := api.Group("/readings")
	readings.Get("/", catalogHandler.ListReadings)
	readings.Post("/import", protected(importHandler.Readings)...)
}
