package billing

import (
	"context"
	"time"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

// InvoiceDocument datos que necesita la representación gráfica de una factura.
// Meter puede ser nil si el contador ya no existe.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Contract *entity.Contract
	Meter    *entity.Meter
}

// InvoiceRenderer genera el PDF de una factura (implementado en infrastructure/pdf).
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// DocumentArchive guarda los PDFs generados durante una ejecución.
type DocumentArchive interface {
	Save(ctx context.Context, name string, data []byte) error
}

// Resultados de una ejecución, tal como los recibe RunObserver.
const (
	ResultSuccess = "success" // sin fallos por contrato
	ResultPartial = "partial" // al menos un contrato falló
	ResultError   = "error"   // la ejecución abortó
)

// Motivos de fallo por contrato.
const (
	ReasonMissingTariffField = "missing_tariff_field"
	ReasonUnsupportedType    = "unsupported_contract_type"
	ReasonStore              = "store"
)

// RunObserver recibe los eventos de una ejecución (métricas).
type RunObserver interface {
	ObserveRun(result string, elapsed time.Duration)
	InvoiceGenerated()
	ContractSkipped()
	ContractFailed(reason string)
	DocumentArchived(ok bool)
}

type nopObserver struct{}

func (nopObserver) ObserveRun(string, time.Duration) {}
func (nopObserver) InvoiceGenerated()                {}
func (nopObserver) ContractSkipped()                 {}
func (nopObserver) ContractFailed(string)            {}
func (nopObserver) DocumentArchived(bool)            {}
