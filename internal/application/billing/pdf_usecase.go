package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

// PDFUseCase genera bajo demanda la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	contracts repository.ContractRepository
	meters    repository.MeterRepository
	renderer  InvoiceRenderer
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	contracts repository.ContractRepository,
	meters repository.MeterRepository,
	renderer InvoiceRenderer,
) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, contracts: contracts, meters: meters, renderer: renderer}
}

// DownloadInvoicePDF carga la factura con su contrato y contador y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//
// Un fallo de generación solo afecta a esta petición; la factura no se modifica.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Contrato y contador (datos de cliente y suministro) ────────────────
	contract, err := uc.contracts.GetByID(ctx, inv.ContractID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener contrato: %w", err)
	}
	if contract == nil {
		return nil, "", fmt.Errorf("pdf: contrato %s de la factura %s: %w", inv.ContractID, inv.ID, domain.ErrNotFound)
	}
	meter, err := uc.meters.GetByID(ctx, inv.MeterID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener contador: %w", err)
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.renderer.RenderInvoice(ctx, InvoiceDocument{Invoice: inv, Contract: contract, Meter: meter})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice-%s.pdf", inv.ID), nil
}
