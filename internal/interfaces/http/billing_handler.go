package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-billing/internal/application/billing"
	"github.com/jhoicas/energy-billing/internal/application/dto"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// BillingHandler lanza ejecuciones de facturación.
type BillingHandler struct {
	uc  *billing.RunBillingUseCase
	log *logger.Logger
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.RunBillingUseCase, log *logger.Logger) *BillingHandler {
	return &BillingHandler{uc: uc, log: log}
}

// Run factura el periodo indicado. Repetir la llamada es seguro: solo se generan las facturas que falten.
// POST /api/billing/run?period=YYYY-MM
func (h *BillingHandler) Run(c *fiber.Ctx) error {
	period := c.Query("period")
	res, err := h.uc.Run(c.UserContext(), period)
	if err != nil {
		h.log.Warn().Err(err).Str("period", period).Str("subject", GetSubject(c)).Msg("ejecución de facturación rechazada")
		return writeError(c, err)
	}
	return c.JSON(newRunResponse(res))
}

func newRunResponse(res *billing.RunResult) dto.BillingRunResponse {
	out := dto.BillingRunResponse{
		Period:    res.Period,
		Generated: len(res.Invoices),
		Invoices:  make([]string, 0, len(res.Invoices)),
		Skipped:   res.Skipped,
		Failures:  make([]dto.ContractFailureDTO, 0, len(res.Failures)),
	}
	for _, inv := range res.Invoices {
		out.Invoices = append(out.Invoices, inv.ID)
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, dto.ContractFailureDTO{
			ContractID: f.ContractID,
			Code:       failureCode(f.Err),
			Message:    f.Err.Error(),
		})
	}
	for _, f := range res.DocumentFailures {
		out.DocumentFailures = append(out.DocumentFailures, dto.DocumentFailureDTO{InvoiceID: f.InvoiceID, Message: f.Err.Error()})
	}
	return out
}
