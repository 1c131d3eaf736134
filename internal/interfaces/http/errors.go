package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-billing/internal/application/dto"
	"github.com/jhoicas/energy-billing/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		return fiber.StatusBadRequest, "INVALID_PERIOD"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrDuplicateInvoice):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// failureCode código estable para los fallos por contrato de una ejecución.
func failureCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingTariffField):
		return "MISSING_TARIFF_FIELD"
	case errors.Is(err, domain.ErrUnsupportedContractType):
		return "UNSUPPORTED_CONTRACT_TYPE"
	default:
		return "STORE_ERROR"
	}
}
