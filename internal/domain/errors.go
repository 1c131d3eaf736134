package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Errores de facturación.
var (
	// ErrInvalidPeriod el periodo no tiene el formato YYYY-MM o el mes no existe.
	ErrInvalidPeriod = errors.New("periodo inválido, formato esperado YYYY-MM")
	// ErrMissingTariffField falta un campo de tarifa obligatorio para el tipo de contrato.
	ErrMissingTariffField = errors.New("falta un campo de tarifa obligatorio")
	// ErrUnsupportedContractType tipo de contrato fuera de {FIXED, FLAT}.
	ErrUnsupportedContractType = errors.New("tipo de contrato no soportado")
	// ErrDuplicateInvoice ya existe una factura para (contrato, periodo).
	ErrDuplicateInvoice = errors.New("ya existe una factura para el contrato y periodo")
)
