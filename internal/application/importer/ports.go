package importer

import (
	"context"

	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

// TxRunner ejecuta la importación de un fichero completo dentro de una transacción:
// si fn devuelve error no queda ninguna fila del fichero persistida.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(
		meters repository.MeterRepository,
		contracts repository.ContractRepository,
		readings repository.ReadingRepository,
	) error) error
}
