// Package memory implementa los repositorios en memoria. Se usa con STORAGE_DRIVER=memory
// (desarrollo, demos) y como doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/energy-billing/internal/application/importer"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

var _ importer.TxRunner = (*Store)(nil)

type readingKey struct {
	meterID string
	date    string // YYYY-MM-DD
	hour    int
}

type invoiceKey struct {
	contractID string
	period     string
}

// Store agrupa los datos de todos los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	meters    map[string]meterRow
	contracts map[string]contractRow
	readings  map[readingKey]readingRow
	invoices  map[string]invoiceRow
	byPeriod  map[invoiceKey]string // (contrato, periodo) → invoice ID

	txMu sync.Mutex
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		meters:    make(map[string]meterRow),
		contracts: make(map[string]contractRow),
		readings:  make(map[readingKey]readingRow),
		invoices:  make(map[string]invoiceRow),
		byPeriod:  make(map[invoiceKey]string),
	}
}

// Meters devuelve el repositorio de contadores.
func (s *Store) Meters() *MeterRepo { return &MeterRepo{s: s} }

// Contracts devuelve el repositorio de contratos.
func (s *Store) Contracts() *ContractRepo { return &ContractRepo{s: s} }

// Readings devuelve el repositorio de lecturas.
func (s *Store) Readings() *ReadingRepo { return &ReadingRepo{s: s} }

// Invoices devuelve el repositorio de facturas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// RunImport ejecuta fn con los repositorios del almacén. Si fn falla se restaura
// el estado previo de contadores, contratos y lecturas.
func (s *Store) RunImport(_ context.Context, fn func(
	meters repository.MeterRepository,
	contracts repository.ContractRepository,
	readings repository.ReadingRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	meters := cloneMap(s.meters)
	contracts := cloneMap(s.contracts)
	readings := cloneMap(s.readings)
	s.mu.RUnlock()

	if err := fn(s.Meters(), s.Contracts(), s.Readings()); err != nil {
		s.mu.Lock()
		s.meters, s.contracts, s.readings = meters, contracts, readings
		s.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
