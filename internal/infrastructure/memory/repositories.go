package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

var (
	_ repository.MeterRepository    = (*MeterRepo)(nil)
	_ repository.ContractRepository = (*ContractRepo)(nil)
	_ repository.ReadingRepository  = (*ReadingRepo)(nil)
	_ repository.InvoiceRepository  = (*InvoiceRepo)(nil)
)

// Las filas se guardan por valor; los punteros devueltos son siempre copias.
type (
	meterRow    = entity.Meter
	contractRow = entity.Contract
	readingRow  = entity.Reading
	invoiceRow  = entity.Invoice
)

// ── Meters ────────────────────────────────────────────────────────────────────

// MeterRepo repositorio de contadores en memoria.
type MeterRepo struct{ s *Store }

func (r *MeterRepo) Create(_ context.Context, m *entity.Meter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.meters[m.ID]; ok {
		return fmt.Errorf("meter %s: %w", m.ID, domain.ErrDuplicate)
	}
	r.s.meters[m.ID] = *m
	return nil
}

func (r *MeterRepo) GetByID(_ context.Context, id string) (*entity.Meter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.meters[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MeterRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.meters[id]
	return ok, nil
}

func (r *MeterRepo) List(_ context.Context) ([]*entity.Meter, error) {
	r.s.mu.RLock()
	list := make([]*entity.Meter, 0, len(r.s.meters))
	for _, m := range r.s.meters {
		m := m
		list = append(list, &m)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// ── Contracts ─────────────────────────────────────────────────────────────────

// ContractRepo repositorio de contratos en memoria.
type ContractRepo struct{ s *Store }

func (r *ContractRepo) Create(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[c.ID]; ok {
		return fmt.Errorf("contract %s: %w", c.ID, domain.ErrDuplicate)
	}
	r.s.contracts[c.ID] = copyContract(c)
	return nil
}

func (r *ContractRepo) GetByID(_ context.Context, id string) (*entity.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return nil, nil
	}
	out := copyContract(&c)
	return &out, nil
}

func (r *ContractRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.contracts[id]
	return ok, nil
}

func (r *ContractRepo) List(ctx context.Context) ([]*entity.Contract, error) {
	return r.filter(func(*entity.Contract) bool { return true }), nil
}

func (r *ContractRepo) ListByMeter(_ context.Context, meterID string) ([]*entity.Contract, error) {
	return r.filter(func(c *entity.Contract) bool { return c.MeterID == meterID }), nil
}

func (r *ContractRepo) filter(keep func(*entity.Contract) bool) []*entity.Contract {
	r.s.mu.RLock()
	list := make([]*entity.Contract, 0, len(r.s.contracts))
	for _, c := range r.s.contracts {
		if keep(&c) {
			out := copyContract(&c)
			list = append(list, &out)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func copyContract(c *entity.Contract) entity.Contract {
	out := *c
	if c.EndDate != nil {
		end := *c.EndDate
		out.EndDate = &end
	}
	return out
}

// ── Readings ──────────────────────────────────────────────────────────────────

// ReadingRepo repositorio de lecturas en memoria.
type ReadingRepo struct{ s *Store }

func keyOf(meterID string, date time.Time, hour int) readingKey {
	return readingKey{meterID: meterID, date: date.Format(time.DateOnly), hour: hour}
}

func (r *ReadingRepo) Create(_ context.Context, rd *entity.Reading) error {
	k := keyOf(rd.MeterID, rd.Date, rd.Hour)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.readings[k]; ok {
		return fmt.Errorf("reading %s %s %d: %w", k.meterID, k.date, k.hour, domain.ErrDuplicate)
	}
	row := *rd
	row.Date = billing.DateOf(rd.Date)
	r.s.readings[k] = row
	return nil
}

func (r *ReadingRepo) Exists(_ context.Context, meterID string, date time.Time, hour int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.readings[keyOf(meterID, date, hour)]
	return ok, nil
}

func (r *ReadingRepo) ListByMeter(_ context.Context, meterID string, from, to time.Time) ([]*entity.Reading, error) {
	rng := billing.DateRange{From: from, To: to}
	r.s.mu.RLock()
	var list []*entity.Reading
	for _, rd := range r.s.readings {
		if rd.MeterID == meterID && rng.Contains(rd.Date) {
			rd := rd
			list = append(list, &rd)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].Hour < list[j].Hour
	})
	return list, nil
}

func (r *ReadingRepo) SumQuantity(_ context.Context, meterID string, from, to time.Time) (decimal.Decimal, error) {
	rng := billing.DateRange{From: from, To: to}
	total := decimal.Zero
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rd := range r.s.readings {
		if rd.MeterID == meterID && rng.Contains(rd.Date) {
			total = total.Add(rd.Quantity)
		}
	}
	return total, nil
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// InvoiceRepo repositorio de facturas en memoria. Create es atómico respecto a
// (contrato, periodo), igual que la restricción UNIQUE de PostgreSQL.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	k := invoiceKey{contractID: inv.ContractID, period: inv.Period}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.byPeriod[k]; ok {
		return fmt.Errorf("contrato %s periodo %s: %w", inv.ContractID, inv.Period, domain.ErrDuplicateInvoice)
	}
	if _, ok := r.s.invoices[inv.ID]; ok {
		return fmt.Errorf("invoice %s: %w", inv.ID, domain.ErrDuplicate)
	}
	r.s.invoices[inv.ID] = *inv
	r.s.byPeriod[k] = inv.ID
	return nil
}

func (r *InvoiceRepo) ExistsByContractAndPeriod(_ context.Context, contractID, period string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.byPeriod[invoiceKey{contractID: contractID, period: period}]
	return ok, nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InvoiceRepo) ListByPeriod(_ context.Context, period string) ([]*entity.Invoice, error) {
	list := r.filter(func(inv *entity.Invoice) bool { return inv.Period == period })
	sort.Slice(list, func(i, j int) bool { return list[i].ContractID < list[j].ContractID })
	return list, nil
}

func (r *InvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	list := r.filter(func(*entity.Invoice) bool { return true })
	sort.Slice(list, func(i, j int) bool {
		if list[i].Period != list[j].Period {
			return list[i].Period > list[j].Period
		}
		return list[i].GeneratedAt.After(list[j].GeneratedAt)
	})
	return list, nil
}

func (r *InvoiceRepo) filter(keep func(*entity.Invoice) bool) []*entity.Invoice {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		if keep(&inv) {
			inv := inv
			list = append(list, &inv)
		}
	}
	return list
}
