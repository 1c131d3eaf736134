package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/energy-billing/internal/application/dto"
	billingdom "github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
)

// Importer carga contadores, contratos y lecturas desde CSV.
// Cada fichero se importa en una transacción; las filas inválidas se descartan y se
// informan en el resultado sin abortar el resto.
type Importer struct {
	tx       TxRunner
	encoding string
	now      func() time.Time
}

// New construye el importador. encoding: "utf-8" (por defecto) o "latin1".
func New(tx TxRunner, encoding string) *Importer {
	return &Importer{tx: tx, encoding: encoding, now: time.Now}
}

// ImportMeters columnas: meterId,cups,address,postalCode,city.
func (im *Importer) ImportMeters(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := readRows(r, im.encoding)
	if err != nil {
		return nil, err
	}
	res := newResult()
	err = im.tx.RunImport(ctx, func(meters repository.MeterRepository, _ repository.ContractRepository, _ repository.ReadingRepository) error {
		for _, row := range rows {
			meterID := row.col(0)
			switch {
			case meterID == "":
				res.reject("fila %d: meterId obligatorio (%s)", row.line, row)
				continue
			case row.col(2) == "":
				res.reject("fila %d: address obligatorio para meterId=%s", row.line, meterID)
				continue
			case row.col(4) == "":
				res.reject("fila %d: city obligatorio para meterId=%s", row.line, meterID)
				continue
			}
			exists, err := meters.Exists(ctx, meterID)
			if err != nil {
				return err
			}
			if exists {
				res.Skipped++
				continue
			}
			if err := meters.Create(ctx, &entity.Meter{
				ID:         meterID,
				CUPS:       row.col(1),
				Address:    row.col(2),
				PostalCode: row.col(3),
				City:       row.col(4),
				CreatedAt:  im.now(),
			}); err != nil {
				return err
			}
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importar contadores: %w", err)
	}
	return res.ImportResult, nil
}

// ImportContracts columnas: contractId,meterId,customerId,fullName,nif,email,contractType,
// startDate,endDate,billingCycle,flatMonthlyFee,includedKwh,overagePricePerKwh,
// fixedPricePerKwh,taxRate,iban.
//
// Los campos de tarifa se guardan tal cual; que estén completos para el tipo lo
// comprueba el motor de facturación al calcular.
func (im *Importer) ImportContracts(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := readRows(r, im.encoding)
	if err != nil {
		return nil, err
	}
	res := newResult()
	err = im.tx.RunImport(ctx, func(meters repository.MeterRepository, contracts repository.ContractRepository, _ repository.ReadingRepository) error {
		for _, row := range rows {
			contractID := row.col(0)
			if contractID == "" {
				res.reject("fila %d: contractId obligatorio (%s)", row.line, row)
				continue
			}
			exists, err := contracts.Exists(ctx, contractID)
			if err != nil {
				return err
			}
			if exists {
				res.Skipped++
				continue
			}
			meterID := row.col(1)
			meterExists, err := meters.Exists(ctx, meterID)
			if err != nil {
				return err
			}
			if !meterExists {
				res.reject("fila %d: meterId desconocido '%s' para contrato=%s", row.line, meterID, contractID)
				continue
			}
			c, err := parseContract(row)
			if err != nil {
				res.reject("fila %d: contrato=%s: %v", row.line, contractID, err)
				continue
			}
			if err := contracts.Create(ctx, c); err != nil {
				return err
			}
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importar contratos: %w", err)
	}
	return res.ImportResult, nil
}

// ImportReadings columnas: meterId,date,hour,kwh,quality.
func (im *Importer) ImportReadings(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := readRows(r, im.encoding)
	if err != nil {
		return nil, err
	}
	res := newResult()
	err = im.tx.RunImport(ctx, func(meters repository.MeterRepository, _ repository.ContractRepository, readings repository.ReadingRepository) error {
		for _, row := range rows {
			rd, err := parseReading(row)
			if err != nil {
				res.reject("fila %d: meterId=%s: %v", row.line, row.col(0), err)
				continue
			}
			dup, err := readings.Exists(ctx, rd.MeterID, rd.Date, rd.Hour)
			if err != nil {
				return err
			}
			if dup {
				res.reject("fila %d: lectura duplicada meterId=%s date=%s hour=%d",
					row.line, rd.MeterID, rd.Date.Format(time.DateOnly), rd.Hour)
				continue
			}
			meterExists, err := meters.Exists(ctx, rd.MeterID)
			if err != nil {
				return err
			}
			if !meterExists {
				res.reject("fila %d: meterId desconocido '%s'", row.line, rd.MeterID)
				continue
			}
			if err := readings.Create(ctx, rd); err != nil {
				return err
			}
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importar lecturas: %w", err)
	}
	return res.ImportResult, nil
}

// ── parsing ───────────────────────────────────────────────────────────────────

func parseContract(r row) (*entity.Contract, error) {
	ctype := entity.ContractType(r.col(6))
	if !ctype.Valid() {
		return nil, fmt.Errorf("contractType inválido %q", r.col(6))
	}
	start, err := time.Parse(time.DateOnly, r.col(7))
	if err != nil {
		return nil, fmt.Errorf("startDate inválida %q", r.col(7))
	}
	var end *time.Time
	if s := r.col(8); s != "" {
		e, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("endDate inválida %q", s)
		}
		if e.Before(start) {
			return nil, fmt.Errorf("endDate %s anterior a startDate %s", s, r.col(7))
		}
		end = &e
	}
	cycle := entity.BillingCycle(r.col(9))
	if cycle != entity.BillingCycleMonthly {
		return nil, fmt.Errorf("billingCycle no soportado %q", r.col(9))
	}
	var fields [4]decimal.NullDecimal
	for i := range fields {
		fields[i], err = optionalDecimal(r.col(10 + i))
		if err != nil {
			return nil, err
		}
	}
	taxRate, err := decimal.NewFromString(r.col(14))
	if err != nil {
		return nil, fmt.Errorf("taxRate inválido %q", r.col(14))
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("taxRate negativo %s", taxRate)
	}
	return &entity.Contract{
		ID:                  r.col(0),
		MeterID:             r.col(1),
		CustomerID:          r.col(2),
		FullName:            r.col(3),
		NIF:                 r.col(4),
		Email:               r.col(5),
		Type:                ctype,
		StartDate:           start,
		EndDate:             end,
		BillingCycle:        cycle,
		FlatMonthlyFee:      fields[0],
		IncludedUnits:       fields[1],
		OveragePricePerUnit: fields[2],
		FixedPricePerUnit:   fields[3],
		TaxRate:             taxRate,
		IBAN:                r.col(15),
	}, nil
}

func parseReading(r row) (*entity.Reading, error) {
	meterID := r.col(0)
	if meterID == "" {
		return nil, fmt.Errorf("meterId obligatorio")
	}
	date, err := time.Parse(time.DateOnly, r.col(1))
	if err != nil {
		return nil, fmt.Errorf("date inválida %q", r.col(1))
	}
	hour, err := strconv.Atoi(r.col(2))
	if err != nil {
		return nil, fmt.Errorf("hour inválida %q", r.col(2))
	}
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("hour debe estar entre 0 y 23 (date=%s)", r.col(1))
	}
	qty, err := decimal.NewFromString(r.col(3))
	if err != nil {
		return nil, fmt.Errorf("kwh inválido %q", r.col(3))
	}
	if qty.IsNegative() {
		return nil, fmt.Errorf("kwh debe ser >= 0 (date=%s)", r.col(1))
	}
	if !qty.Equal(billingdom.RoundQuantity(qty)) {
		return nil, fmt.Errorf("kwh admite como máximo %d decimales %q", billingdom.QuantityScale, r.col(3))
	}
	rd := &entity.Reading{MeterID: meterID, Date: date, Hour: hour, Quantity: qty}
	if s := r.col(4); s != "" {
		q := entity.ReadingQuality(s)
		if !q.Valid() {
			return nil, fmt.Errorf("quality inválida %q", s)
		}
		rd.Quality = &q
	}
	return rd, nil
}

func optionalDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("decimal inválido %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}

// ── resultado ─────────────────────────────────────────────────────────────────

type result struct {
	*dto.ImportResult
}

func newResult() result {
	return result{ImportResult: &dto.ImportResult{Errors: []string{}}}
}

func (r result) reject(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Skipped++
}
