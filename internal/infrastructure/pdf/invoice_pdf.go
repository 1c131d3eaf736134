// Package pdf genera la representación gráfica de las facturas de energía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: FACTURA DE ENERGÍA     │  Periodo + N° + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: Nombre + NIF + Email + IBAN                        │
//	│  SUMINISTRO: Contador / CUPS / Dirección                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Cantidad | Precio | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Base imponible / Impuestos / TOTAL                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: QR de verificación + leyenda                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/energy-billing/internal/application/billing"
	billingdom "github.com/jhoicas/energy-billing/internal/domain/billing"
	"github.com/jhoicas/energy-billing/internal/domain/entity"
)

var _ appbilling.InvoiceRenderer = (*InvoiceRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 105, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// InvoiceRenderer implementa billing.InvoiceRenderer usando Maroto v2.
type InvoiceRenderer struct {
	issuer string
}

// NewInvoiceRenderer construye el generador. issuer aparece como autor del documento.
func NewInvoiceRenderer(issuer string) *InvoiceRenderer {
	return &InvoiceRenderer{issuer: issuer}
}

// RenderInvoice genera el PDF y devuelve sus bytes.
func (g *InvoiceRenderer) RenderInvoice(ctx context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	if doc.Invoice == nil || doc.Contract == nil {
		return nil, fmt.Errorf("pdf: factura y contrato son obligatorios")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inv := doc.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Period, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(holderRow(doc.Contract))
	m.AddRows(supplyRow(inv, doc.Meter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(conceptRows(inv, doc.Contract)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv, doc.Contract))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(inv))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("FACTURA DE ENERGÍA", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Tarifa "+string(inv.ContractType), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Periodo "+inv.Period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("N° "+inv.ID, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Emitida: "+inv.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func holderRow(c *entity.Contract) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("TITULAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.FullName, c.CustomerID), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIF: %s   |   Email: %s   |   Domiciliación: %s",
				nonEmpty(c.NIF, "—"),
				nonEmpty(c.Email, "—"),
				maskIBAN(c.IBAN),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func supplyRow(inv *entity.Invoice, m *entity.Meter) core.Row {
	detail := "Contador " + inv.MeterID
	if m != nil {
		detail = fmt.Sprintf("Contador %s   |   CUPS: %s   |   %s, %s %s",
			m.ID, nonEmpty(m.CUPS, "—"), m.Address, m.PostalCode, m.City)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PUNTO DE SUMINISTRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(detail, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Concepto", 6, align.Left),
		h("Cantidad", 2, align.Right),
		h("Precio", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

type concept struct {
	label    string
	quantity string
	price    string
	amount   string
}

// conceptRows desglosa el subtotal según la tarifa del contrato.
func conceptRows(inv *entity.Invoice, c *entity.Contract) []core.Row {
	var concepts []concept
	tariff, err := billingdom.TariffFromContract(c)
	switch t := tariff.(type) {
	case billingdom.FixedTariff:
		concepts = []concept{{
			label:    "Energía consumida",
			quantity: formatQuantity(inv.TotalQuantity) + " kWh",
			price:    formatDecimal(t.PricePerUnit) + " €/kWh",
			amount:   formatMoney(inv.Subtotal),
		}}
	case billingdom.FlatTariff:
		overage := decimal.Max(decimal.Zero, inv.TotalQuantity.Sub(t.IncludedUnits))
		concepts = []concept{
			{label: "Cuota mensual", quantity: "1", price: formatMoney(t.MonthlyFee), amount: formatMoney(billingdom.RoundMoney(t.MonthlyFee))},
			{label: "Energía incluida", quantity: formatQuantity(t.IncludedUnits) + " kWh", price: "—", amount: formatMoney(decimal.Zero)},
			{
				label:    "Exceso sobre lo incluido",
				quantity: formatQuantity(overage) + " kWh",
				price:    formatDecimal(t.OveragePricePerUnit) + " €/kWh",
				amount:   formatMoney(billingdom.MulMoney(overage, t.OveragePricePerUnit)),
			},
		}
	}
	if err != nil || len(concepts) == 0 {
		concepts = []concept{{label: "Consumo del periodo", quantity: formatQuantity(inv.TotalQuantity) + " kWh", price: "—", amount: formatMoney(inv.Subtotal)}}
	}

	rows := make([]core.Row, 0, len(concepts))
	for _, cp := range concepts {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(cp.label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(cp.quantity, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(cp.price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(cp.amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(inv *entity.Invoice, c *entity.Contract) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 12, Color: colorPrimary}
	grandLabel, grandValue := grand, grand
	grandLabel.Right, grandValue.Right = 2, 1
	taxLabel := fmt.Sprintf("Impuestos (%s%%):", formatDecimal(c.TaxRate.Mul(decimal.NewFromInt(100))))

	return row.New(22).Add(
		col.New(5),
		col.New(4).Add(
			label("Base imponible:", 0),
			label(taxLabel, 6),
			text.New("TOTAL:", grandLabel),
		),
		col.New(3).Add(
			value(formatMoney(inv.Subtotal), 0),
			value(formatMoney(inv.Tax), 6),
			text.New(formatMoney(inv.Total), grandValue),
		),
	)
}

func footerRow(inv *entity.Invoice) core.Row {
	payload := fmt.Sprintf("%s|%s|%s|%s", inv.ID, inv.ContractID, inv.Period, inv.Total.StringFixed(2))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(payload, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Código de verificación de la factura.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Consumo facturado: %s kWh", formatQuantity(inv.TotalQuantity)), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14, Left: 3, Color: colorPrimary,
			}),
			text.New("Importe cargado en la cuenta de domiciliación indicada.", props.Text{
				Size: 7, Top: 24, Left: 3, Color: colorGray,
			}),
		),
	)
}
