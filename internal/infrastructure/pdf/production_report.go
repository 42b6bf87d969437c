// Package pdf genera el reporte de producción (plan, materiales reservados y faltantes) en PDF.
//
// Layout A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR PRODUCTO: nombre x cantidad                            │
//	│  TABLA: Material | Saldo | Precio | Req. | Res. | Falta     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: valor reservado (reservado x precio)              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/ports"
)

var _ ports.ProductionReportRenderer = (*ProductionReport)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ProductionReport genera el PDF con Maroto v2.
type ProductionReport struct {
	company string
	now     func() time.Time
}

// NewProductionReport construye el generador. company aparece en el encabezado.
func NewProductionReport(company string) *ProductionReport {
	return &ProductionReport{company: company, now: time.Now}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ProductionReport) Render(report *dto.ProductionInfoResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Production report", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	total := decimal.Zero
	for _, item := range report.Result {
		m.AddRows(productRow(item))
		m.AddRows(tableHeaderRow())
		m.AddRows(materialRows(item.ProductMaterials)...)
		total = total.Add(reservedValue(item.ProductMaterials))
		m.AddRows(line.NewRow(3))
	}
	if len(report.Result) == 0 {
		m.AddRows(text.NewRow(10, "No products in the production plan", props.Text{Top: 3, Color: colorGray}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ProductionReport) headerRow() core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Production plan: material reservation", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(g.now().Format("02.01.2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 3, Color: colorGray}),
		),
	)
}

func productRow(item dto.ProductionInfoItem) core.Row {
	label := fmt.Sprintf("%s x %d", item.ProductName, item.ProductQty)
	c := col.New(12).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 11, Top: 2}))
	if item.RolledBack {
		c = col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 11, Top: 2}),
			text.New("reservation rolled back", props.Text{Size: 8, Align: align.Right, Top: 3, Color: colorAlert}),
		)
	}
	return row.New(9).Add(c)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Material", 4, align.Left),
		h("On hand", 2, align.Right),
		h("Price", 2, align.Right),
		h("Required", 1, align.Right),
		h("Reserved", 2, align.Right),
		h("Short", 1, align.Right),
	)
}

func materialRows(lines []dto.ProductMaterialInfo) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		short := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if l.Shortfall.IsPositive() {
			short.Color = colorAlert
			short.Style = fontstyle.Bold
		}
		cell := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		out = append(out, row.New(7).Add(
			col.New(4).Add(text.New(l.MaterialName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQty(l.Qty), cell)),
			col.New(2).Add(text.New(formatMoney(l.Price), cell)),
			col.New(1).Add(text.New(formatQty(l.Required), cell)),
			col.New(2).Add(text.New(formatQty(l.Reserved), cell)),
			col.New(1).Add(text.New(formatQty(l.Shortfall), short)),
		))
	}
	return out
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("Reserved value", props.Text{Style: fontstyle.Bold, Size: 10, Top: 3})),
		col.New(4).Add(text.New(formatMoney(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3})),
	)
}

func reservedValue(lines []dto.ProductMaterialInfo) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Reserved.Mul(l.Price))
	}
	return sum
}

func formatQty(d decimal.Decimal) string {
	return d.Round(4).String()
}

// formatMoney separador de miles con espacio: 1 234 567.00
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	out := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, intPart[i])
	}
	return sign + string(out) + frac
}
