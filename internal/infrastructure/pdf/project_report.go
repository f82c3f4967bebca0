// Package pdf genera el reporte de estado de un proyecto con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + Estado    │  Código de acceso + Fecha    │
//	│  CLIENTE: Nombre / Rubro / contacto                          │
//	│  AVANCE: porcentaje + fecha estimada + QR del código         │
//	│  CHECKLIST: # | Tarea | Asignado | Estado                    │
//	│  PAGOS: Fecha | Método | Estado | Monto                      │
//	│  TOTALES: Pagado / Pendiente / Vencido                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

var _ usecase.ProjectReportGenerator = (*ReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDone    = &props.Color{Red: 30, Green: 130, Blue: 76}
)

// ReportGenerator implementa usecase.ProjectReportGenerator.
type ReportGenerator struct {
	printer *message.Printer
	now     func() time.Time
}

// NewReportGenerator construye el generador. Los montos se formatean según lang (ej. language.Spanish).
func NewReportGenerator(lang language.Tag) *ReportGenerator {
	return &ReportGenerator{printer: message.NewPrinter(lang), now: time.Now}
}

// GenerateProjectReport genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) GenerateProjectReport(
	_ context.Context,
	project *entity.Project,
	client *entity.Client,
	payments []*entity.Payment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de proyecto "+project.Nombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(project))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(progressRow(project))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CHECKLIST"))
	m.AddRows(checklistRows(project.Checklists)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PAGOS"))
	m.AddRows(g.paymentRows(payments)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(payments))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReportGenerator) headerRow(p *entity.Project) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(p.Nombre, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Estado: "+p.Estado, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("CÓDIGO DE ACCESO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(p.Codigo, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Emitido: "+g.now().Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func clientRow(c *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(c.Nombre, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Rubro: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(c.Rubro, "—"),
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Telefono, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// progressRow: avance grande a la izquierda y QR con el código para entrar al portal.
func progressRow(p *entity.Project) core.Row {
	fecha := "sin definir"
	if p.FechaEstimada != nil {
		fecha = p.FechaEstimada.Format("02/01/2006")
	}
	done := 0
	for _, t := range p.Checklists {
		if t.Checked {
			done++
		}
	}
	return row.New(34).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("%d%%", p.Avance), props.Text{Style: fontstyle.Bold, Size: 28, Color: colorPrimary, Top: 2}),
			text.New(fmt.Sprintf("%d de %d tareas completadas", done, len(p.Checklists)), props.Text{Size: 9, Top: 16, Color: colorGray}),
			text.New("Fecha estimada de entrega: "+fecha, props.Text{Size: 9, Top: 22, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(p.Codigo, props.Rect{Percent: 90, Center: true})),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func checklistRows(tasks []entity.Task) []core.Row {
	if len(tasks) == 0 {
		return []core.Row{emptyRow("Sin tareas registradas.")}
	}
	rows := []core.Row{tableHeader([]headerCell{
		{"#", 1, align.Center}, {"Tarea", 6, align.Left}, {"Asignado", 3, align.Left}, {"Estado", 2, align.Center},
	})}
	for i, t := range tasks {
		estado, color := "Pendiente", colorGray
		if t.Checked {
			estado, color = "Hecha", colorDone
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(t.Nombre, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(t.Asignado, "—"), props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New(estado, props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
		))
	}
	return rows
}

func (g *ReportGenerator) paymentRows(payments []*entity.Payment) []core.Row {
	if len(payments) == 0 {
		return []core.Row{emptyRow("Sin pagos registrados.")}
	}
	rows := []core.Row{tableHeader([]headerCell{
		{"Fecha", 2, align.Left}, {"Método", 4, align.Left}, {"Estado", 3, align.Center}, {"Monto", 3, align.Right},
	})}
	for _, p := range payments {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(p.FechaPago.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(p.MetodoPago, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(p.Estado, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.Money(p.Monto), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow: suma por estado de pago.
func (g *ReportGenerator) totalsRow(payments []*entity.Payment) core.Row {
	totals := SumByEstado(payments)
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(label("Pagado:"), label("Pendiente:"), label("Vencido:")),
		col.New(3).Add(
			value(g.Money(totals[entity.PaymentPagado])),
			value(g.Money(totals[entity.PaymentPendiente])),
			value(g.Money(totals[entity.PaymentVencido])),
		),
	)
}

type headerCell struct {
	label string
	size  int
	align align.Type
}

func tableHeader(cells []headerCell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// SumByEstado suma los montos agrupados por estado del pago.
func SumByEstado(payments []*entity.Payment) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, p := range payments {
		out[p.Estado] = out[p.Estado].Add(p.Monto)
	}
	return out
}

// Money formatea un monto con dos decimales y los separadores del idioma configurado.
func (g *ReportGenerator) Money(d decimal.Decimal) string {
	return "$" + g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
