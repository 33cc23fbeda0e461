// Package pdf genera el reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Generado el ...             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Grupo | Ventas | Pines | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Fecha | Usuario | Producto | Cant | Total          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: ventas / pines / monto                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/pines-admin-api/internal/application/sales"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	domainsales "github.com/jhoicas/pines-admin-api/internal/domain/sales"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.ReportRenderer = (*SalesReportPDF)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// SalesReportPDF implementa sales.ReportRenderer usando Maroto v2.
type SalesReportPDF struct {
	author  string
	printer *message.Printer
}

// NewSalesReportPDF author va en los metadatos del documento.
func NewSalesReportPDF(author string) *SalesReportPDF {
	return &SalesReportPDF{author: author, printer: message.NewPrinter(language.Spanish)}
}

// ContentType tipo MIME del archivo generado.
func (g *SalesReportPDF) ContentType() string { return "application/pdf" }

// Extension extensión del archivo generado.
func (g *SalesReportPDF) Extension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *SalesReportPDF) Render(r *sales.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title(), true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("RESUMEN"))
	m.AddRows(g.summaryHeaderRow(r.Query.Mode))
	m.AddRows(g.summaryRows(r.Buckets)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("DETALLE DE VENTAS"))
	m.AddRows(detailHeaderRow())
	m.AddRows(g.detailRows(r)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *SalesReportPDF) headerRow(r *sales.Report) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(r.Title(), props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Generado el "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func (g *SalesReportPDF) summaryHeaderRow(mode domainsales.Mode) core.Row {
	group := "Periodo"
	if mode == domainsales.ModeByProduct {
		group = "Producto"
	}
	return row.New(6).Add(
		headerCol(group, 6, align.Left),
		headerCol("Ventas", 2, align.Center),
		headerCol("Pines", 2, align.Center),
		headerCol("Total", 2, align.Right),
	)
}

func (g *SalesReportPDF) summaryRows(buckets []domainsales.Bucket) []core.Row {
	out := make([]core.Row, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, row.New(5).Add(
			col.New(6).Add(text.New(b.Label, props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(b.Count), props.Text{Size: 8, Align: align.Center})),
			col.New(2).Add(text.New(strconv.Itoa(b.Units), props.Text{Size: 8, Align: align.Center})),
			col.New(2).Add(text.New(g.money(b.Total), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return out
}

func detailHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Fecha", 2, align.Left),
		headerCol("Usuario", 3, align.Left),
		headerCol("Producto", 4, align.Left),
		headerCol("Cant.", 1, align.Center),
		headerCol("Total", 2, align.Right),
	)
}

func (g *SalesReportPDF) detailRows(r *sales.Report) []core.Row {
	if len(r.Sales) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin ventas en el periodo.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	loc := r.Query.Ref.Location()
	out := make([]core.Row, 0, len(r.Sales))
	for i := range r.Sales {
		s := &r.Sales[i]
		out = append(out, row.New(5).Add(
			col.New(2).Add(text.New(s.CreatedAt.In(loc).Format("02/01 15:04"), props.Text{Size: 7, Left: 1})),
			col.New(3).Add(text.New(buyerName(s), props.Text{Size: 7, Left: 1})),
			col.New(4).Add(text.New(domainsales.ProductLabel(s.ProductName), props.Text{Size: 7, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(s.Quantity), props.Text{Size: 7, Align: align.Center})),
			col.New(2).Add(text.New(g.money(s.TotalPrice), props.Text{Size: 7, Align: align.Right, Right: 1})),
		))
	}
	return out
}

func (g *SalesReportPDF) totalsRow(r *sales.Report) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Ventas:", 0),
			label("Pines:", 5),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(r.TotalCount), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(strconv.Itoa(r.TotalUnits), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(g.money(r.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores en español: 12345.5 -> "$12.345,50".
func (g *SalesReportPDF) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func buyerName(s *entity.Sale) string {
	if s.User.Handle != "" {
		return s.User.Handle
	}
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.ID
}
