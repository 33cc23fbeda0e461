// Package excel exporta el reporte de ventas a XLSX: hoja "Resumen" con los grupos y hoja "Ventas" con el detalle.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/sales"
	domainsales "github.com/jhoicas/pines-admin-api/internal/domain/sales"
)

const (
	sheetSummary = "Resumen"
	sheetSales   = "Ventas"
	numFmtMoney  = 4 // #,##0.00
)

var _ sales.ReportRenderer = (*SalesReportXLSX)(nil)

// SalesReportXLSX implementa sales.ReportRenderer con excelize.
type SalesReportXLSX struct{}

// NewSalesReportXLSX construye el renderer.
func NewSalesReportXLSX() *SalesReportXLSX { return &SalesReportXLSX{} }

// ContentType tipo MIME del archivo generado.
func (x *SalesReportXLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension extensión del archivo generado.
func (x *SalesReportXLSX) Extension() string { return "xlsx" }

// Render genera el libro y devuelve sus bytes.
func (x *SalesReportXLSX) Render(r *sales.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if _, err := f.NewSheet(sheetSales); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeSummary(f, st, r); err != nil {
		return nil, err
	}
	if err := writeSales(f, st, r); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	title, header, money, moneyBold int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "00467F"}}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if st.money, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if st.moneyBold, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney, Font: &excelize.Font{Bold: true}}); err != nil {
		return st, fmt.Errorf("xlsx: estilo: %w", err)
	}
	return st, nil
}

// setRow escribe values desde la columna A de la fila row.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRange(f *excelize.File, sheet string, fromCol, toCol, row, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func writeSummary(f *excelize.File, st styles, r *sales.Report) error {
	group := "Periodo"
	if r.Query.Mode == domainsales.ModeByProduct {
		group = "Producto"
	}
	if err := f.SetCellValue(sheetSummary, "A1", r.Title()); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "A1", st.title); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	if err := f.SetCellValue(sheetSummary, "A2", "Generado el "+r.GeneratedAt.Format("02/01/2006 15:04")); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}

	row := 4
	if err := setRow(f, sheetSummary, row, group, "Ventas", "Pines", "Total"); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	if err := styleRange(f, sheetSummary, 1, 4, row, st.header); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	for _, b := range r.Buckets {
		row++
		if err := setRow(f, sheetSummary, row, b.Label, b.Count, b.Units, b.Total.InexactFloat64()); err != nil {
			return fmt.Errorf("xlsx: resumen: %w", err)
		}
		if err := styleRange(f, sheetSummary, 4, 4, row, st.money); err != nil {
			return fmt.Errorf("xlsx: resumen: %w", err)
		}
	}
	row++
	if err := setRow(f, sheetSummary, row, "TOTAL", r.TotalCount, r.TotalUnits, r.TotalAmount.InexactFloat64()); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	if err := styleRange(f, sheetSummary, 1, 4, row, st.moneyBold); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	return f.SetColWidth(sheetSummary, "A", "A", 28)
}

func writeSales(f *excelize.File, st styles, r *sales.Report) error {
	if err := setRow(f, sheetSales, 1, "Fecha", "Usuario", "Producto", "Cantidad", "Precio", "Total", "Orden"); err != nil {
		return fmt.Errorf("xlsx: ventas: %w", err)
	}
	if err := styleRange(f, sheetSales, 1, 7, 1, st.header); err != nil {
		return fmt.Errorf("xlsx: ventas: %w", err)
	}
	loc := r.Query.Ref.Location()
	for i := range r.Sales {
		s := &r.Sales[i]
		row := i + 2
		user := s.User.Handle
		if user == "" {
			user = s.User.ID
		}
		if err := setRow(f, sheetSales, row,
			s.CreatedAt.In(loc).Format("2006-01-02 15:04"), user, domainsales.ProductLabel(s.ProductName),
			s.Quantity, s.Price.InexactFloat64(), s.TotalPrice.InexactFloat64(), s.OrderID,
		); err != nil {
			return fmt.Errorf("xlsx: ventas: %w", err)
		}
		if err := styleRange(f, sheetSales, 5, 6, row, st.money); err != nil {
			return fmt.Errorf("xlsx: ventas: %w", err)
		}
	}
	if err := f.SetColWidth(sheetSales, "A", "C", 22); err != nil {
		return fmt.Errorf("xlsx: ventas: %w", err)
	}
	return f.SetColWidth(sheetSales, "G", "G", 40)
}
