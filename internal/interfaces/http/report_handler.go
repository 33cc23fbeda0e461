package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/application/sales"
)

// FileRenderer renderer de reportes descargables.
type FileRenderer interface {
	sales.ReportRenderer
	ContentType() string
	Extension() string
}

// ReportHandler reportes de ventas en JSON, PDF o XLSX.
type ReportHandler struct {
	uc        *sales.ReportUseCase
	renderers map[string]FileRenderer
}

// NewReportHandler renderers indexados por su extensión (pdf, xlsx).
func NewReportHandler(uc *sales.ReportUseCase, renderers ...FileRenderer) *ReportHandler {
	h := &ReportHandler{uc: uc, renderers: make(map[string]FileRenderer, len(renderers))}
	for _, r := range renderers {
		h.renderers[r.Extension()] = r
	}
	return h
}

func reportParams(c *fiber.Ctx) sales.ReportParams {
	return sales.ReportParams{
		Mode: c.Query("mode", "day-of-week"),
		Date: c.Query("date"),
		From: c.Query("from"),
		To:   c.Query("to"),
	}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Modos: day-of-week, week-of-month, month-of-year, custom-day, date-range, by-product.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "modo"  default(day-of-week)
// @Param        date  query  string  false  "fecha de referencia YYYY-MM-DD"
// @Param        from  query  string  false  "inicio (date-range)"
// @Param        to    query  string  false  "fin (date-range)"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	r, err := h.uc.Build(c.UserContext(), GetSession(c).BackendToken, reportParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toReportResponse(r))
}

// Export godoc
// @Summary      Exportar reporte de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  path   string  true   "pdf | xlsx"
// @Param        mode    query  string  false  "modo"  default(day-of-week)
// @Param        date    query  string  false  "fecha de referencia YYYY-MM-DD"
// @Param        from    query  string  false  "inicio (date-range)"
// @Param        to      query  string  false  "fin (date-range)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/{format} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	format := strings.ToLower(c.Params("format"))
	renderer, ok := h.renderers[format]
	if !ok {
		return validation(c, "formato no soportado: "+format)
	}
	p := reportParams(c)
	out, r, err := h.uc.Export(c.UserContext(), GetSession(c).BackendToken, p, renderer)
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("ventas_%s_%s.%s", r.Query.Mode, r.Query.Ref.Format(queryDateLayout), renderer.Extension())
	c.Set(fiber.HeaderContentType, renderer.ContentType())
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

func toReportResponse(r *sales.Report) dto.SalesReportResponse {
	out := dto.SalesReportResponse{
		Title:       r.Title(),
		Mode:        string(r.Query.Mode),
		Date:        r.Query.Ref.Format(queryDateLayout),
		Buckets:     make([]dto.ReportBucketDTO, 0, len(r.Buckets)),
		TotalCount:  r.TotalCount,
		TotalUnits:  r.TotalUnits,
		TotalAmount: r.TotalAmount,
	}
	if !r.Query.From.IsZero() {
		out.From = r.Query.From.Format(queryDateLayout)
		out.To = r.Query.To.Format(queryDateLayout)
	}
	for _, b := range r.Buckets {
		out.Buckets = append(out.Buckets, dto.ReportBucketDTO{Label: b.Label, Count: b.Count, Units: b.Units, Total: b.Total})
	}
	return out
}
