package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	domainsales "github.com/jhoicas/pines-admin-api/internal/domain/sales"
)

const dateLayout = "2006-01-02"

// SalesSource puerto hacia GET /sales del backend.
type SalesSource interface {
	ListSales(ctx context.Context, token string) ([]entity.Sale, error)
}

// ReportRenderer genera un archivo (PDF, XLSX) a partir del reporte.
type ReportRenderer interface {
	Render(r *Report) ([]byte, error)
}

// ReportParams parámetros crudos del query string.
type ReportParams struct {
	Mode string
	Date string // YYYY-MM-DD; vacío = hoy
	From string
	To   string
}

// Report reporte listo para responder o exportar.
type Report struct {
	Query       domainsales.Query
	Buckets     []domainsales.Bucket
	Sales       []entity.Sale // ventas dentro de la ventana del modo
	TotalCount  int
	TotalUnits  int
	TotalAmount decimal.Decimal
	GeneratedAt time.Time
}

// Title título legible del reporte.
func (r *Report) Title() string {
	ref := r.Query.Ref
	switch r.Query.Mode {
	case domainsales.ModeDayOfWeek:
		start, _ := domainsales.Window(r.Query)
		return "Ventas de la semana del " + start.Format("02/01/2006")
	case domainsales.ModeWeekOfMonth:
		return fmt.Sprintf("Ventas por semana de %s %d", domainsales.MonthName(ref.Month()), ref.Year())
	case domainsales.ModeMonthOfYear:
		return fmt.Sprintf("Ventas por mes de %d", ref.Year())
	case domainsales.ModeCustomDay:
		return "Ventas del " + ref.Format("02/01/2006")
	case domainsales.ModeDateRange:
		return fmt.Sprintf("Ventas del %s al %s", r.Query.From.Format("02/01/2006"), r.Query.To.Format("02/01/2006"))
	}
	return "Ventas por producto"
}

// ReportUseCase arma reportes de ventas sobre los datos del backend.
type ReportUseCase struct {
	source SalesSource
	loc    *time.Location
	now    func() time.Time
}

// NewReportUseCase loc define los cortes de día (APP_TIMEZONE); nil = UTC.
func NewReportUseCase(source SalesSource, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{source: source, loc: loc, now: time.Now}
}

// ParseQuery valida los parámetros y construye la consulta de agregación.
func (uc *ReportUseCase) ParseQuery(p ReportParams) (domainsales.Query, error) {
	mode := domainsales.ModeDayOfWeek
	if strings.TrimSpace(p.Mode) != "" {
		m, err := domainsales.ParseMode(strings.TrimSpace(p.Mode))
		if err != nil {
			return domainsales.Query{}, err
		}
		mode = m
	}

	q := domainsales.Query{Mode: mode, Ref: uc.now().In(uc.loc)}
	if p.Date != "" {
		d, err := time.ParseInLocation(dateLayout, p.Date, uc.loc)
		if err != nil {
			return q, fmt.Errorf("%w: fecha inválida %q (use YYYY-MM-DD)", domain.ErrInvalidInput, p.Date)
		}
		q.Ref = d
	}

	if p.From != "" || p.To != "" {
		from, err := time.ParseInLocation(dateLayout, p.From, uc.loc)
		if err != nil {
			return q, fmt.Errorf("%w: fecha inicial inválida %q", domain.ErrInvalidInput, p.From)
		}
		to, err := time.ParseInLocation(dateLayout, p.To, uc.loc)
		if err != nil {
			return q, fmt.Errorf("%w: fecha final inválida %q", domain.ErrInvalidInput, p.To)
		}
		q.From, q.To = from, to
	}
	if mode == domainsales.ModeDateRange && (q.From.IsZero() || q.To.IsZero()) {
		return q, fmt.Errorf("%w: el modo date-range requiere from y to", domain.ErrInvalidInput)
	}
	return q, nil
}

// Build consulta las ventas del backend y las agrega.
func (uc *ReportUseCase) Build(ctx context.Context, token string, p ReportParams) (*Report, error) {
	q, err := uc.ParseQuery(p)
	if err != nil {
		return nil, err
	}
	list, err := uc.source.ListSales(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("consultar ventas: %w", err)
	}
	return uc.Aggregate(list, q)
}

// Aggregate arma el reporte sobre una lista ya cargada.
func (uc *ReportUseCase) Aggregate(list []entity.Sale, q domainsales.Query) (*Report, error) {
	buckets, err := domainsales.Aggregate(list, q)
	if err != nil {
		return nil, err
	}
	r := &Report{
		Query:       q,
		Buckets:     buckets,
		Sales:       domainsales.Filter(list, q),
		TotalAmount: decimal.Zero,
		GeneratedAt: uc.now().In(uc.loc),
	}
	for _, b := range buckets {
		r.TotalCount += b.Count
		r.TotalUnits += b.Units
		r.TotalAmount = r.TotalAmount.Add(b.Total)
	}
	return r, nil
}

// Export construye el reporte y lo pasa por el renderer.
func (uc *ReportUseCase) Export(ctx context.Context, token string, p ReportParams, renderer ReportRenderer) ([]byte, *Report, error) {
	r, err := uc.Build(ctx, token, p)
	if err != nil {
		return nil, nil, err
	}
	out, err := renderer.Render(r)
	if err != nil {
		return nil, nil, fmt.Errorf("generar reporte: %w", err)
	}
	return out, r, nil
}
