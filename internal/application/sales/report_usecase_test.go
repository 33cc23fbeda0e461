package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	domainsales "github.com/jhoicas/pines-admin-api/internal/domain/sales"
)

type fakeSource struct {
	list []entity.Sale
	err  error
}

func (s *fakeSource) ListSales(context.Context, string) ([]entity.Sale, error) {
	return s.list, s.err
}

type fakeRenderer struct{ got *Report }

func (r *fakeRenderer) Render(rep *Report) ([]byte, error) {
	r.got = rep
	return []byte("ok"), nil
}

var bogota = time.FixedZone("COT", -5*3600)

func newTestReportUseCase(src SalesSource) *ReportUseCase {
	uc := NewReportUseCase(src, bogota)
	uc.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, bogota) }
	return uc
}

func sale(name string, qty int, total string, at time.Time) entity.Sale {
	return entity.Sale{ProductName: name, Quantity: qty, TotalPrice: decimal.RequireFromString(total), CreatedAt: at}
}

func TestParseQuery_ModosYFechas(t *testing.T) {
	uc := newTestReportUseCase(&fakeSource{})

	q, err := uc.ParseQuery(ReportParams{})
	require.NoError(t, err)
	assert.Equal(t, domainsales.ModeDayOfWeek, q.Mode)
	assert.Equal(t, 16, q.Ref.Day())

	q, err = uc.ParseQuery(ReportParams{Mode: "custom-day", Date: "2026-02-03"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, bogota), q.Ref)

	_, err = uc.ParseQuery(ReportParams{Mode: "yearly"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ParseQuery(ReportParams{Mode: "date-range"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ParseQuery(ReportParams{Date: "16/10/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	q, err = uc.ParseQuery(ReportParams{Mode: "date-range", From: "2026-10-01", To: "2026-10-05"})
	require.NoError(t, err)
	assert.Equal(t, 1, q.From.Day())
	assert.Equal(t, 5, q.To.Day())
}

func TestBuild_TotalesYFiltro(t *testing.T) {
	src := &fakeSource{list: []entity.Sale{
		sale("Free Fire - 100 Diamantes", 2, "2.00", time.Date(2026, 10, 16, 9, 0, 0, 0, bogota)),
		sale("Free Fire - 100 Diamantes", 1, "1.00", time.Date(2026, 10, 16, 10, 30, 0, 0, bogota)),
		sale("Free Fire - 520 Diamantes", 1, "5.00", time.Date(2026, 10, 15, 10, 0, 0, 0, bogota)),
	}}
	uc := newTestReportUseCase(src)

	r, err := uc.Build(context.Background(), "tok", ReportParams{Mode: "custom-day", Date: "2026-10-16"})
	require.NoError(t, err)
	require.Len(t, r.Buckets, 24)
	assert.Equal(t, 1, r.Buckets[9].Count)
	assert.Equal(t, 1, r.Buckets[10].Count)
	assert.Equal(t, 2, r.TotalCount)
	assert.Equal(t, 3, r.TotalUnits)
	assert.Equal(t, "3.00", r.TotalAmount.StringFixed(2))
	assert.Len(t, r.Sales, 2)
	assert.Equal(t, "Ventas del 16/10/2026", r.Title())

	r, err = uc.Build(context.Background(), "tok", ReportParams{Mode: "by-product"})
	require.NoError(t, err)
	require.Len(t, r.Buckets, 2)
	assert.Equal(t, "100 Diamantes", r.Buckets[0].Label)
	assert.Equal(t, 3, r.Buckets[0].Units)
	assert.Len(t, r.Sales, 3)
}

func TestBuild_ErrorDeOrigen(t *testing.T) {
	uc := newTestReportUseCase(&fakeSource{err: domain.ErrSessionExpired})
	_, err := uc.Build(context.Background(), "tok", ReportParams{})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestExport_FormatoYNombre(t *testing.T) {
	uc := newTestReportUseCase(&fakeSource{})
	rr := &fakeRenderer{}

	out, rep, err := uc.Export(context.Background(), "tok", ReportParams{Mode: "month-of-year"}, rr)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), out)
	assert.Same(t, rep, rr.got)
	assert.Len(t, rep.Buckets, 12)
	assert.Equal(t, "Ventas por mes de 2026", rep.Title())

	_, _, err = uc.Export(context.Background(), "tok", ReportParams{Mode: "x"}, rr)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
