package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/application/sales"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	domainsales "github.com/jhoicas/pines-admin-api/internal/domain/sales"
)

func sampleReport(withSales bool) *sales.Report {
	ref := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	r := &sales.Report{
		Query: domainsales.Query{Mode: domainsales.ModeByProduct, Ref: ref},
		Buckets: []domainsales.Bucket{
			{Label: "100 Diamantes", Count: 2, Units: 5, Total: decimal.RequireFromString("5.50")},
		},
		TotalCount:  2,
		TotalUnits:  5,
		TotalAmount: decimal.RequireFromString("5.50"),
		GeneratedAt: ref,
	}
	if withSales {
		r.Sales = []entity.Sale{
			{Quantity: 3, ProductName: "Free Fire - 100 Diamantes", TotalPrice: decimal.RequireFromString("3.30"), User: entity.UserSnapshot{Handle: "ana"}, CreatedAt: ref},
			{Quantity: 2, ProductName: "Free Fire - 100 Diamantes", TotalPrice: decimal.RequireFromString("2.20"), User: entity.UserSnapshot{ID: "u2"}, CreatedAt: ref},
		}
	}
	return r
}

func TestRender_GeneraPDF(t *testing.T) {
	g := NewSalesReportPDF("pines-admin")
	for _, withSales := range []bool{true, false} {
		out, err := g.Render(sampleReport(withSales))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	}
}

func TestMoney_SeparadoresEnEspanol(t *testing.T) {
	g := NewSalesReportPDF("")
	assert.Equal(t, "$12.345,50", g.money(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "$0,96", g.money(decimal.RequireFromString("0.955")))
}

func TestBuyerName_Preferencias(t *testing.T) {
	assert.Equal(t, "ana", buyerName(&entity.Sale{User: entity.UserSnapshot{Handle: "ana", ID: "u1"}}))
	assert.Equal(t, "Ana", buyerName(&entity.Sale{User: entity.UserSnapshot{Name: "Ana", ID: "u1"}}))
	assert.Equal(t, "u1", buyerName(&entity.Sale{User: entity.UserSnapshot{ID: "u1"}}))
}
