package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

func TestPurchaseLimit_RestoreAll_CopiaOriginLimit(t *testing.T) {
	limits := entity.PurchaseLimits{
		{Name: "FF100", Limit: 5, OriginLimit: 20},
		{Name: "FF520", Limit: 0, OriginLimit: 3},
	}

	limits.RestoreAll()

	assert.Equal(t, 20, limits[0].Limit)
	assert.Equal(t, 3, limits[1].Limit)
	assert.Equal(t, 20, limits[0].OriginLimit, "OriginLimit no debe cambiar")
}

func TestPurchaseLimit_Allows(t *testing.T) {
	l := entity.PurchaseLimit{Name: "FF100", Limit: 10, OriginLimit: 10}

	assert.True(t, l.Allows(10))
	assert.True(t, l.Allows(1))
	assert.False(t, l.Allows(11), "no se puede autorizar más del cupo restante")
	assert.False(t, l.Allows(0))
}

func TestPurchaseLimit_ConsumeNoBajaDeCero(t *testing.T) {
	l := entity.PurchaseLimit{Limit: 4, OriginLimit: 10}
	l.Consume(3)
	assert.Equal(t, 1, l.Limit)
	l.Consume(5)
	assert.Equal(t, 0, l.Limit)
}

func TestPurchaseLimits_FindPorCodigoONombre(t *testing.T) {
	limits := entity.PurchaseLimits{
		{Name: "Free Fire - 100 Diamantes", Limit: 5},
		{Name: "FF520", Limit: 7},
	}

	byName := limits.Find(&entity.Product{Code: "FF100", Name: "Free Fire - 100 Diamantes"})
	require.NotNil(t, byName)
	assert.Equal(t, 5, byName.Limit)

	byCode := limits.Find(&entity.Product{Code: "FF520", Name: "Free Fire - 520 Diamantes"})
	require.NotNil(t, byCode)
	assert.Equal(t, 7, byCode.Limit)

	assert.Nil(t, limits.Find(&entity.Product{Code: "X", Name: "Y"}))
}

func TestProduct_PriceFor(t *testing.T) {
	p := entity.Product{
		Price:       decimal.RequireFromString("1.20"),
		PriceOro:    decimal.RequireFromString("0.95"),
		PricePlata:  decimal.RequireFromString("1.05"),
		PriceBronce: decimal.Zero,
	}

	assert.True(t, p.PriceFor(entity.RangoOro).Equal(decimal.RequireFromString("0.95")))
	assert.True(t, p.PriceFor(entity.RangoPlata).Equal(decimal.RequireFromString("1.05")))
	assert.True(t, p.PriceFor(entity.RangoBronce).Equal(decimal.RequireFromString("1.20")),
		"precio de rango en cero cae al precio base")
	assert.True(t, p.PriceFor("").Equal(decimal.RequireFromString("1.20")))
}

func TestPin_MarkUsedSoloUnaVez(t *testing.T) {
	var p entity.Pin
	assert.True(t, p.MarkUsed(p.CreatedAt))
	assert.True(t, p.Usado)
	assert.False(t, p.MarkUsed(p.CreatedAt), "un pin canjeado no vuelve a cambiar")
}
