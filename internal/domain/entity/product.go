package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo del proveedor de pines (ej. "Free Fire - 100 Diamantes").
// Price es el precio base; PriceOro/PricePlata/PriceBronce son los precios por rango.
type Product struct {
	Code         string
	Name         string
	Price        decimal.Decimal
	PriceOro     decimal.Decimal
	PricePlata   decimal.Decimal
	PriceBronce  decimal.Decimal
	Available    bool
	ProductGroup string
}

// PriceFor devuelve el precio que corresponde al rango del comprador.
// Un precio de rango en cero o negativo se considera no definido y cae al precio base.
func (p *Product) PriceFor(rango string) decimal.Decimal {
	var tier decimal.Decimal
	switch rango {
	case RangoOro:
		tier = p.PriceOro
	case RangoPlata:
		tier = p.PricePlata
	case RangoBronce:
		tier = p.PriceBronce
	default:
		return p.Price
	}
	if !tier.IsPositive() {
		return p.Price
	}
	return tier
}
