package entity

import "github.com/shopspring/decimal"

// PurchaseLimit cupo diario de un vendedor para un producto.
// Limit es el cupo restante; OriginLimit el cupo asignado, que Restore vuelve a copiar en Limit.
type PurchaseLimit struct {
	Name        string // nombre o código del producto
	Limit       int
	OriginLimit int
	Price       decimal.Decimal
}

// Allows indica si el cupo restante permite autorizar quantity unidades.
func (l *PurchaseLimit) Allows(quantity int) bool {
	return quantity > 0 && quantity <= l.Limit
}

// Consume descuenta n unidades del cupo restante sin bajar de cero.
func (l *PurchaseLimit) Consume(n int) {
	l.Limit -= n
	if l.Limit < 0 {
		l.Limit = 0
	}
}

// Restore reinicia el cupo restante al cupo asignado.
func (l *PurchaseLimit) Restore() {
	l.Limit = l.OriginLimit
}

// PurchaseLimits cupos de un vendedor, uno por producto.
type PurchaseLimits []PurchaseLimit

// RestoreAll reinicia todos los cupos.
func (ls PurchaseLimits) RestoreAll() {
	for i := range ls {
		ls[i].Restore()
	}
}

// Find busca el cupo de un producto por código o por nombre.
func (ls PurchaseLimits) Find(product *Product) *PurchaseLimit {
	for i := range ls {
		if ls[i].Name == product.Code || ls[i].Name == product.Name {
			return &ls[i]
		}
	}
	return nil
}
