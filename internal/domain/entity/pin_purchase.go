package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PinPurchase registro local de una compra de pines al proveedor (diario de emisión).
// Se guarda antes de registrar la venta en el backend para no perder pines emitidos.
type PinPurchase struct {
	ID           string
	OrderID      string
	UserID       string
	ProductCode  string
	ProductName  string
	Requested    int
	Issued       int
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	SaleRecorded bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
