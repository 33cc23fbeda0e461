package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta.
const (
	SaleStatusCompleted = "completado"
)

// SalePin pin incluido en una venta.
type SalePin struct {
	Serial string
	Key    string
}

// UserSnapshot copia del comprador al momento de la venta.
type UserSnapshot struct {
	ID     string
	Handle string
	Name   string
	Email  string
	Role   string
	Rango  string
}

// Sale fila del libro de ventas. Se crea una vez por compra completada y no se modifica.
// Invariantes: len(Pins) == Quantity; TotalPrice = Price × Quantity redondeado a 2 decimales.
type Sale struct {
	ID                 string
	Quantity           int
	Product            string // código del producto
	ProductName        string
	Price              decimal.Decimal
	TotalPrice         decimal.Decimal
	TotalOriginalPrice decimal.Decimal
	Status             string
	OrderID            string
	User               UserSnapshot
	Pins               []SalePin
	CreatedAt          time.Time
}

// SnapshotOf construye la copia del comprador.
func SnapshotOf(u *User) UserSnapshot {
	return UserSnapshot{
		ID:     u.ID,
		Handle: u.Handle,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Rango:  u.Rango,
	}
}
