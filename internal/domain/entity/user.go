package entity

import "github.com/shopspring/decimal"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleCliente  = "cliente"
	RoleMaster   = "master"
)

// Rangos de precio del comprador.
const (
	RangoOro    = "oro"
	RangoPlata  = "plata"
	RangoBronce = "bronce"
)

// User usuario del backend. Saldo lo modifica únicamente el backend; aquí solo se lee.
type User struct {
	ID     string
	Handle string
	Name   string
	Email  string
	Role   string // admin, vendedor, cliente, master
	Saldo  decimal.Decimal
	Rango  string // oro, plata, bronce o vacío
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVendedor, RoleCliente, RoleMaster:
		return true
	}
	return false
}

// PaysWithBalance indica si las compras del usuario se descuentan de su saldo.
func (u *User) PaysWithBalance() bool {
	return u.Role == RoleVendedor || u.Role == RoleCliente
}
