package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operaciones de ajuste de saldo.
const (
	BalanceAdd      = "add"
	BalanceSubtract = "subtract"
)

// Transaction movimiento de saldo registrado por el backend.
type Transaction struct {
	ID          string
	UserID      string
	Type        string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
