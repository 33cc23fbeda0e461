package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchasePinsRequest entrada de POST /api/pins/purchase.
type PurchasePinsRequest struct {
	Product     string `json:"product" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1,max=100"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email" validate:"omitempty,email"`
}

// PinResponse pin del diario local.
type PinResponse struct {
	ID          string     `json:"id"`
	PurchaseID  string     `json:"purchase_id,omitempty"`
	ProductCode string     `json:"product_code"`
	ProductName string     `json:"product_name"`
	Serial      string     `json:"serial"`
	Key         string     `json:"key"`
	Usado       bool       `json:"usado"`
	CreatedAt   time.Time  `json:"created_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

// PurchasePinsResponse resultado de la compra. Con pines parciales o venta no registrada
// se responde 207 y Warnings explica qué pasó; los pines siempre vienen completos.
type PurchasePinsResponse struct {
	PurchaseID   string          `json:"purchase_id,omitempty"`
	OrderID      string          `json:"order_id"`
	Product      string          `json:"product"`
	Requested    int             `json:"requested"`
	Issued       int             `json:"issued"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	SaleRecorded bool            `json:"sale_recorded"`
	Pins         []PinResponse   `json:"pins"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// PinListResponse pines del usuario.
type PinListResponse struct {
	Items []PinResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
