package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleResponse venta del libro del backend.
type SaleResponse struct {
	ID                 string          `json:"id"`
	OrderID            string          `json:"order_id"`
	Product            string          `json:"product"`
	ProductName        string          `json:"product_name"`
	Label              string          `json:"label"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	TotalOriginalPrice decimal.Decimal `json:"total_original_price"`
	Status             string          `json:"status"`
	UserID             string          `json:"user_id"`
	UserHandle         string          `json:"user_handle"`
	CreatedAt          time.Time       `json:"created_at"`
}

// SaleListResponse ventas filtradas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// TransactionResponse movimiento de saldo.
type TransactionResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionListResponse movimientos filtrados.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReportBucketDTO fila agregada del reporte.
type ReportBucketDTO struct {
	Label string          `json:"label"`
	Count int             `json:"count"`
	Units int             `json:"units"`
	Total decimal.Decimal `json:"total"`
}

// SalesReportResponse respuesta de GET /api/reports/sales.
type SalesReportResponse struct {
	Title       string            `json:"title"`
	Mode        string            `json:"mode"`
	Date        string            `json:"date"`
	From        string            `json:"from,omitempty"`
	To          string            `json:"to,omitempty"`
	Buckets     []ReportBucketDTO `json:"buckets"`
	TotalCount  int               `json:"total_count"`
	TotalUnits  int               `json:"total_units"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}
