package repository

import (
	"context"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

// SaleRepository libro de ventas del backend. Create solo tiene éxito con HTTP 201.
type SaleRepository interface {
	ListSales(ctx context.Context, token string) ([]entity.Sale, error)
	CreateSale(ctx context.Context, token string, sale *entity.Sale) error
}

// TransactionRepository movimientos de saldo del backend.
type TransactionRepository interface {
	ListTransactions(ctx context.Context, token string) ([]entity.Transaction, error)
}

// PurchaseLimitRepository cupos de compra por vendedor.
type PurchaseLimitRepository interface {
	GetPurchaseLimits(ctx context.Context, token, sellerID string) (entity.PurchaseLimits, error)
	UpdatePurchaseLimits(ctx context.Context, token, sellerID string, limits entity.PurchaseLimits) error
}
