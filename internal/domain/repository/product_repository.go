package repository

import (
	"context"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

// ProductRepository productos administrados en el backend REST.
type ProductRepository interface {
	ListProducts(ctx context.Context, token string) ([]entity.Product, error)
	CreateProduct(ctx context.Context, token string, p *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, token, code string, p *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, token, code string) error
}
