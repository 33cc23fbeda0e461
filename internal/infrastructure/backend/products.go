package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*Client)(nil)

// ListProducts GET /products.
func (c *Client) ListProducts(ctx context.Context, token string) ([]entity.Product, error) {
	raw, err := c.list(ctx, "products.list", token, "/products")
	if err != nil {
		return nil, err
	}
	items, err := decodeList[productJSON](raw)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(items))
	for _, p := range items {
		out = append(out, p.toEntity())
	}
	return out, nil
}

// CreateProduct POST /products.
func (c *Client) CreateProduct(ctx context.Context, token string, p *entity.Product) (*entity.Product, error) {
	var out productJSON
	if err := c.call(ctx, "products.create", token, http.MethodPost, "/products", productFromEntity(p), http.StatusCreated, &out); err != nil {
		return nil, err
	}
	created := out.toEntity()
	return &created, nil
}

// UpdateProduct PUT /products/{code}.
func (c *Client) UpdateProduct(ctx context.Context, token, code string, p *entity.Product) (*entity.Product, error) {
	var out productJSON
	if err := c.call(ctx, "products.update", token, http.MethodPut, "/products/"+url.PathEscape(code), productFromEntity(p), http.StatusOK, &out); err != nil {
		return nil, err
	}
	updated := out.toEntity()
	return &updated, nil
}

// DeleteProduct DELETE /products/{code}.
func (c *Client) DeleteProduct(ctx context.Context, token, code string) error {
	return c.callAny(ctx, "products.delete", token, http.MethodDelete, "/products/"+url.PathEscape(code))
}
