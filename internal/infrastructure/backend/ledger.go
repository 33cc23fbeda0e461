package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository          = (*Client)(nil)
	_ repository.TransactionRepository   = (*Client)(nil)
	_ repository.PurchaseLimitRepository = (*Client)(nil)
)

// ListSales GET /sales.
func (c *Client) ListSales(ctx context.Context, token string) ([]entity.Sale, error) {
	raw, err := c.list(ctx, "sales.list", token, "/sales")
	if err != nil {
		return nil, err
	}
	items, err := decodeList[saleJSON](raw)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Sale, 0, len(items))
	for _, s := range items {
		out = append(out, s.toEntity())
	}
	return out, nil
}

// CreateSale POST /sales. Solo HTTP 201 es éxito; cualquier otro código es error.
// Un 201 con cuerpo ilegible sigue siendo éxito: la venta existe aunque no conozcamos su ID.
func (c *Client) CreateSale(ctx context.Context, token string, sale *entity.Sale) error {
	var out saleJSON
	err := c.call(ctx, "sales.create", token, http.MethodPost, "/sales", saleFromEntity(sale), http.StatusCreated, &out)
	if errors.Is(err, errUnreadableBody) {
		c.log.Warn().Err(err).Str("order_id", sale.OrderID).Msg("venta creada sin cuerpo legible")
		return nil
	}
	if err != nil {
		return err
	}
	if out.ID != "" {
		sale.ID = out.ID
	}
	return nil
}

// ListTransactions GET /transactions.
func (c *Client) ListTransactions(ctx context.Context, token string) ([]entity.Transaction, error) {
	raw, err := c.list(ctx, "transactions.list", token, "/transactions")
	if err != nil {
		return nil, err
	}
	items, err := decodeList[transactionJSON](raw)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Transaction, 0, len(items))
	for _, t := range items {
		out = append(out, entity.Transaction{
			ID: t.ID, UserID: t.UserID, Type: t.Type, Amount: t.Amount,
			Description: t.Description, CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}

// GetPurchaseLimits GET /purchase-limits/{sellerId}. Un vendedor sin documento de cupos no tiene restricciones.
func (c *Client) GetPurchaseLimits(ctx context.Context, token, sellerID string) (entity.PurchaseLimits, error) {
	var out limitsDocJSON
	err := c.call(ctx, "limits.get", token, http.MethodGet, "/purchase-limits/"+url.PathEscape(sellerID), nil, http.StatusOK, &out)
	if err != nil {
		if isNotFound(err) {
			return entity.PurchaseLimits{}, nil
		}
		return nil, err
	}
	ls := make(entity.PurchaseLimits, 0, len(out.PurchaseLimit))
	for _, l := range out.PurchaseLimit {
		ls = append(ls, entity.PurchaseLimit{Name: l.Name, Limit: l.Limit, OriginLimit: l.OriginLimit, Price: l.Price})
	}
	return ls, nil
}

// UpdatePurchaseLimits PUT /purchase-limits/{sellerId} con la lista completa.
func (c *Client) UpdatePurchaseLimits(ctx context.Context, token, sellerID string, limits entity.PurchaseLimits) error {
	doc := limitsDocJSON{PurchaseLimit: make([]limitJSON, 0, len(limits))}
	for _, l := range limits {
		doc.PurchaseLimit = append(doc.PurchaseLimit, limitJSON{Name: l.Name, Limit: l.Limit, OriginLimit: l.OriginLimit, Price: l.Price})
	}
	return c.call(ctx, "limits.update", token, http.MethodPut, "/purchase-limits/"+url.PathEscape(sellerID), doc, http.StatusOK, nil)
}

// callAny para DELETE: el backend responde 200 con el documento o 204 vacío.
func (c *Client) callAny(ctx context.Context, op, token, method, path string) error {
	return c.call(ctx, op, token, method, path, nil, 0, nil)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
