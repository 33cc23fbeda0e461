package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

var _ repository.PinRepository = (*PinRepo)(nil)

// PinRepo diario de compras y pines emitidos sobre PostgreSQL (usable con pool o tx).
type PinRepo struct {
	q Querier
}

// NewPinRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPinRepository(q Querier) *PinRepo {
	return &PinRepo{q: q}
}

// CreatePurchase inserta la cabecera de la compra.
func (r *PinRepo) CreatePurchase(ctx context.Context, p *entity.PinPurchase) error {
	query := `
		INSERT INTO pin_purchases (id, order_id, user_id, product_code, product_name, requested, issued, unit_price, total_price, sale_recorded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrderID, p.UserID, p.ProductCode, p.ProductName, p.Requested, p.Issued,
		p.UnitPrice, p.TotalPrice, p.SaleRecorded, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: compra %s ya registrada", domain.ErrConflict, p.OrderID)
		}
		return fmt.Errorf("insert pin purchase: %w", err)
	}
	return nil
}

// CreatePins inserta los pines en una sola sentencia por lote.
func (r *PinRepo) CreatePins(ctx context.Context, pins []*entity.Pin) error {
	if len(pins) == 0 {
		return nil
	}
	const cols = 9
	var sb strings.Builder
	sb.WriteString(`INSERT INTO issued_pins (id, purchase_id, owner_id, product_code, product_name, serial, pin_key, usado, created_at) VALUES `)
	args := make([]any, 0, len(pins)*cols)
	for i, p := range pins {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholders(i*cols+1, cols))
		args = append(args, p.ID, p.PurchaseID, p.OwnerID, p.ProductCode, p.ProductName, p.Serial, p.Key, p.Usado, p.CreatedAt)
	}
	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pin duplicado", domain.ErrConflict)
		}
		return fmt.Errorf("insert issued pins: %w", err)
	}
	return nil
}

// MarkSaleRecorded marca la compra como registrada en el backend.
func (r *PinRepo) MarkSaleRecorded(ctx context.Context, purchaseID string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE pin_purchases SET sale_recorded = true, updated_at = now() WHERE id = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("mark sale recorded: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const pinColumns = `id, purchase_id, owner_id, product_code, product_name, serial, pin_key, usado, created_at, used_at`

// GetByID devuelve nil, nil si el pin no existe.
func (r *PinRepo) GetByID(ctx context.Context, id string) (*entity.Pin, error) {
	row := r.q.QueryRow(ctx, `SELECT `+pinColumns+` FROM issued_pins WHERE id = $1`, id)
	p, err := scanPin(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pin: %w", err)
	}
	return p, nil
}

// List pines del dueño, más recientes primero.
func (r *PinRepo) List(ctx context.Context, f repository.PinFilter) ([]*entity.Pin, error) {
	query := `SELECT ` + pinColumns + ` FROM issued_pins WHERE owner_id = $1`
	args := []any{f.OwnerID}
	if f.Usado != nil {
		args = append(args, *f.Usado)
		query += fmt.Sprintf(" AND usado = $%d", len(args))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pins: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pin
	for rows.Next() {
		p, err := scanPin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pin: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkUsed pasa usado a true. La condición usado = false hace la operación idempotente.
func (r *PinRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE issued_pins SET usado = true, used_at = $2 WHERE id = $1 AND usado = false`, id, usedAt)
	if err != nil {
		return false, fmt.Errorf("mark pin used: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return true, nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM issued_pins WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pin: %w", err)
	}
	if !exists {
		return false, domain.ErrNotFound
	}
	return false, nil
}

func scanPin(row pgx.Row) (*entity.Pin, error) {
	var p entity.Pin
	err := row.Scan(&p.ID, &p.PurchaseID, &p.OwnerID, &p.ProductCode, &p.ProductName,
		&p.Serial, &p.Key, &p.Usado, &p.CreatedAt, &p.UsedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
