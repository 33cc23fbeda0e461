package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

// PinFilter filtros para listar pines del diario.
type PinFilter struct {
	OwnerID string
	Usado   *bool
	Limit   int
	Offset  int
}

// PinRepository puerto de persistencia del diario de pines emitidos.
type PinRepository interface {
	CreatePurchase(ctx context.Context, p *entity.PinPurchase) error
	CreatePins(ctx context.Context, pins []*entity.Pin) error
	MarkSaleRecorded(ctx context.Context, purchaseID string) error
	GetByID(ctx context.Context, id string) (*entity.Pin, error)
	List(ctx context.Context, f PinFilter) ([]*entity.Pin, error)
	// MarkUsed pone usado = true. Devuelve false si el pin ya estaba usado.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error)
}
