package pins

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// InventoryUseCase consulta y marca los pines del diario local.
type InventoryUseCase struct {
	repo repository.PinRepository
	now  func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.PinRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, now: time.Now}
}

// List pines del usuario. Admin y master pueden ver los de cualquier dueño.
func (uc *InventoryUseCase) List(ctx context.Context, caller entity.User, f repository.PinFilter) ([]*entity.Pin, error) {
	if !isStaff(caller) || f.OwnerID == "" {
		f.OwnerID = caller.ID
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.repo.List(ctx, f)
}

// MarkUsed pasa el pin a usado. Solo existe la transición false → true; repetirla no es error.
func (uc *InventoryUseCase) MarkUsed(ctx context.Context, caller entity.User, id string) (*entity.Pin, error) {
	pin, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, fmt.Errorf("%w: pin %s", domain.ErrNotFound, id)
	}
	if pin.OwnerID != caller.ID && !isStaff(caller) {
		return nil, domain.ErrForbidden
	}
	now := uc.now().UTC()
	if !pin.MarkUsed(now) {
		return pin, nil
	}
	if _, err := uc.repo.MarkUsed(ctx, id, now); err != nil {
		return nil, err
	}
	return pin, nil
}

func isStaff(u entity.User) bool {
	return u.Role == entity.RoleAdmin || u.Role == entity.RoleMaster
}
