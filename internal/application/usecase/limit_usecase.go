package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

// LimitUseCase cupos de compra de los vendedores.
type LimitUseCase struct {
	repo repository.PurchaseLimitRepository
}

// NewLimitUseCase construye el caso de uso.
func NewLimitUseCase(repo repository.PurchaseLimitRepository) *LimitUseCase {
	return &LimitUseCase{repo: repo}
}

// Get cupos del vendedor.
func (uc *LimitUseCase) Get(ctx context.Context, token, sellerID string) (*dto.PurchaseLimitsResponse, error) {
	ls, err := uc.repo.GetPurchaseLimits(ctx, token, sellerID)
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseLimitsResponse{SellerID: sellerID, Items: toLimitDTOs(ls)}, nil
}

// Update reemplaza los cupos del vendedor.
func (uc *LimitUseCase) Update(ctx context.Context, token, sellerID string, in dto.UpdatePurchaseLimitsRequest) (*dto.PurchaseLimitsResponse, error) {
	ls := make(entity.PurchaseLimits, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if it.Name == "" {
			return nil, fmt.Errorf("%w: cada cupo necesita el nombre del producto", domain.ErrInvalidInput)
		}
		if seen[it.Name] {
			return nil, fmt.Errorf("%w: cupo duplicado para %q", domain.ErrInvalidInput, it.Name)
		}
		seen[it.Name] = true
		if it.Limit < 0 || it.OriginLimit < 0 {
			return nil, fmt.Errorf("%w: los cupos no pueden ser negativos", domain.ErrInvalidInput)
		}
		ls = append(ls, entity.PurchaseLimit{Name: it.Name, Limit: it.Limit, OriginLimit: it.OriginLimit, Price: it.Price})
	}
	if err := uc.repo.UpdatePurchaseLimits(ctx, token, sellerID, ls); err != nil {
		return nil, err
	}
	return &dto.PurchaseLimitsResponse{SellerID: sellerID, Items: toLimitDTOs(ls)}, nil
}

// Restore copia originLimit en limit para todos los productos del vendedor.
func (uc *LimitUseCase) Restore(ctx context.Context, token, sellerID string) (*dto.PurchaseLimitsResponse, error) {
	ls, err := uc.repo.GetPurchaseLimits(ctx, token, sellerID)
	if err != nil {
		return nil, err
	}
	ls.RestoreAll()
	if err := uc.repo.UpdatePurchaseLimits(ctx, token, sellerID, ls); err != nil {
		return nil, err
	}
	return &dto.PurchaseLimitsResponse{SellerID: sellerID, Items: toLimitDTOs(ls)}, nil
}
