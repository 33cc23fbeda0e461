package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del backend con sus precios por rango.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List productos ordenados por grupo y nombre.
func (uc *ProductUseCase) List(ctx context.Context, token string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListProducts(ctx, token)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].ProductGroup != list[j].ProductGroup {
			return list[i].ProductGroup < list[j].ProductGroup
		}
		return list[i].Name < list[j].Name
	})
	return ToProductList(list), nil
}

// Create da de alta un producto.
func (uc *ProductUseCase) Create(ctx context.Context, token string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	created, err := uc.repo.CreateProduct(ctx, token, p)
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(created)
	return &out, nil
}

// Update reemplaza los datos de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, token, code string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" {
		in.Code = code
	}
	p, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	updated, err := uc.repo.UpdateProduct(ctx, token, code, p)
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(updated)
	return &out, nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, token, code string) error {
	return uc.repo.DeleteProduct(ctx, token, code)
}

func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: el precio base debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.PriceOro.IsNegative() || in.PricePlata.IsNegative() || in.PriceBronce.IsNegative() {
		return nil, fmt.Errorf("%w: los precios por rango no pueden ser negativos", domain.ErrInvalidInput)
	}
	return &entity.Product{
		Code:         in.Code,
		Name:         in.Name,
		Price:        in.Price,
		PriceOro:     in.PriceOro,
		PricePlata:   in.PricePlata,
		PriceBronce:  in.PriceBronce,
		Available:    in.Available,
		ProductGroup: in.ProductGroup,
	}, nil
}
