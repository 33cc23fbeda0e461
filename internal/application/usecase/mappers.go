package usecase

import (
	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/sales"
)

// ToUserResponse convierte el usuario del backend a la salida del panel.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     u.ID,
		Handle: u.Handle,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Saldo:  u.Saldo,
		Rango:  u.Rango,
	}
}

// ToProductResponse convierte un producto.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		Code:         p.Code,
		Name:         p.Name,
		Label:        sales.ProductLabel(p.Name),
		Price:        p.Price,
		PriceOro:     p.PriceOro,
		PricePlata:   p.PricePlata,
		PriceBronce:  p.PriceBronce,
		Available:    p.Available,
		ProductGroup: p.ProductGroup,
	}
}

// ToProductList convierte el catálogo completo.
func ToProductList(list []entity.Product) *dto.ProductListResponse {
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(list))}
	for i := range list {
		out.Items = append(out.Items, ToProductResponse(&list[i]))
	}
	return out
}

// ToPinResponse convierte un pin del diario.
func ToPinResponse(p *entity.Pin) dto.PinResponse {
	return dto.PinResponse{
		ID:          p.ID,
		PurchaseID:  p.PurchaseID,
		ProductCode: p.ProductCode,
		ProductName: p.ProductName,
		Serial:      p.Serial,
		Key:         p.Key,
		Usado:       p.Usado,
		CreatedAt:   p.CreatedAt,
		UsedAt:      p.UsedAt,
	}
}

func toLimitDTOs(ls entity.PurchaseLimits) []dto.PurchaseLimitDTO {
	out := make([]dto.PurchaseLimitDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, dto.PurchaseLimitDTO{Name: l.Name, Limit: l.Limit, OriginLimit: l.OriginLimit, Price: l.Price})
	}
	return out
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	name := s.ProductName
	if name == "" {
		name = s.Product
	}
	return dto.SaleResponse{
		ID:                 s.ID,
		OrderID:            s.OrderID,
		Product:            s.Product,
		ProductName:        s.ProductName,
		Label:              sales.ProductLabel(name),
		Quantity:           s.Quantity,
		Price:              s.Price,
		TotalPrice:         s.TotalPrice,
		TotalOriginalPrice: s.TotalOriginalPrice,
		Status:             s.Status,
		UserID:             s.User.ID,
		UserHandle:         s.User.Handle,
		CreatedAt:          s.CreatedAt,
	}
}
