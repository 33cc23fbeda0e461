package backend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

// Formato JSON del backend (camelCase, ids de Mongo en "_id").

type userJSON struct {
	ID     string          `json:"_id"`
	Handle string          `json:"handle"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   string          `json:"role"`
	Saldo  decimal.Decimal `json:"saldo"`
	Rango  string          `json:"rango,omitempty"`
}

func (u userJSON) toEntity() entity.User {
	return entity.User{ID: u.ID, Handle: u.Handle, Name: u.Name, Email: u.Email, Role: u.Role, Saldo: u.Saldo, Rango: u.Rango}
}

type productJSON struct {
	ID           string          `json:"_id,omitempty"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	PriceOro     decimal.Decimal `json:"priceOro"`
	PricePlata   decimal.Decimal `json:"pricePlata"`
	PriceBronce  decimal.Decimal `json:"priceBronce"`
	Available    bool            `json:"available"`
	ProductGroup string          `json:"productGroup,omitempty"`
}

func (p productJSON) toEntity() entity.Product {
	code := p.Code
	if code == "" {
		code = p.ID
	}
	return entity.Product{
		Code: code, Name: p.Name, Price: p.Price,
		PriceOro: p.PriceOro, PricePlata: p.PricePlata, PriceBronce: p.PriceBronce,
		Available: p.Available, ProductGroup: p.ProductGroup,
	}
}

func productFromEntity(p *entity.Product) productJSON {
	return productJSON{
		Code: p.Code, Name: p.Name, Price: p.Price,
		PriceOro: p.PriceOro, PricePlata: p.PricePlata, PriceBronce: p.PriceBronce,
		Available: p.Available, ProductGroup: p.ProductGroup,
	}
}

type salePinJSON struct {
	Serial string `json:"serial"`
	Key    string `json:"key"`
}

type saleUserJSON struct {
	ID     string `json:"_id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Rango  string `json:"rango,omitempty"`
}

type saleJSON struct {
	ID                 string          `json:"_id,omitempty"`
	Quantity           int             `json:"quantity"`
	Product            string          `json:"product"`
	ProductName        string          `json:"productName"`
	Price              decimal.Decimal `json:"price"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	TotalOriginalPrice decimal.Decimal `json:"totalOriginalPrice"`
	Status             string          `json:"status"`
	OrderID            string          `json:"orderId"`
	User               saleUserJSON    `json:"user"`
	Pins               []salePinJSON   `json:"pins"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func (s saleJSON) toEntity() entity.Sale {
	pins := make([]entity.SalePin, 0, len(s.Pins))
	for _, p := range s.Pins {
		pins = append(pins, entity.SalePin{Serial: p.Serial, Key: p.Key})
	}
	return entity.Sale{
		ID: s.ID, Quantity: s.Quantity, Product: s.Product, ProductName: s.ProductName,
		Price: s.Price, TotalPrice: s.TotalPrice, TotalOriginalPrice: s.TotalOriginalPrice,
		Status: s.Status, OrderID: s.OrderID,
		User: entity.UserSnapshot{
			ID: s.User.ID, Handle: s.User.Handle, Name: s.User.Name,
			Email: s.User.Email, Role: s.User.Role, Rango: s.User.Rango,
		},
		Pins:      pins,
		CreatedAt: s.CreatedAt,
	}
}

func saleFromEntity(s *entity.Sale) saleJSON {
	pins := make([]salePinJSON, 0, len(s.Pins))
	for _, p := range s.Pins {
		pins = append(pins, salePinJSON{Serial: p.Serial, Key: p.Key})
	}
	return saleJSON{
		Quantity: s.Quantity, Product: s.Product, ProductName: s.ProductName,
		Price: s.Price, TotalPrice: s.TotalPrice, TotalOriginalPrice: s.TotalOriginalPrice,
		Status: s.Status, OrderID: s.OrderID,
		User: saleUserJSON{
			ID: s.User.ID, Handle: s.User.Handle, Name: s.User.Name,
			Email: s.User.Email, Role: s.User.Role, Rango: s.User.Rango,
		},
		Pins:      pins,
		CreatedAt: s.CreatedAt,
	}
}

type transactionJSON struct {
	ID          string          `json:"_id"`
	UserID      string          `json:"userId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type limitJSON struct {
	Name        string          `json:"name"`
	Limit       int             `json:"limit"`
	OriginLimit int             `json:"originLimit"`
	Price       decimal.Decimal `json:"price"`
}

type limitsDocJSON struct {
	PurchaseLimit []limitJSON `json:"purchaseLimit"`
}
