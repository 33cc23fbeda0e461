package dto

import "github.com/shopspring/decimal"

// ProductRequest alta o edición de un producto en el backend.
type ProductRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Price        decimal.Decimal `json:"price"`
	PriceOro     decimal.Decimal `json:"price_oro"`
	PricePlata   decimal.Decimal `json:"price_plata"`
	PriceBronce  decimal.Decimal `json:"price_bronce"`
	Available    bool            `json:"available"`
	ProductGroup string          `json:"product_group"`
}

// ProductResponse salida de un producto (backend o catálogo del proveedor).
type ProductResponse struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Label        string          `json:"label"` // nombre corto, ej. "100 Diamantes"
	Price        decimal.Decimal `json:"price"`
	PriceOro     decimal.Decimal `json:"price_oro"`
	PricePlata   decimal.Decimal `json:"price_plata"`
	PriceBronce  decimal.Decimal `json:"price_bronce"`
	Available    bool            `json:"available"`
	ProductGroup string          `json:"product_group,omitempty"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// PlayerValidationResponse resultado de validar un id de jugador.
type PlayerValidationResponse struct {
	PlayerID string `json:"player_id"`
	Valid    bool   `json:"valid"`
	Nickname string `json:"nickname,omitempty"`
	Message  string `json:"message,omitempty"`
}
