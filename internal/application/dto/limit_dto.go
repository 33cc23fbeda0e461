package dto

import "github.com/shopspring/decimal"

// PurchaseLimitDTO cupo de un vendedor para un producto.
type PurchaseLimitDTO struct {
	Name        string          `json:"name" validate:"required"`
	Limit       int             `json:"limit" validate:"min=0"`
	OriginLimit int             `json:"origin_limit" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
}

// PurchaseLimitsResponse cupos de un vendedor.
type PurchaseLimitsResponse struct {
	SellerID string             `json:"seller_id"`
	Items    []PurchaseLimitDTO `json:"items"`
}

// UpdatePurchaseLimitsRequest reemplaza la lista de cupos del vendedor.
type UpdatePurchaseLimitsRequest struct {
	Items []PurchaseLimitDTO `json:"items" validate:"required,dive"`
}
