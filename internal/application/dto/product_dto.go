package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	UnitWeight  decimal.Decimal `json:"unit_weight,omitempty"`
	UnitVolume  decimal.Decimal `json:"unit_volume,omitempty"`
}

// ConsolidateRequest body para POST /api/products/:id/consolidate.
type ConsolidateRequest struct {
	ChildIDs []string `json:"child_ids"`
}

// ProductResponse un producto del catálogo.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Cost           decimal.Decimal `json:"cost"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	UnitWeight     decimal.Decimal `json:"unit_weight"`
	UnitVolume     decimal.Decimal `json:"unit_volume"`
	IsConsolidated bool            `json:"is_consolidated"`
	ChildIDs       []string        `json:"child_ids,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
