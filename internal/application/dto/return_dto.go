package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnLineRequest línea de devolución.
type ReturnLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateReturnRequest body para POST /api/returns.
type CreateReturnRequest struct {
	SellerID string              `json:"seller_id"`
	Lines    []ReturnLineRequest `json:"lines"`
}

// ReturnResponse una devolución con sus líneas.
type ReturnResponse struct {
	ID          string               `json:"id"`
	SellerID    string               `json:"seller_id"`
	Destination string               `json:"destination"`
	Status      string               `json:"status"`
	Lines       []ReturnLineResponse `json:"lines"`
	TotalValue  decimal.Decimal      `json:"total_value"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ReturnLineResponse línea en una respuesta de devolución.
type ReturnLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSellerRequest body para POST /api/sellers.
type CreateSellerRequest struct {
	Name      string `json:"name"`
	PriceTier string `json:"price_tier,omitempty"`
}

// SellerResponse un revendedor del directorio.
type SellerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Debt      decimal.Decimal `json:"debt"`
	PriceTier string          `json:"price_tier"`
}
