package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterEntryRequest body para POST /api/inventory/entries.
type RegisterEntryRequest struct {
	ProductID string           `json:"product_id"`
	Location  string           `json:"location"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// RegisterCorrectionRequest body para POST /api/inventory/corrections.
// Direction es "IN" o "OUT"; reason es obligatorio.
type RegisterCorrectionRequest struct {
	ProductID string          `json:"product_id"`
	Location  string          `json:"location"`
	Direction string          `json:"direction"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
}

// OverrideQuantityRequest body para POST /api/inventory/records/override.
type OverrideQuantityRequest struct {
	ProductID   string          `json:"product_id"`
	Location    string          `json:"location"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason"`
}

// InventoryRecordResponse un registro del Store con sus totales derivados.
type InventoryRecordResponse struct {
	ProductID  string          `json:"product_id"`
	Location   string          `json:"location"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	TotalPrice decimal.Decimal `json:"total_price"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AvailabilityResponse respuesta de GET /api/inventory/availability.
type AvailabilityResponse struct {
	ProductID string          `json:"product_id"`
	Location  string          `json:"location"`
	OnHand    decimal.Decimal `json:"on_hand"`
	Committed decimal.Decimal `json:"committed"`
	Available decimal.Decimal `json:"available"`
}

// MovementResponse un movimiento del log.
type MovementResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Status      string          `json:"status"`
	ProductID   string          `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Location    string          `json:"location"`
	Destination string          `json:"destination,omitempty"`
	SellerID    string          `json:"seller_id,omitempty"`
	NoteID      string          `json:"note_id,omitempty"`
	ReturnID    string          `json:"return_id,omitempty"`
	ReversalOf  string          `json:"reversal_of,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by,omitempty"`
}
