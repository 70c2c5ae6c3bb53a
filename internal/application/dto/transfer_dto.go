package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitNoteLineRequest línea de una nota de salida.
type ExitNoteLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateExitNoteRequest body para POST /api/exit-notes. Con seller_id el
// destino es la consignación de ese revendedor; si no, destination debe ser
// una bodega. source vacío = bodega origen.
type CreateExitNoteRequest struct {
	Source      string                `json:"source,omitempty"`
	Destination string                `json:"destination,omitempty"`
	SellerID    string                `json:"seller_id,omitempty"`
	Lines       []ExitNoteLineRequest `json:"lines"`
}

// UpdateExitNoteStatusRequest body para PUT /api/exit-notes/:id/status.
type UpdateExitNoteStatusRequest struct {
	Status string `json:"status"`
}

// ExitNoteResponse una nota de salida con sus líneas.
type ExitNoteResponse struct {
	ID          string                 `json:"id"`
	Source      string                 `json:"source"`
	Destination string                 `json:"destination"`
	SellerID    string                 `json:"seller_id,omitempty"`
	Status      string                 `json:"status"`
	Lines       []ExitNoteLineResponse `json:"lines"`
	TotalValue  decimal.Decimal        `json:"total_value"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ExitNoteLineResponse línea en una respuesta de nota.
type ExitNoteLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RegisterSaleRequest body para POST /api/sales.
type RegisterSaleRequest struct {
	ProductID string           `json:"product_id"`
	Location  string           `json:"location"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}
