package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyReportResponse un (producto, ubicación) auditado.
type DiscrepancyReportResponse struct {
	ProductID   string                 `json:"product_id"`
	ProductSKU  string                 `json:"product_sku"`
	ProductName string                 `json:"product_name"`
	Location    string                 `json:"location"`
	Recorded    decimal.Decimal        `json:"recorded"`
	Expected    decimal.Decimal        `json:"expected"`
	Difference  decimal.Decimal        `json:"difference"`
	Movements   []MovementContribution `json:"movements"`
	AsOf        time.Time              `json:"as_of"`
}

// MovementContribution contribución con signo de un movimiento al saldo
// esperado.
type MovementContribution struct {
	MovementID   string          `json:"movement_id"`
	Kind         string          `json:"kind"`
	Status       string          `json:"status"`
	Effect       decimal.Decimal `json:"effect"`
	Counterparty string          `json:"counterparty,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
