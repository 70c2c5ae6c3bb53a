package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyReport es el resultado de reconciliar un (producto, ubicación):
// saldo registrado vs. saldo esperado por replay del historial de movimientos.
// Se reporta, nunca se autocorrige.
type DiscrepancyReport struct {
	ProductID   string
	ProductSKU  string
	ProductName string
	Location    string
	Recorded    decimal.Decimal // cantidad viva en InventoryRecord
	Expected    decimal.Decimal // cantidad reconstruida por replay
	Difference  decimal.Decimal // Recorded - Expected
	Movements   []MovementContribution
	AsOf        time.Time
}

// MovementContribution es un movimiento que contribuyó al saldo esperado, en
// orden de creación, para que un operador pueda atribuir la brecha.
type MovementContribution struct {
	MovementID   string
	Kind         string
	Status       string
	Effect       decimal.Decimal // contribución con signo sobre la ubicación
	Counterparty string
	CreatedAt    time.Time
}

// HasDiscrepancy indica si el saldo registrado difiere del esperado.
func (d *DiscrepancyReport) HasDiscrepancy() bool {
	return !d.Difference.IsZero()
}
