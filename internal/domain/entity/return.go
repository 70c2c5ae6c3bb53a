package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return representa una devolución de stock en consignación de un revendedor
// hacia la bodega destino. Estados: PENDING -> APPROVED | REJECTED, más
// APPROVED -> RESTORED (deshacer explícito, válido una sola vez).
type Return struct {
	ID          string
	SellerID    string
	Destination string // bodega que recibe la devolución
	Status      string
	Lines       []ReturnLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
}

// ReturnLine es una línea de devolución.
type ReturnLine struct {
	ProductID string
	Quantity  decimal.Decimal // siempre > 0
	UnitPrice decimal.Decimal // precio registrado al momento de la devolución
}

// TotalValue es el valor total de la devolución; reduce (o restaura) la deuda
// del revendedor al aprobar (o deshacer).
func (r *Return) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return total
}
