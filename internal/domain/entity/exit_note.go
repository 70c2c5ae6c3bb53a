package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitNote es la unidad de trabajo del workflow de traslados: mueve stock de
// la bodega origen hacia la bodega destino o hacia la consignación de un
// revendedor. Estados: PENDING -> IN_TRANSIT -> ARRIVED | COMPLETED, y
// PENDING -> CANCELLED. Cancelar después de IN_TRANSIT no está permitido.
type ExitNote struct {
	ID          string
	Source      string // ubicación canónica origen
	Destination string // ubicación canónica destino (bodega o consignación)
	SellerID    string // presente cuando el destino es consignación de revendedor
	Status      string
	Lines       []ExitNoteLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
}

// ExitNoteLine es una línea de la nota (producto, cantidad, precio unitario).
type ExitNoteLine struct {
	ProductID string
	Quantity  decimal.Decimal // siempre > 0
	UnitPrice decimal.Decimal
}

// TotalValue devuelve el valor de la nota a precio de línea.
func (n *ExitNote) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range n.Lines {
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return total
}

// Terminal indica si la nota alcanzó un estado final.
func (n *ExitNote) Terminal() bool {
	switch n.Status {
	case ExitNoteStatusArrived, ExitNoteStatusCompleted, ExitNoteStatusCancelled:
		return true
	}
	return false
}
