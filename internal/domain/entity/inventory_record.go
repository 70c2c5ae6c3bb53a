package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord es el saldo autoritativo de un producto en una ubicación.
// Clave compuesta (ProductID, Location); se muta, nunca se recrea: la cantidad
// puede llegar a cero y el registro permanece como saldo en cero.
type InventoryRecord struct {
	ProductID string
	Location  string // ubicación canónica (ver inventory.Canonical)
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	UnitPrice decimal.Decimal
	UpdatedAt time.Time
}

// TotalCost devuelve la valoración al costo (costo unitario * cantidad).
func (r *InventoryRecord) TotalCost() decimal.Decimal {
	return r.UnitCost.Mul(r.Quantity)
}

// TotalPrice devuelve la valoración a precio de venta.
func (r *InventoryRecord) TotalPrice() decimal.Decimal {
	return r.UnitPrice.Mul(r.Quantity)
}

// Exists distingue un registro persistido de un saldo-cero sintetizado por el
// repositorio cuando la clave aún no existe.
func (r *InventoryRecord) Exists() bool {
	return !r.UpdatedAt.IsZero()
}
