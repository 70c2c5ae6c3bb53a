package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seller es un revendedor con stock en consignación y un saldo de deuda
// corriente. El ledger solo muta Debt como efecto de aprobar/deshacer
// devoluciones; la entidad pertenece al directorio de revendedores.
type Seller struct {
	ID        string
	Name      string
	Debt      decimal.Decimal // nunca negativa
	PriceTier string          // "mayorista" | "minorista"
	CreatedAt time.Time
	UpdatedAt time.Time
}
