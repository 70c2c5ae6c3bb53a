package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
)

// SellerRepository define el puerto para el directorio de revendedores.
// El ledger solo muta Debt como efecto de aprobar/deshacer devoluciones.
type SellerRepository interface {
	Create(seller *entity.Seller) error
	GetByID(id string) (*entity.Seller, error)
	List(limit, offset int) ([]*entity.Seller, error)
	// AdjustDebt aplica un delta a la deuda con piso en cero y devuelve el
	// revendedor actualizado.
	AdjustDebt(id string, delta decimal.Decimal) (*entity.Seller, error)
}
