package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(productID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	// SetConsolidation marca/desmarca el producto como consolidado con su
	// lista de hijos. Operación de metadatos pura: cero efectos sobre stock.
	SetConsolidation(productID string, consolidated bool, childIDs []string) error
}
