package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Cost es promedio ponderado calculado desde las entradas; el stock por
// ubicación vive en InventoryRecord, nunca aquí.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	SalePrice   decimal.Decimal // precio de venta de lista
	UnitWeight  decimal.Decimal // kg por unidad (tránsito/aduana)
	UnitVolume  decimal.Decimal // m3 por unidad

	// Consolidación: el padre oculta a los hijos de la venta directa sin
	// mover ni fusionar sus registros de stock.
	IsConsolidated bool
	ChildIDs       []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasChild indica si el producto absorbe directamente al hijo dado.
func (p *Product) HasChild(id string) bool {
	for _, c := range p.ChildIDs {
		if c == id {
			return true
		}
	}
	return false
}
