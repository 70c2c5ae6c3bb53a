package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// UseCase expone el catálogo de productos y el Consolidation Manager:
// presentar varios productos como un combo vendible sin mover ni fusionar sus
// registros de stock.
type UseCase struct {
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository) *UseCase {
	return &UseCase{products: products}
}

// CreateInput datos para crear un producto.
type CreateInput struct {
	SKU         string
	Name        string
	Description string
	Cost        decimal.Decimal
	SalePrice   decimal.Decimal
	UnitWeight  decimal.Decimal
	UnitVolume  decimal.Decimal
}

// Create da de alta un producto en catálogo.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.Product, error) {
	if input.SKU == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Cost.IsNegative() || input.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.products.GetBySKU(input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Cost:        input.Cost,
		SalePrice:   input.SalePrice,
		UnitWeight:  input.UnitWeight,
		UnitVolume:  input.UnitVolume,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto.
func (uc *UseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update actualiza los campos editables del producto (el costo lo gobiernan
// las entradas de inventario, no este camino).
func (uc *UseCase) Update(ctx context.Context, id string, input CreateInput) (*entity.Product, error) {
	product, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.SalePrice.IsPositive() {
		product.SalePrice = input.SalePrice
	}
	if input.UnitWeight.IsPositive() {
		product.UnitWeight = input.UnitWeight
	}
	if input.UnitVolume.IsPositive() {
		product.UnitVolume = input.UnitVolume
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// List devuelve productos. Con sellableOnly se ocultan los hijos de combos
// vigentes: visibilidad de catálogo pura, el stock de los hijos sigue
// rastreado de forma independiente.
func (uc *UseCase) List(sellableOnly bool, limit, offset int) ([]*entity.Product, error) {
	products, err := uc.products.List(limit, offset)
	if err != nil {
		return nil, err
	}
	if !sellableOnly {
		return products, nil
	}
	hidden := make(map[string]bool)
	for _, p := range products {
		if p.IsConsolidated {
			for _, c := range p.ChildIDs {
				hidden[c] = true
			}
		}
	}
	visible := products[:0]
	for _, p := range products {
		if !hidden[p.ID] {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// Consolidate marca al padre como combo y le adjunta la lista de hijos. No
// mueve ni fusiona cantidades: solo cambia la visibilidad de catálogo.
// Rechaza autorreferencias directas o transitivas, duplicados y productos
// desconocidos.
func (uc *UseCase) Consolidate(ctx context.Context, parentID string, childIDs []string) (*entity.Product, error) {
	if len(childIDs) == 0 {
		return nil, fmt.Errorf("%w: combo sin hijos", domain.ErrInvalidInput)
	}
	parent, err := uc.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(childIDs))
	for _, childID := range childIDs {
		if childID == parentID {
			return nil, fmt.Errorf("%w: un producto no puede ser su propio hijo", domain.ErrInvalidInput)
		}
		if seen[childID] {
			return nil, fmt.Errorf("%w: hijo duplicado %s", domain.ErrInvalidInput, childID)
		}
		seen[childID] = true
		child, err := uc.products.GetByID(childID)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, domain.ErrNotFound
		}
		// Ciclo transitivo: el padre no puede ser alcanzable desde el hijo.
		reachable, err := uc.reaches(child, parentID, make(map[string]bool))
		if err != nil {
			return nil, err
		}
		if reachable {
			return nil, fmt.Errorf("%w: consolidación cíclica vía %s", domain.ErrInvalidInput, childID)
		}
	}
	if err := uc.products.SetConsolidation(parentID, true, childIDs); err != nil {
		return nil, err
	}
	parent.IsConsolidated = true
	parent.ChildIDs = childIDs
	return parent, nil
}

// Unconsolidate limpia marca y lista de hijos, re-exponiéndolos. Operación de
// metadatos pura: cero efectos sobre el Inventory Store, porque la
// consolidación nunca movió cantidades.
func (uc *UseCase) Unconsolidate(ctx context.Context, parentID string) (*entity.Product, error) {
	parent, err := uc.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	if !parent.IsConsolidated {
		return nil, fmt.Errorf("%w: el producto no está consolidado", domain.ErrInvalidInput)
	}
	if err := uc.products.SetConsolidation(parentID, false, nil); err != nil {
		return nil, err
	}
	parent.IsConsolidated = false
	parent.ChildIDs = nil
	return parent, nil
}

// reaches recorre el grafo de hijos en profundidad buscando targetID.
func (uc *UseCase) reaches(from *entity.Product, targetID string, visited map[string]bool) (bool, error) {
	if visited[from.ID] {
		return false, nil
	}
	visited[from.ID] = true
	for _, childID := range from.ChildIDs {
		if childID == targetID {
			return true, nil
		}
		child, err := uc.products.GetByID(childID)
		if err != nil {
			return false, err
		}
		if child == nil {
			continue
		}
		found, err := uc.reaches(child, targetID, visited)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}
