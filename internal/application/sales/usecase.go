package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/application/inventory"
	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// UseCase registra ventas (descuento optimista al crear) y su cancelación,
// reversible como máximo una vez.
type UseCase struct {
	tx       inventory.TxRunner
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx inventory.TxRunner, products repository.ProductRepository) *UseCase {
	return &UseCase{tx: tx, products: products}
}

// SaleInput entrada para registrar una venta.
type SaleInput struct {
	ProductID string
	Location  string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal // nil = precio de lista del producto
	CreatedBy string
}

// RegisterSale descuenta stock al momento de crear la venta. Valida contra la
// cantidad disponible (no solo la física) para no vender stock ya prometido a
// un traslado en vuelo.
func (uc *UseCase) RegisterSale(ctx context.Context, input SaleInput) (*entity.Movement, error) {
	if !input.Quantity.IsPositive() || !input.Quantity.IsInteger() {
		return nil, domain.ErrInvalidInput
	}
	location, err := dominv.Canonical(input.Location)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	unitPrice := product.SalePrice
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		Kind:        entity.MovementKindSale,
		Status:      entity.SaleStatusCompleted,
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Quantity:    input.Quantity,
		UnitCost:    product.Cost,
		UnitPrice:   unitPrice,
		Location:    location,
		CreatedAt:   now,
		CreatedBy:   input.CreatedBy,
	}

	err = uc.tx.Run(ctx, func(r Repos) error {
		avail := inventory.NewAvailabilityService(r.Records, r.Movements)
		available, err := avail.Available(product.ID, location)
		if err != nil {
			return err
		}
		if input.Quantity.GreaterThan(available) {
			return domain.ErrInsufficientStock
		}
		if _, err := dominv.ApplyDelta(r.Records, product.ID, location, input.Quantity.Neg(), nil, nil, now); err != nil {
			return err
		}
		return r.Movements.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Repos alias local para acortar la firma del closure.
type Repos = inventory.Repos

// CancelSale revierte una venta exactamente una vez: update condicional del
// status (dos cancelaciones concurrentes no pueden pasar ambas), restaura la
// cantidad al costo original del movimiento y registra una REVERSAL de
// auditoría. Un segundo intento falla con ErrAlreadyReversed sin tocar stock.
func (uc *UseCase) CancelSale(ctx context.Context, movementID, by string) error {
	return uc.tx.Run(ctx, func(r Repos) error {
		mov, err := r.Movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil || mov.Kind != entity.MovementKindSale {
			return domain.ErrNotFound
		}
		ok, err := r.Movements.UpdateStatusGuarded(mov.ID, entity.SaleStatusCompleted, entity.SaleStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			if mov.Status == entity.SaleStatusCancelled {
				return domain.ErrAlreadyReversed
			}
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		if _, err := dominv.ApplyDelta(r.Records, mov.ProductID, mov.Location, mov.Quantity, &mov.UnitCost, &mov.UnitPrice, now); err != nil {
			return err
		}
		reversal := &entity.Movement{
			ID:          uuid.New().String(),
			Kind:        entity.MovementKindReversal,
			Status:      entity.MovementStatusPosted,
			ProductID:   mov.ProductID,
			ProductSKU:  mov.ProductSKU,
			ProductName: mov.ProductName,
			Quantity:    mov.Quantity,
			UnitCost:    mov.UnitCost,
			UnitPrice:   mov.UnitPrice,
			Location:    mov.Location,
			ReversalOf:  mov.ID,
			CreatedAt:   now,
			CreatedBy:   by,
		}
		return r.Movements.Create(reversal)
	})
}
