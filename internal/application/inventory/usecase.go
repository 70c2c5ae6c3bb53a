package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// LedgerUseCase registra entradas y correcciones de stock de forma
// transaccional, con bloqueo de fila y Commit/Rollback, y expone el lado de
// lectura del Store y del log de movimientos.
type LedgerUseCase struct {
	tx        TxRunner
	products  repository.ProductRepository
	records   repository.InventoryRecordRepository
	movements repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(tx TxRunner, products repository.ProductRepository, records repository.InventoryRecordRepository, movements repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{tx: tx, products: products, records: records, movements: movements}
}

// EntryInput entrada para registrar una recepción de compra o llegada manual.
type EntryInput struct {
	ProductID string
	Location  string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	UnitPrice *decimal.Decimal // nil = precio de lista del producto
	CreatedBy string
}

// CorrectionInput entrada para un ajuste manual de bodega. Direction es
// "IN" o "OUT"; Reason es obligatorio siempre.
type CorrectionInput struct {
	ProductID string
	Location  string
	Direction string
	Quantity  decimal.Decimal
	Reason    string
	CreatedBy string
}

// OverrideInput entrada para fijar la cantidad de un registro a mano
// (conciliación de conteo físico). No escribe movimiento: la brecha que deja
// la detecta el motor de reconciliación.
type OverrideInput struct {
	ProductID   string
	Location    string
	NewQuantity decimal.Decimal
	Reason      string
	CreatedBy   string
}

// validQuantity exige cantidades enteras estrictamente positivas: la
// dirección la implica el kind del movimiento, nunca el signo.
func validQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && q.IsInteger()
}

// RegisterEntry suma stock en una ubicación: bloquea la fila, recalcula el
// costo promedio ponderado, actualiza el costo del producto en catálogo y
// registra el movimiento ENTRY, todo en una transacción.
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, input EntryInput) (*entity.Movement, error) {
	if !validQuantity(input.Quantity) || input.UnitCost.IsNegative() {
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
		Kind:        entity.MovementKindEntry,
		Status:      entity.MovementStatusPosted,
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Quantity:    input.Quantity,
		UnitCost:    input.UnitCost,
		UnitPrice:   unitPrice,
		Location:    location,
		CreatedAt:   now,
		CreatedBy:   input.CreatedBy,
	}

	err = uc.tx.Run(ctx, func(r Repos) error {
		rec, err := dominv.ApplyDelta(r.Records, product.ID, location, input.Quantity, &input.UnitCost, &unitPrice, now)
		if err != nil {
			return err
		}
		// El costo de catálogo sigue al promedio ponderado del registro.
		if err := r.Products.UpdateCost(product.ID, rec.UnitCost); err != nil {
			return err
		}
		return r.Movements.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterCorrection aplica un ajuste manual con motivo obligatorio y lo
// registra como CORRECTION_IN o CORRECTION_OUT.
func (uc *LedgerUseCase) RegisterCorrection(ctx context.Context, input CorrectionInput) (*entity.Movement, error) {
	if !validQuantity(input.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	if input.Reason == "" {
		return nil, fmt.Errorf("%w: corrección sin motivo", domain.ErrInvalidInput)
	}
	var kind string
	var delta decimal.Decimal
	switch input.Direction {
	case "IN":
		kind = entity.MovementKindCorrectionIn
		delta = input.Quantity
	case "OUT":
		kind = entity.MovementKindCorrectionOut
		delta = input.Quantity.Neg()
	default:
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

	now := time.Now()
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		Kind:        kind,
		Status:      entity.MovementStatusPosted,
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Quantity:    input.Quantity,
		UnitCost:    product.Cost,
		UnitPrice:   product.SalePrice,
		Location:    location,
		Reason:      input.Reason,
		CreatedAt:   now,
		CreatedBy:   input.CreatedBy,
	}

	err = uc.tx.Run(ctx, func(r Repos) error {
		// Sin costo entrante: las unidades ajustadas entran y salen al costo
		// promedio vigente del registro.
		if _, err := dominv.ApplyDelta(r.Records, product.ID, location, delta, nil, nil, now); err != nil {
			return err
		}
		return r.Movements.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// OverrideQuantity fija la cantidad registrada sin escribir movimiento. Deja
// rastro solo en el log estructurado; la divergencia resultante es trabajo
// del motor de reconciliación, no de esta operación.
func (uc *LedgerUseCase) OverrideQuantity(ctx context.Context, input OverrideInput) (*entity.InventoryRecord, error) {
	location, err := dominv.Canonical(input.Location)
	if err != nil {
		return nil, err
	}
	if input.NewQuantity.IsNegative() || !input.NewQuantity.IsInteger() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var rec *entity.InventoryRecord
	err = uc.tx.Run(ctx, func(r Repos) error {
		rec, err = dominv.SetQuantity(r.Records, product.ID, location, input.NewQuantity, input.Reason, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Warn().
		Str("product_id", product.ID).
		Str("location", location).
		Str("new_quantity", input.NewQuantity.String()).
		Str("reason", input.Reason).
		Str("by", input.CreatedBy).
		Msg("cantidad fijada manualmente sin movimiento")
	return rec, nil
}

// ListRecords devuelve los registros de inventario, opcionalmente filtrados
// por ubicación (el filtro se canonicaliza antes de comparar).
func (uc *LedgerUseCase) ListRecords(location string, limit, offset int) ([]*entity.InventoryRecord, error) {
	if location != "" {
		canonical, err := dominv.Canonical(location)
		if err != nil {
			return nil, err
		}
		location = canonical
	}
	return uc.records.List(location, limit, offset)
}

// ListMovements devuelve el historial de movimientos de un producto.
func (uc *LedgerUseCase) ListMovements(productID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movements.ListByProduct(productID, limit, offset)
}
