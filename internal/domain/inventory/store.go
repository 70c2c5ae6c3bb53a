package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// ApplyDelta es la única primitiva de mutación del Inventory Store. Debe
// ejecutarse con la fila bloqueada (el repositorio usa SELECT FOR UPDATE
// dentro de la transacción del caller).
//
// Delta positivo: crea el registro si no existe y recalcula costo/precio
// unitario como promedio ponderado por cantidad, no como sobrescritura.
// Delta negativo: falla con ErrInsufficientStock si dejaría la cantidad por
// debajo de cero; el costo unitario de las unidades restantes no cambia, así
// la valoración total queda proporcional a lo que queda.
func ApplyDelta(records repository.InventoryRecordRepository, productID, location string, delta decimal.Decimal, unitCost, unitPrice *decimal.Decimal, now time.Time) (*entity.InventoryRecord, error) {
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: delta cero", domain.ErrInvalidInput)
	}
	rec, err := records.GetForUpdate(productID, location)
	if err != nil {
		return nil, err
	}
	newQty := rec.Quantity.Add(delta)
	if newQty.IsNegative() {
		return nil, fmt.Errorf("%w: %s en %s tiene %s, se pidió %s",
			domain.ErrInsufficientStock, productID, location, rec.Quantity, delta.Neg())
	}
	if delta.IsPositive() {
		if unitCost != nil {
			rec.UnitCost = WeightedAverage(rec.Quantity, rec.UnitCost, delta, *unitCost)
		}
		if unitPrice != nil {
			rec.UnitPrice = WeightedAverage(rec.Quantity, rec.UnitPrice, delta, *unitPrice)
		}
	}
	rec.Quantity = newQty
	rec.UpdatedAt = now
	if err := records.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SetQuantity es la anulación manual usada solo por el camino de corrección:
// fija la cantidad conservando costo y precio unitario existentes (los
// totales derivados se recalculan solos). Reason es obligatorio; el registro
// del movimiento de corrección es responsabilidad del caller.
func SetQuantity(records repository.InventoryRecordRepository, productID, location string, newQty decimal.Decimal, reason string, now time.Time) (*entity.InventoryRecord, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: corrección sin motivo", domain.ErrInvalidInput)
	}
	if newQty.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	rec, err := records.GetForUpdate(productID, location)
	if err != nil {
		return nil, err
	}
	rec.Quantity = newQty
	rec.UpdatedAt = now
	if err := records.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
