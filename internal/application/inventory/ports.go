package inventory

import (
	"context"

	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción de BD.
type Repos struct {
	Products  repository.ProductRepository
	Records   repository.InventoryRecordRepository
	Movements repository.MovementRepository
	ExitNotes repository.ExitNoteRepository
	Returns   repository.ReturnRepository
	Sellers   repository.SellerRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: en cualquier fallo el estado queda sin cambios (rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
