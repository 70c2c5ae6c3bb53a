package repository

import "github.com/dvintimilla/andina-api/internal/domain/entity"

// InventoryRecordRepository define el puerto para el saldo autoritativo por
// (producto, ubicación). Usado dentro de transacciones para garantizar
// consistencia.
type InventoryRecordRepository interface {
	// Get devuelve el registro; si la clave no existe devuelve un registro
	// saldo-cero sintetizado (Exists() == false), nunca nil.
	Get(productID, location string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, location string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error
	// List devuelve los registros persistidos; location vacío lista todo.
	List(location string, limit, offset int) ([]*entity.InventoryRecord, error)
	ListByProduct(productID string) ([]*entity.InventoryRecord, error)
}
