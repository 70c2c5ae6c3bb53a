package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación del saldo autoritativo sobre PostgreSQL
// (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const recordColumns = `product_id, location, quantity, unit_cost, unit_price, updated_at`

func scanRecord(row pgx.Row, r *entity.InventoryRecord) error {
	return row.Scan(&r.ProductID, &r.Location, &r.Quantity, &r.UnitCost, &r.UnitPrice, &r.UpdatedAt)
}

// Get obtiene el registro; clave inexistente devuelve saldo-cero sintetizado.
func (r *InventoryRecordRepo) Get(productID, location string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE product_id = $1 AND location = $2`
	var rec entity.InventoryRecord
	err := scanRecord(r.q.QueryRow(context.Background(), query, productID, location), &rec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryRecord{ProductID: productID, Location: location, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE) para
// que los decrementos concurrentes sobre la misma clave se serialicen.
func (r *InventoryRecordRepo) GetForUpdate(productID, location string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE product_id = $1 AND location = $2 FOR UPDATE`
	var rec entity.InventoryRecord
	err := scanRecord(r.q.QueryRow(context.Background(), query, productID, location), &rec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryRecord{ProductID: productID, Location: location, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o actualiza el registro por (producto, ubicación). La
// cantidad nunca baja de cero: el CHECK de la tabla respalda la validación de
// dominio.
func (r *InventoryRecordRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (product_id, location, quantity, unit_cost, unit_price, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit_cost = EXCLUDED.unit_cost,
			unit_price = EXCLUDED.unit_price, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.Location, record.Quantity, record.UnitCost, record.UnitPrice, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// List devuelve los registros persistidos; location vacío lista todo y
// limit <= 0 no pagina (lo usa la reconciliación).
func (r *InventoryRecordRepo) List(location string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records`
	args := []any{}
	if location != "" {
		query += ` WHERE location = $1`
		args = append(args, location)
	}
	query += ` ORDER BY product_id, location`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := scanRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ListByProduct devuelve todos los registros de un producto.
func (r *InventoryRecordRepo) ListByProduct(productID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE product_id = $1 ORDER BY location`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory records by product: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := scanRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
