package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, kind, status, product_id, product_sku, product_name,
	quantity, unit_cost, unit_price, location, destination, seller_id,
	note_id, return_id, reversal_of, reason, created_at, created_by`

func scanMovement(row pgx.Row, m *entity.Movement) error {
	return row.Scan(&m.ID, &m.Kind, &m.Status, &m.ProductID, &m.ProductSKU, &m.ProductName,
		&m.Quantity, &m.UnitCost, &m.UnitPrice, &m.Location, &m.Destination, &m.SellerID,
		&m.NoteID, &m.ReturnID, &m.ReversalOf, &m.Reason, &m.CreatedAt, &m.CreatedBy)
}

// Create persiste un movimiento. El log es append-oriented: después de crear,
// solo el status cambia.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Kind, movement.Status, movement.ProductID, movement.ProductSKU, movement.ProductName,
		movement.Quantity, movement.UnitCost, movement.UnitPrice, movement.Location, movement.Destination, movement.SellerID,
		movement.NoteID, movement.ReturnID, movement.ReversalOf, movement.Reason, movement.CreatedAt, movement.CreatedBy)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	if err := scanMovement(r.q.QueryRow(context.Background(), query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByProduct lista los movimientos de un producto, recientes primero.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListForReplay devuelve movimientos en orden de creación para reconciliar.
// location matchea ubicación principal o destino; filtros vacíos no aplican.
func (r *MovementRepo) ListForReplay(productID, location string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	if productID != "" {
		args = append(args, productID)
		query += fmt.Sprintf(` AND product_id = $%d`, len(args))
	}
	if location != "" {
		args = append(args, location)
		query += fmt.Sprintf(` AND (location = $%d OR destination = $%d)`, len(args), len(args))
	}
	query += ` ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements for replay: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// SumExitQuantities suma líneas EXIT_NOTE del producto en los estados dados
// (cálculo de comprometido, recomputado en cada llamada por diseño).
func (r *MovementRepo) SumExitQuantities(productID, location string, statuses []string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM movements
		WHERE kind = $1 AND product_id = $2 AND status = ANY($3)`
	args := []any{entity.MovementKindExitNote, productID, statuses}
	if location != "" {
		query += ` AND location = $4`
		args = append(args, location)
	}
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum exit quantities: %w", err)
	}
	return sum, nil
}

// UpdateStatusGuarded transiciona el status solo si el actual coincide.
func (r *MovementRepo) UpdateStatusGuarded(id, from, to string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE movements SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update movement status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatusByNote sincroniza el status de las líneas de una nota.
func (r *MovementRepo) UpdateStatusByNote(noteID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE movements SET status = $1 WHERE note_id = $2 AND kind = $3`,
		status, noteID, entity.MovementKindExitNote)
	if err != nil {
		return fmt.Errorf("update movements by note: %w", err)
	}
	return nil
}

// UpdateStatusByReturn sincroniza el status de las líneas de una devolución.
func (r *MovementRepo) UpdateStatusByReturn(returnID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE movements SET status = $1 WHERE return_id = $2 AND kind = $3`,
		status, returnID, entity.MovementKindReturn)
	if err != nil {
		return fmt.Errorf("update movements by return: %w", err)
	}
	return nil
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
