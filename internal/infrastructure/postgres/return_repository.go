package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de devoluciones sobre PostgreSQL (cabecera en
// returns, líneas en return_lines).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, seller_id, destination, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.SellerID, ret.Destination, ret.Status, ret.CreatedAt, ret.UpdatedAt, ret.CreatedBy)
	if err != nil {
		return fmt.Errorf("create return: %w", err)
	}
	for i, line := range ret.Lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO return_lines (return_id, position, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			ret.ID, i, line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return fmt.Errorf("create return line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la devolución con sus líneas; nil si no existe.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := `SELECT id, seller_id, destination, status, created_at, updated_at, created_by
		FROM returns WHERE id = $1`
	var ret entity.Return
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.SellerID, &ret.Destination, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt, &ret.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	if err := r.loadLines(&ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// List devuelve devoluciones filtradas por revendedor y/o status.
func (r *ReturnRepo) List(sellerID, status string, limit, offset int) ([]*entity.Return, error) {
	query := `SELECT id, seller_id, destination, status, created_at, updated_at, created_by FROM returns WHERE 1=1`
	args := []any{}
	if sellerID != "" {
		args = append(args, sellerID)
		query += fmt.Sprintf(` AND seller_id = $%d`, len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var out []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.SellerID, &ret.Destination, &ret.Status,
			&ret.CreatedAt, &ret.UpdatedAt, &ret.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		out = append(out, &ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ret := range out {
		if err := r.loadLines(ret); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateStatusGuarded transiciona el status solo si el actual coincide.
func (r *ReturnRepo) UpdateStatusGuarded(id, from, to string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE returns SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return false, fmt.Errorf("update return status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ReturnRepo) loadLines(ret *entity.Return) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity, unit_price FROM return_lines WHERE return_id = $1 ORDER BY position`,
		ret.ID)
	if err != nil {
		return fmt.Errorf("load return lines: %w", err)
	}
	defer rows.Close()
	ret.Lines = nil
	for rows.Next() {
		var l entity.ReturnLine
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return fmt.Errorf("scan return line: %w", err)
		}
		ret.Lines = append(ret.Lines, l)
	}
	return rows.Err()
}
