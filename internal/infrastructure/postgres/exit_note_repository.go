package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

var _ repository.ExitNoteRepository = (*ExitNoteRepo)(nil)

// ExitNoteRepo implementación de notas de salida sobre PostgreSQL
// (cabecera en exit_notes, líneas en exit_note_lines).
type ExitNoteRepo struct {
	q Querier
}

// NewExitNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExitNoteRepository(q Querier) *ExitNoteRepo {
	return &ExitNoteRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *ExitNoteRepo) Create(note *entity.ExitNote) error {
	query := `
		INSERT INTO exit_notes (id, source, destination, seller_id, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.Source, note.Destination, note.SellerID, note.Status,
		note.CreatedAt, note.UpdatedAt, note.CreatedBy)
	if err != nil {
		return fmt.Errorf("create exit note: %w", err)
	}
	for i, line := range note.Lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO exit_note_lines (note_id, position, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			note.ID, i, line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return fmt.Errorf("create exit note line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la nota con sus líneas; nil si no existe.
func (r *ExitNoteRepo) GetByID(id string) (*entity.ExitNote, error) {
	query := `SELECT id, source, destination, seller_id, status, created_at, updated_at, created_by
		FROM exit_notes WHERE id = $1`
	var n entity.ExitNote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.Source, &n.Destination, &n.SellerID, &n.Status, &n.CreatedAt, &n.UpdatedAt, &n.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exit note: %w", err)
	}
	if err := r.loadLines(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// List devuelve notas filtradas por status ("" = todas), recientes primero.
func (r *ExitNoteRepo) List(status string, limit, offset int) ([]*entity.ExitNote, error) {
	query := `SELECT id, source, destination, seller_id, status, created_at, updated_at, created_by
		FROM exit_notes`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exit notes: %w", err)
	}
	defer rows.Close()
	var out []*entity.ExitNote
	for rows.Next() {
		var n entity.ExitNote
		if err := rows.Scan(&n.ID, &n.Source, &n.Destination, &n.SellerID, &n.Status,
			&n.CreatedAt, &n.UpdatedAt, &n.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan exit note: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, n := range out {
		if err := r.loadLines(n); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateStatusGuarded transiciona el status solo si el actual coincide:
// guarda contra dos reversas o transiciones concurrentes.
func (r *ExitNoteRepo) UpdateStatusGuarded(id, from, to string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE exit_notes SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return false, fmt.Errorf("update exit note status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ExitNoteRepo) loadLines(n *entity.ExitNote) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity, unit_price FROM exit_note_lines WHERE note_id = $1 ORDER BY position`,
		n.ID)
	if err != nil {
		return fmt.Errorf("load exit note lines: %w", err)
	}
	defer rows.Close()
	n.Lines = nil
	for rows.Next() {
		var l entity.ExitNoteLine
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return fmt.Errorf("scan exit note line: %w", err)
		}
		n.Lines = append(n.Lines, l)
	}
	return rows.Err()
}
