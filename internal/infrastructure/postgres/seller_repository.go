package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

var _ repository.SellerRepository = (*SellerRepo)(nil)

// SellerRepo implementación del directorio de revendedores sobre PostgreSQL.
type SellerRepo struct {
	q Querier
}

// NewSellerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerRepository(q Querier) *SellerRepo {
	return &SellerRepo{q: q}
}

// Create da de alta un revendedor.
func (r *SellerRepo) Create(seller *entity.Seller) error {
	query := `
		INSERT INTO sellers (id, name, debt, price_tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		seller.ID, seller.Name, seller.Debt, seller.PriceTier, seller.CreatedAt, seller.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create seller: %w", err)
	}
	return nil
}

// GetByID obtiene un revendedor; nil si no existe.
func (r *SellerRepo) GetByID(id string) (*entity.Seller, error) {
	query := `SELECT id, name, debt, price_tier, created_at, updated_at FROM sellers WHERE id = $1`
	var s entity.Seller
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Debt, &s.PriceTier, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &s, nil
}

// List devuelve revendedores por nombre.
func (r *SellerRepo) List(limit, offset int) ([]*entity.Seller, error) {
	query := `SELECT id, name, debt, price_tier, created_at, updated_at
		FROM sellers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Seller
	for rows.Next() {
		var s entity.Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.Debt, &s.PriceTier, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// AdjustDebt aplica un delta a la deuda con piso en cero, en un solo UPDATE
// atómico, y devuelve el revendedor actualizado.
func (r *SellerRepo) AdjustDebt(id string, delta decimal.Decimal) (*entity.Seller, error) {
	query := `
		UPDATE sellers SET debt = GREATEST(0, debt + $1), updated_at = now()
		WHERE id = $2
		RETURNING id, name, debt, price_tier, created_at, updated_at`
	var s entity.Seller
	err := r.q.QueryRow(context.Background(), query, delta, id).Scan(
		&s.ID, &s.Name, &s.Debt, &s.PriceTier, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adjust seller debt: %w", err)
	}
	return &s, nil
}
