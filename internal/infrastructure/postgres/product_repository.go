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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del catálogo sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, cost, sale_price, unit_weight, unit_volume,
	is_consolidated, child_ids, created_at, updated_at`

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Cost, &p.SalePrice,
		&p.UnitWeight, &p.UnitVolume, &p.IsConsolidated, &p.ChildIDs, &p.CreatedAt, &p.UpdatedAt)
}

// Create da de alta un producto; SKU duplicado devuelve ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Cost, product.SalePrice,
		product.UnitWeight, product.UnitVolume, product.IsConsolidated, product.ChildIDs,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	if err := scanProduct(r.q.QueryRow(context.Background(), query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	var p entity.Product
	if err := scanProduct(r.q.QueryRow(context.Background(), query, sku), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $1, description = $2, sale_price = $3,
			unit_weight = $4, unit_volume = $5, updated_at = $6
		WHERE id = $7`
	tag, err := r.q.Exec(context.Background(), query,
		product.Name, product.Description, product.SalePrice,
		product.UnitWeight, product.UnitVolume, product.UpdatedAt, product.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza el costo promedio ponderado del producto.
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET cost = $1, updated_at = now() WHERE id = $2`, cost, productID)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve productos por SKU.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// SetConsolidation marca/desmarca el combo. Metadatos puros: ninguna fila de
// inventory_records se toca.
func (r *ProductRepo) SetConsolidation(productID string, consolidated bool, childIDs []string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_consolidated = $1, child_ids = $2, updated_at = now() WHERE id = $3`,
		consolidated, childIDs, productID)
	if err != nil {
		return fmt.Errorf("set consolidation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
