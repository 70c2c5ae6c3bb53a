// Package sellers implementa el directorio de revendedores: alta, consulta y
// el detalle de su stock en consignación. La deuda solo la mutan los flujos
// de devolución; aquí es de solo lectura.
package sellers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// UseCase orquesta el directorio de revendedores.
type UseCase struct {
	sellers repository.SellerRepository
	records repository.InventoryRecordRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(sellers repository.SellerRepository, records repository.InventoryRecordRepository) *UseCase {
	return &UseCase{sellers: sellers, records: records}
}

// CreateInput datos para dar de alta un revendedor.
type CreateInput struct {
	Name      string
	PriceTier string
}

// Create da de alta un revendedor con deuda cero.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.Seller, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	tier := input.PriceTier
	if tier == "" {
		tier = "minorista"
	}
	if tier != "mayorista" && tier != "minorista" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	seller := &entity.Seller{
		ID:        uuid.NewString(),
		Name:      name,
		Debt:      decimal.Zero,
		PriceTier: tier,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sellers.Create(seller); err != nil {
		return nil, fmt.Errorf("sellers: crear: %w", err)
	}
	return seller, nil
}

// GetByID devuelve el revendedor.
func (uc *UseCase) GetByID(id string) (*entity.Seller, error) {
	seller, err := uc.sellers.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("sellers: obtener %s: %w", id, err)
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}
	return seller, nil
}

// List devuelve el directorio paginado.
func (uc *UseCase) List(limit, offset int) ([]*entity.Seller, error) {
	out, err := uc.sellers.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sellers: listar: %w", err)
	}
	return out, nil
}

// ConsignmentStock devuelve los registros vivos en la ubicación de
// consignación del revendedor.
func (uc *UseCase) ConsignmentStock(id string) ([]*entity.InventoryRecord, error) {
	seller, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	records, err := uc.records.List(dominv.ConsignmentLocation(seller.ID), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("sellers: stock en consignación de %s: %w", id, err)
	}
	return records, nil
}
