package returns

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/application/inventory"
	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// UseCase gobierna las devoluciones de revendedor:
// PENDING -> APPROVED | REJECTED, más el deshacer explícito
// APPROVED -> RESTORED, válido exactamente una vez.
type UseCase struct {
	tx       inventory.TxRunner
	products repository.ProductRepository
	sellers  repository.SellerRepository
	returns  repository.ReturnRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx inventory.TxRunner, products repository.ProductRepository, sellers repository.SellerRepository, rets repository.ReturnRepository) *UseCase {
	return &UseCase{tx: tx, products: products, sellers: sellers, returns: rets}
}

// LineInput línea de devolución.
type LineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal // nil = precio de lista del producto
}

// CreateInput entrada para crear una devolución pendiente. Crearla no tiene
// efectos de stock ni de deuda; todo ocurre al aprobar.
type CreateInput struct {
	SellerID  string
	Lines     []LineInput
	CreatedBy string
}

// Create registra la devolución en PENDING con sus movimientos (efecto cero
// hasta aprobarse).
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.Return, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: devolución sin líneas", domain.ErrInvalidInput)
	}
	seller, err := uc.sellers.GetByID(input.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}
	consignment := dominv.ConsignmentLocation(seller.ID)

	products := make([]*entity.Product, len(input.Lines))
	lines := make([]entity.ReturnLine, len(input.Lines))
	for i, l := range input.Lines {
		if !l.Quantity.IsPositive() || !l.Quantity.IsInteger() {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.products.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := p.SalePrice
		if l.UnitPrice != nil {
			unitPrice = *l.UnitPrice
		}
		products[i] = p
		lines[i] = entity.ReturnLine{ProductID: p.ID, Quantity: l.Quantity, UnitPrice: unitPrice}
	}

	now := time.Now()
	ret := &entity.Return{
		ID:          uuid.New().String(),
		SellerID:    seller.ID,
		Destination: dominv.LocationDestination,
		Status:      entity.ReturnStatusPending,
		Lines:       lines,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   input.CreatedBy,
	}

	err = uc.tx.Run(ctx, func(r inventory.Repos) error {
		for i, line := range ret.Lines {
			mov := &entity.Movement{
				ID:          uuid.New().String(),
				Kind:        entity.MovementKindReturn,
				Status:      entity.ReturnStatusPending,
				ProductID:   line.ProductID,
				ProductSKU:  products[i].SKU,
				ProductName: products[i].Name,
				Quantity:    line.Quantity,
				UnitCost:    products[i].Cost,
				UnitPrice:   line.UnitPrice,
				Location:    consignment,
				Destination: ret.Destination,
				SellerID:    seller.ID,
				ReturnID:    ret.ID,
				CreatedAt:   now,
				CreatedBy:   input.CreatedBy,
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}
		}
		return r.Returns.Create(ret)
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Approve aprueba la devolución en una sola transacción: por cada línea
// libera la consignación del revendedor (falla con ErrInsufficientStock si ya
// no la tiene), acredita la bodega destino al costo estándar del producto y
// al precio registrado en la línea, y reduce la deuda del revendedor por el
// valor total con piso en cero.
func (uc *UseCase) Approve(ctx context.Context, returnID string) error {
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		ret, err := r.Returns.GetByID(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		ok, err := r.Returns.UpdateStatusGuarded(ret.ID, entity.ReturnStatusPending, entity.ReturnStatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: solo una devolución PENDING puede aprobarse", domain.ErrInvalidTransition)
		}
		consignment := dominv.ConsignmentLocation(ret.SellerID)
		now := time.Now()
		for _, line := range ret.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if _, err := dominv.ApplyDelta(r.Records, line.ProductID, consignment, line.Quantity.Neg(), nil, nil, now); err != nil {
				return err
			}
			if _, err := dominv.ApplyDelta(r.Records, line.ProductID, ret.Destination, line.Quantity, &product.Cost, &line.UnitPrice, now); err != nil {
				return err
			}
		}
		if err := r.Movements.UpdateStatusByReturn(ret.ID, entity.ReturnStatusApproved); err != nil {
			return err
		}
		if _, err := r.Sellers.AdjustDebt(ret.SellerID, ret.TotalValue().Neg()); err != nil {
			return err
		}
		return nil
	})
}

// Reject rechaza la devolución: terminal, sin efectos de stock ni deuda.
func (uc *UseCase) Reject(ctx context.Context, returnID string) error {
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		ret, err := r.Returns.GetByID(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		ok, err := r.Returns.UpdateStatusGuarded(ret.ID, entity.ReturnStatusPending, entity.ReturnStatusRejected)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: solo una devolución PENDING puede rechazarse", domain.ErrInvalidTransition)
		}
		return r.Movements.UpdateStatusByReturn(ret.ID, entity.ReturnStatusRejected)
	})
}

// Restore deshace una aprobación: el inverso exacto. Retira el stock de la
// bodega destino (ErrInsufficientStock si la bodega ya no lo tiene es un
// fallo legítimo y reportable; la transacción completa se revierte), lo
// devuelve a la consignación y re-aumenta la deuda por el valor total.
// Solo es legal desde APPROVED: deshacer una devolución ya restaurada falla
// con ErrAlreadyReversed, y una rechazada con ErrInvalidTransition.
func (uc *UseCase) Restore(ctx context.Context, returnID, by string) error {
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		ret, err := r.Returns.GetByID(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		ok, err := r.Returns.UpdateStatusGuarded(ret.ID, entity.ReturnStatusApproved, entity.ReturnStatusRestored)
		if err != nil {
			return err
		}
		if !ok {
			if ret.Status == entity.ReturnStatusRestored {
				return domain.ErrAlreadyReversed
			}
			return fmt.Errorf("%w: solo una devolución APPROVED puede restaurarse", domain.ErrInvalidTransition)
		}
		consignment := dominv.ConsignmentLocation(ret.SellerID)
		now := time.Now()
		for _, line := range ret.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			var sku, name string
			if product != nil {
				sku, name = product.SKU, product.Name
			}
			if _, err := dominv.ApplyDelta(r.Records, line.ProductID, ret.Destination, line.Quantity.Neg(), nil, nil, now); err != nil {
				return err
			}
			if _, err := dominv.ApplyDelta(r.Records, line.ProductID, consignment, line.Quantity, nil, &line.UnitPrice, now); err != nil {
				return err
			}
			reversal := &entity.Movement{
				ID:          uuid.New().String(),
				Kind:        entity.MovementKindReversal,
				Status:      entity.MovementStatusPosted,
				ProductID:   line.ProductID,
				ProductSKU:  sku,
				ProductName: name,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Location:    ret.Destination,
				SellerID:    ret.SellerID,
				ReturnID:    ret.ID,
				CreatedAt:   now,
				CreatedBy:   by,
			}
			if err := r.Movements.Create(reversal); err != nil {
				return err
			}
		}
		if err := r.Movements.UpdateStatusByReturn(ret.ID, entity.ReturnStatusRestored); err != nil {
			return err
		}
		if _, err := r.Sellers.AdjustDebt(ret.SellerID, ret.TotalValue()); err != nil {
			return err
		}
		return nil
	})
}

// GetByID devuelve una devolución con sus líneas.
func (uc *UseCase) GetByID(returnID string) (*entity.Return, error) {
	ret, err := uc.returns.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	return ret, nil
}

// List devuelve devoluciones filtradas por revendedor y/o status.
func (uc *UseCase) List(sellerID, status string, limit, offset int) ([]*entity.Return, error) {
	return uc.returns.List(sellerID, status, limit, offset)
}
