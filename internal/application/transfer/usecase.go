package transfer

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

// UseCase gobierna el workflow de notas de salida (traslados):
// PENDING -> IN_TRANSIT -> ARRIVED | COMPLETED, y PENDING -> CANCELLED.
//
// Contrato modelo (A): crear la nota descuenta el origen de inmediato; el
// cálculo de comprometido existe precisamente para que ese stock ya
// descontado siga visible como "presente pero prometido" en el origen, y el
// destino no lo vea hasta marcarse la llegada.
type UseCase struct {
	tx        inventory.TxRunner
	products  repository.ProductRepository
	sellers   repository.SellerRepository
	exitNotes repository.ExitNoteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx inventory.TxRunner, products repository.ProductRepository, sellers repository.SellerRepository, exitNotes repository.ExitNoteRepository) *UseCase {
	return &UseCase{tx: tx, products: products, sellers: sellers, exitNotes: exitNotes}
}

// LineInput línea de una nota de salida.
type LineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal // nil = precio de lista del producto
}

// CreateInput entrada para crear una nota de salida. Con SellerID el destino
// es la consignación de ese revendedor; si no, Destination debe ser una
// bodega. Source vacío = bodega origen.
type CreateInput struct {
	Source      string
	Destination string
	SellerID    string
	Lines       []LineInput
	CreatedBy   string
}

// transiciones positivas permitidas; cancelar es un camino aparte.
var allowedTransitions = map[string][]string{
	entity.ExitNoteStatusPending:   {entity.ExitNoteStatusInTransit},
	entity.ExitNoteStatusInTransit: {entity.ExitNoteStatusArrived, entity.ExitNoteStatusCompleted},
	entity.ExitNoteStatusArrived:   {entity.ExitNoteStatusCompleted},
}

func transitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Create valida cada línea contra la cantidad disponible en el origen,
// descuenta de inmediato (modelo A) y persiste la nota PENDING junto con sus
// movimientos. Cualquier línea sin stock disponible aborta la transacción
// completa con ErrInsufficientStock y el Store queda sin cambios.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.ExitNote, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: nota sin líneas", domain.ErrInvalidInput)
	}
	source := input.Source
	if source == "" {
		source = dominv.LocationOrigin
	}
	source, err := dominv.Canonical(source)
	if err != nil {
		return nil, err
	}

	var destination string
	if input.SellerID != "" {
		seller, err := uc.sellers.GetByID(input.SellerID)
		if err != nil {
			return nil, err
		}
		if seller == nil {
			return nil, domain.ErrNotFound
		}
		destination = dominv.ConsignmentLocation(seller.ID)
	} else {
		destination, err = dominv.Canonical(input.Destination)
		if err != nil {
			return nil, err
		}
		if !dominv.IsWarehouse(destination) {
			return nil, fmt.Errorf("%w: destino debe ser bodega o revendedor", domain.ErrInvalidInput)
		}
	}
	if destination == source {
		return nil, fmt.Errorf("%w: origen y destino iguales", domain.ErrInvalidInput)
	}

	// Resolver productos y precios fuera de la transacción.
	products := make([]*entity.Product, len(input.Lines))
	lines := make([]entity.ExitNoteLine, len(input.Lines))
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
		lines[i] = entity.ExitNoteLine{ProductID: p.ID, Quantity: l.Quantity, UnitPrice: unitPrice}
	}

	now := time.Now()
	note := &entity.ExitNote{
		ID:          uuid.New().String(),
		Source:      source,
		Destination: destination,
		SellerID:    input.SellerID,
		Status:      entity.ExitNoteStatusPending,
		Lines:       lines,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   input.CreatedBy,
	}

	err = uc.tx.Run(ctx, func(r inventory.Repos) error {
		avail := inventory.NewAvailabilityService(r.Records, r.Movements)
		for i, line := range note.Lines {
			available, err := avail.Available(line.ProductID, source)
			if err != nil {
				return err
			}
			if line.Quantity.GreaterThan(available) {
				return fmt.Errorf("%w: %s disponible %s, se pidió %s",
					domain.ErrInsufficientStock, line.ProductID, available, line.Quantity)
			}
			if _, err := dominv.ApplyDelta(r.Records, line.ProductID, source, line.Quantity.Neg(), nil, nil, now); err != nil {
				return err
			}
			mov := &entity.Movement{
				ID:          uuid.New().String(),
				Kind:        entity.MovementKindExitNote,
				Status:      entity.ExitNoteStatusPending,
				ProductID:   line.ProductID,
				ProductSKU:  products[i].SKU,
				ProductName: products[i].Name,
				Quantity:    line.Quantity,
				UnitCost:    products[i].Cost,
				UnitPrice:   line.UnitPrice,
				Location:    source,
				Destination: destination,
				SellerID:    input.SellerID,
				NoteID:      note.ID,
				CreatedAt:   now,
				CreatedBy:   input.CreatedBy,
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}
		}
		return r.ExitNotes.Create(note)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateStatus avanza la nota por el workflow con un update condicional de
// status. La primera transición a ARRIVED o COMPLETED acredita el destino —
// el único punto donde el stock de destino sube; para traslados a revendedor
// eso acredita su registro de consignación.
func (uc *UseCase) UpdateStatus(ctx context.Context, noteID, newStatus string) error {
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		note, err := r.ExitNotes.GetByID(noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		if !transitionAllowed(note.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, note.Status, newStatus)
		}
		ok, err := r.ExitNotes.UpdateStatusGuarded(note.ID, note.Status, newStatus)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: la nota cambió de estado concurrentemente", domain.ErrInvalidTransition)
		}
		if err := r.Movements.UpdateStatusByNote(note.ID, newStatus); err != nil {
			return err
		}

		// Acreditar destino solo al entrar por primera vez a un estado de
		// llegada (desde IN_TRANSIT). ARRIVED -> COMPLETED es puro status.
		arriving := note.Status == entity.ExitNoteStatusInTransit &&
			(newStatus == entity.ExitNoteStatusArrived || newStatus == entity.ExitNoteStatusCompleted)
		if !arriving {
			return nil
		}
		now := time.Now()
		for _, line := range note.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if _, err := dominv.ApplyDelta(r.Records, line.ProductID, note.Destination, line.Quantity, &product.Cost, &line.UnitPrice, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// Cancel revierte el descuento original exactamente una vez. Solo es legal
// desde PENDING: después de IN_TRANSIT la nota debe llegar a un estado
// terminal positivo y deshacerse vía corrección, nunca cancelarse en
// silencio. Un segundo intento sobre una nota ya cancelada devuelve
// ErrAlreadyReversed y no toca el Store.
func (uc *UseCase) Cancel(ctx context.Context, noteID, by string) error {
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		note, err := r.ExitNotes.GetByID(noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		ok, err := r.ExitNotes.UpdateStatusGuarded(note.ID, entity.ExitNoteStatusPending, entity.ExitNoteStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			if note.Status == entity.ExitNoteStatusCancelled {
				return domain.ErrAlreadyReversed
			}
			return fmt.Errorf("%w: solo una nota PENDING puede cancelarse", domain.ErrInvalidTransition)
		}
		if err := r.Movements.UpdateStatusByNote(note.ID, entity.ExitNoteStatusCancelled); err != nil {
			return err
		}
		now := time.Now()
		for _, line := range note.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			var sku, name string
			if product != nil {
				sku, name = product.SKU, product.Name
			}
			if _, err := dominv.ApplyDelta(r.Records, line.ProductID, note.Source, line.Quantity, nil, nil, now); err != nil {
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
				Location:    note.Source,
				NoteID:      note.ID,
				CreatedAt:   now,
				CreatedBy:   by,
			}
			if err := r.Movements.Create(reversal); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID devuelve una nota con sus líneas.
func (uc *UseCase) GetByID(noteID string) (*entity.ExitNote, error) {
	note, err := uc.exitNotes.GetByID(noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return note, nil
}

// List devuelve notas filtradas por status ("" = todas).
func (uc *UseCase) List(status string, limit, offset int) ([]*entity.ExitNote, error) {
	return uc.exitNotes.List(status, limit, offset)
}
