package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// committedStatuses son los estados de nota de salida cuyo stock ya está
// prometido pero aún no llegó a destino.
var committedStatuses = []string{entity.ExitNoteStatusPending, entity.ExitNoteStatusInTransit}

// AvailabilityService deriva cantidades comprometidas y disponibles desde el
// log de movimientos. Es lectura pura recomputada en cada llamada: cachear un
// contador de comprometido es exactamente la clase de bug de obsolescencia
// que este servicio reemplaza. Los callers que necesiten rendimiento deben
// memorizar por request, no persistir el resultado.
type AvailabilityService struct {
	records   repository.InventoryRecordRepository
	movements repository.MovementRepository
}

// NewAvailabilityService construye el servicio sobre cualquier par de
// repositorios (pool o atados a una tx).
func NewAvailabilityService(records repository.InventoryRecordRepository, movements repository.MovementRepository) *AvailabilityService {
	return &AvailabilityService{records: records, movements: movements}
}

// Committed devuelve la cantidad del producto prometida a notas de salida
// PENDING o IN_TRANSIT, sin importar el destino.
func (s *AvailabilityService) Committed(productID string) (decimal.Decimal, error) {
	return s.movements.SumExitQuantities(productID, "", committedStatuses)
}

// OnHand devuelve las unidades físicamente presentes en la ubicación. Bajo el
// modelo (A) el registro ya se descontó al crear la nota, pero las unidades
// comprometidas desde esta ubicación siguen físicamente aquí hasta salir.
// La ubicación se canonicaliza aquí: un alias de texto libre nunca debe leer
// un registro distinto (o inexistente) al que escriben las mutaciones.
func (s *AvailabilityService) OnHand(productID, location string) (decimal.Decimal, error) {
	location, err := dominv.Canonical(location)
	if err != nil {
		return decimal.Zero, err
	}
	rec, err := s.records.Get(productID, location)
	if err != nil {
		return decimal.Zero, err
	}
	committedFrom, err := s.movements.SumExitQuantities(productID, location, committedStatuses)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.Quantity.Add(committedFrom), nil
}

// Available devuelve max(0, OnHand - Committed): lo físicamente presente
// menos lo ya prometido. El destino no ve nada hasta que la nota se marque
// llegada; esa asimetría es intencional.
func (s *AvailabilityService) Available(productID, location string) (decimal.Decimal, error) {
	onHand, err := s.OnHand(productID, location)
	if err != nil {
		return decimal.Zero, err
	}
	committed, err := s.Committed(productID)
	if err != nil {
		return decimal.Zero, err
	}
	avail := onHand.Sub(committed)
	if avail.IsNegative() {
		return decimal.Zero, nil
	}
	return avail, nil
}
