package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del log de movimientos.
// El log es append-oriented: se crea una vez y solo transiciona el status.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)

	// ListForReplay devuelve movimientos en orden de creación para el replay
	// de reconciliación. productID/location vacíos no filtran; location
	// matchea tanto la ubicación principal como el destino.
	ListForReplay(productID, location string) ([]*entity.Movement, error)

	// SumExitQuantities suma cantidades de líneas EXIT_NOTE del producto en
	// los estados dados (cálculo de comprometido); location vacío no filtra
	// por origen.
	SumExitQuantities(productID, location string, statuses []string) (decimal.Decimal, error)

	// UpdateStatusGuarded transiciona el status solo si el actual coincide
	// (update condicional); devuelve false si no hubo filas afectadas.
	UpdateStatusGuarded(id, from, to string) (bool, error)

	// UpdateStatusByNote / UpdateStatusByReturn sincronizan el status de las
	// líneas con la cabecera dueña, en la misma transacción.
	UpdateStatusByNote(noteID, status string) error
	UpdateStatusByReturn(returnID, status string) error
}
