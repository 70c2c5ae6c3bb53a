package repository

import "github.com/dvintimilla/andina-api/internal/domain/entity"

// ReturnRepository define el puerto de persistencia para devoluciones de
// revendedor (cabecera + líneas).
type ReturnRepository interface {
	Create(ret *entity.Return) error
	GetByID(id string) (*entity.Return, error)
	List(sellerID, status string, limit, offset int) ([]*entity.Return, error)
	// UpdateStatusGuarded transiciona solo si el status actual coincide;
	// devuelve false si no hubo filas afectadas.
	UpdateStatusGuarded(id, from, to string) (bool, error)
}
