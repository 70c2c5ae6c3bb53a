package repository

import "github.com/dvintimilla/andina-api/internal/domain/entity"

// ExitNoteRepository define el puerto de persistencia para notas de salida
// (cabecera + líneas).
type ExitNoteRepository interface {
	Create(note *entity.ExitNote) error
	GetByID(id string) (*entity.ExitNote, error)
	// List filtra por status; vacío lista todo.
	List(status string, limit, offset int) ([]*entity.ExitNote, error)
	// UpdateStatusGuarded transiciona solo si el status actual coincide
	// (update condicional, guarda contra reversas concurrentes); devuelve
	// false si no hubo filas afectadas.
	UpdateStatusGuarded(id, from, to string) (bool, error)
}
