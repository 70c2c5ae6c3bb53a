package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyReversed   = errors.New("movimiento ya revertido")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrUnknownLocation   = errors.New("ubicación desconocida")
)
