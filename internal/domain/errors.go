package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrReferentialConflict = errors.New("el recurso está referenciado por transacciones existentes")
	ErrAllocationConflict  = errors.New("conflicto al asignar el número de documento")
)

// NotFoundError identifica la entidad y el id que no se pudo resolver.
// errors.Is(err, ErrNotFound) sigue funcionando.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFound construye el error para la entidad e id dados.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s no encontrado", e.Entity)
	}
	return fmt.Sprintf("%s %q no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Invalid envuelve ErrInvalidInput con el detalle del campo.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
