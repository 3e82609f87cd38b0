package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOrderNotPending    = errors.New("la orden no está pendiente")
)

// FormulaRef identifica una fórmula por código y nombre, para mensajes al usuario.
type FormulaRef struct {
	ID   string
	Code string
	Name string
}

// MaterialInUseError bloquea el borrado de una materia prima referenciada por
// al menos una fórmula. El caller debe quitar las referencias primero; no es
// un error reintentable.
type MaterialInUseError struct {
	MaterialID string
	Formulas   []FormulaRef
}

func (e *MaterialInUseError) Error() string {
	return fmt.Sprintf("materia prima %s referenciada por %d fórmula(s)", e.MaterialID, len(e.Formulas))
}
