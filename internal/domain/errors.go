package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("operación no permitida en el estado actual")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrBelowReserved     = errors.New("la cantidad no puede quedar por debajo de lo reservado")
	ErrBusinessRule      = errors.New("regla de negocio violada")
)

// NotFoundError identifica la entidad ausente. errors.Is(err, ErrNotFound) es verdadero.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InsufficientStockError lleva las cifras de disponible y requerido para el cliente.
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Available  int
	Required   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, requerido %d",
		e.ProductID, e.Available, e.Required)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError describe una transición rechazada por el estado actual del agregado.
type InvalidStateError struct {
	Entity    string
	Status    string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s en estado %s no admite %s", e.Entity, e.Status, e.Operation)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// BusinessRuleError regla de negocio incumplida (ej. "no items").
type BusinessRuleError struct {
	Rule string
}

func (e *BusinessRuleError) Error() string {
	return "regla de negocio: " + e.Rule
}

func (e *BusinessRuleError) Unwrap() error { return ErrBusinessRule }

// BelowReservedError ajuste absoluto por debajo de la cantidad reservada.
type BelowReservedError struct {
	Requested int
	Reserved  int
}

func (e *BelowReservedError) Error() string {
	return fmt.Sprintf("no se puede ajustar a %d: hay %d unidades reservadas", e.Requested, e.Reserved)
}

func (e *BelowReservedError) Unwrap() error { return ErrBelowReserved }
