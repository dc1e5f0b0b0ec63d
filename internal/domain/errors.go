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
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError detalla un faltante de stock: cuánto se solicitó y
// cuánto quedó sin cubrir tras recorrer todos los lotes elegibles.
// Compatible con errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	Requested int // cantidad solicitada
	Shortfall int // cantidad que no se pudo cubrir
}

// NewInsufficientStock construye el error de faltante.
func NewInsufficientStock(requested, shortfall int) *InsufficientStockError {
	return &InsufficientStockError{Requested: requested, Shortfall: shortfall}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solicitado=%d, faltante=%d", e.Requested, e.Shortfall)
}

// Is permite comparar contra el centinela ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
