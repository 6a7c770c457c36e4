package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrProductNotFound = errors.New("producto no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidQuantity = errors.New("cantidad inválida: debe ser un entero positivo")
	ErrDuplicate       = errors.New("recurso duplicado")
)

// InsufficientStockError indica que una salida excede el stock disponible.
// Incluye la cantidad disponible para que el caller pueda informarla.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d", e.Available)
}
