package repository

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// MovementFilter filtros para consultas sobre el kardex.
// From y To son instantes absolutos inclusivos (la conversión desde fecha
// calendario la hace pkg/dates, no el repositorio).
type MovementFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
}

// MovementRepository puerto de persistencia para el kardex (append-only).
// No existe Update ni Delete: los movimientos son inmutables.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// List devuelve movimientos ordenados por fecha descendente, con el flag
	// de resolución de la referencia débil al producto.
	List(filter MovementFilter, limit, offset int) ([]*entity.MovementView, error)
	Count(filter MovementFilter) (int, error)
	// ListUpTo devuelve todos los movimientos con fecha <= to, ordenados
	// ascendente. Scan sin cota inferior: solo lo usa la conciliación, que
	// necesita la historia completa para calcular saldos de apertura.
	ListUpTo(to time.Time) ([]*entity.Movement, error)
}
