package entity

import "time"

// Tipos de movimiento del kardex.
const (
	MovementTypeENTRY = "ENTRY" // entrada
	MovementTypeEXIT  = "EXIT"  // salida
)

// Motivos de movimiento. Extensible: se guardan como texto plano.
const (
	MovementReasonManual       = "MANUAL"        // entrada/salida manual
	MovementReasonInitialStock = "INITIAL_STOCK" // stock inicial al crear el producto
)

// Movement es un asiento del kardex: registro inmutable de una entrada o
// salida de stock. ProductID es una referencia débil (sin FK): si el producto
// se elimina del catálogo el movimiento sobrevive y se muestra con
// ProductName, el nombre del producto al momento del movimiento.
// Una vez creado, un movimiento nunca se modifica ni se borra.
type Movement struct {
	ID          string
	ProductID   string
	ProductName string // snapshot histórico del nombre
	Type        string // ENTRY, EXIT
	Quantity    int64  // siempre positivo; el signo lo da Type
	Reason      string
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// Signed devuelve la cantidad con signo: positiva para ENTRY, negativa para EXIT.
func (m *Movement) Signed() int64 {
	if m.Type == MovementTypeEXIT {
		return -m.Quantity
	}
	return m.Quantity
}

// MovementView es un movimiento enriquecido para la vista de auditoría:
// ProductResolved indica si la referencia débil aún resuelve en el catálogo.
type MovementView struct {
	Movement
	ProductResolved bool
}
