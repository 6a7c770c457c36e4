package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. CurrentStock es la proyección
// del kardex: debe ser siempre igual a la suma con signo de todos los
// movimientos del producto, y solo el motor de inventario lo escribe.
// CategoryID y UnitID son referencias al catálogo maestro (gestionado fuera).
type Product struct {
	ID           string
	Name         string
	Price        decimal.Decimal // precio de venta
	CategoryID   string
	UnitID       string
	CurrentStock int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
