package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock > 0
// genera el movimiento INITIAL_STOCK en la misma transacción.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"category_id"`
	UnitID       string          `json:"unit_id"`
	InitialStock int64           `json:"initial_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"category_id,omitempty"`
	UnitID       string          `json:"unit_id,omitempty"`
	CurrentStock int64           `json:"current_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
