package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`     // ENTRY, EXIT
	Quantity  int64  `json:"quantity"` // entero positivo
}

// RegisterMovementResponse salida de un movimiento registrado.
type RegisterMovementResponse struct {
	NewStock int64 `json:"new_stock"`
}

// HistoryRequest query params para GET /api/inventory/movements.
type HistoryRequest struct {
	PageRequest
	ProductID string `query:"product_id"`
	From      string `query:"from"` // fecha calendario 2006-01-02, inclusiva
	To        string `query:"to"`
}

// MovementRowDTO fila del historial de movimientos para auditoría.
// ProductName es el snapshot histórico; ProductResolved indica si el producto
// aún existe en el catálogo (false = movimiento huérfano).
type MovementRowDTO struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductResolved bool      `json:"product_resolved"`
	Type            string    `json:"type"`
	Quantity        int64     `json:"quantity"`
	Reason          string    `json:"reason"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       string    `json:"created_by,omitempty"`
}

// MovementHistoryResponse listado paginado del historial.
type MovementHistoryResponse struct {
	Items []MovementRowDTO `json:"items"`
	Page  PageResponse     `json:"page"`
}

// KardexRowDTO fila del reporte de conciliación por producto. Datos tabulares
// planos: los exportadores (CSV/PDF) viven fuera del núcleo.
type KardexRowDTO struct {
	ProductID    string `json:"product_id,omitempty"` // vacío si el producto fue eliminado
	ProductName  string `json:"product_name"`
	Deleted      bool   `json:"deleted"`
	OpeningStock int64  `json:"opening_stock"`
	Entries      int64  `json:"entries"`
	Exits        int64  `json:"exits"`
	ClosingStock int64  `json:"closing_stock"`
}

// KardexReportResponse reporte de conciliación sobre un rango de fechas.
type KardexReportResponse struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Items []KardexRowDTO `json:"items"`
}
