package dto

// PageRequest paginación para listados (página 1-indexada).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// DefaultPage aplica valores por defecto si Page/PageSize son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset devuelve el desplazamiento SQL equivalente.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP. Available solo se emite en
// INSUFFICIENT_STOCK, con el stock disponible al momento del rechazo.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available *int64 `json:"available,omitempty"`
}
