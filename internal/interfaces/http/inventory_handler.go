package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/pkg/dates"
)

// InventoryHandler maneja las peticiones HTTP del kardex: registro de
// movimientos, historial de auditoría y reporte de conciliación.
type InventoryHandler struct {
	movement *inventory.RegisterMovementUseCase
	history  *inventory.MovementHistoryUseCase
	kardex   *inventory.KardexReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movement *inventory.RegisterMovementUseCase,
	history *inventory.MovementHistoryUseCase,
	kardex *inventory.KardexReportUseCase,
) *InventoryHandler {
	return &InventoryHandler{movement: movement, history: history, kardex: kardex}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (ENTRY|EXIT), quantity"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		// Cantidad no numérica cae aquí: el JSON no decodifica a entero.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cuerpo inválido: quantity debe ser un entero"})
	}
	newStock, err := h.movement.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		UserID:    actorFrom(c),
		Type:      in.Type,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{NewStock: newStock})
}

// ListMovements godoc
// @Summary      Historial de movimientos (auditoría)
// @Tags         inventory
// @Produce      json
// @Param        page        query  int     false  "Página (1-indexada)"
// @Param        page_size   query  int     false  "Tamaño de página (máx 100)"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Fecha inicio (2006-01-02, día local inclusive)"
// @Param        to          query  string  false  "Fecha fin (2006-01-02, día local inclusive)"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.HistoryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.history.ListMovements(c.Context(), in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// KardexReport godoc
// @Summary      Reporte de conciliación (kardex)
// @Description  Saldo de apertura, entradas, salidas y saldo de cierre por
//
//	producto en el rango dado, incluyendo productos eliminados
//	(agrupados por nombre histórico).
//
// @Tags         inventory
// @Produce      json
// @Param        from  query  string  true  "Fecha inicio (2006-01-02)"
// @Param        to    query  string  true  "Fecha fin (2006-01-02)"
// @Success      200  {object}  dto.KardexReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex [get]
func (h *InventoryHandler) KardexReport(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to son requeridos (2006-01-02)"})
	}
	rows, err := h.kardex.GenerateReport(c.Context(), from, to)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(dto.KardexReportResponse{From: from, To: to, Items: rows})
}

// mapInventoryError traduce errores de dominio a respuestas HTTP. Cualquier
// error no reconocido se trata como fallo de persistencia (500, sin reintento).
func mapInventoryError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, dates.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   err.Error(),
			Available: &insufficient.Available,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// actorFrom identifica quién ejecuta la operación. Sin sesiones en el núcleo:
// el caller se identifica con el header X-Actor-Id.
func actorFrom(c *fiber.Ctx) string {
	return c.Get("X-Actor-Id")
}
