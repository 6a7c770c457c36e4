package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementHistory  *inventory.MovementHistoryUseCase
	KardexReport     *inventory.KardexReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", productHandler.Delete)

	// Inventory: kardex (movimientos, historial, conciliación)
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementHistory, deps.KardexReport)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/kardex", inventoryHandler.KardexReport)
}
