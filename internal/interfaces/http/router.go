package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Perecederos-api/internal/application/inventory"
	"github.com/jhoicas/Perecederos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	InventoryUC   *inventory.UseCase
	AuditUC       *inventory.AuditUseCase
	AuditDefaults AuditDefaults
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/discontinue", productHandler.Discontinue)
	products.Post("/:id/activate", productHandler.Activate)
	products.Post("/:id/pause", productHandler.Pause)

	// Inventory
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/receive", inventoryHandler.Receive)
	inv.Post("/consume", inventoryHandler.Consume)
	inv.Post("/sale", inventoryHandler.ConsumeForSale)
	inv.Get("/summaries", inventoryHandler.Summaries)
	inv.Get("/expiring", inventoryHandler.Expiring)
	inv.Post("/dispose-expired", inventoryHandler.DisposeExpired)
	inv.Get("/products/:id/batches", inventoryHandler.Batches)
	inv.Get("/products/:id/summary", inventoryHandler.Summary)
	inv.Get("/products/:id/logs", inventoryHandler.Logs)

	// Audit
	audit := api.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditUC, deps.AuditDefaults)
	audit.Get("/recommendations", auditHandler.Recommendations)
	audit.Get("/checklist", auditHandler.Checklist)
	audit.Post("/batches/:id/check", auditHandler.MarkChecked)
}
