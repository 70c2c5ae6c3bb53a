package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/catalog"
	"github.com/dvintimilla/andina-api/internal/application/inventory"
	"github.com/dvintimilla/andina-api/internal/application/reconcile"
	"github.com/dvintimilla/andina-api/internal/application/returns"
	"github.com/dvintimilla/andina-api/internal/application/sales"
	"github.com/dvintimilla/andina-api/internal/application/sellers"
	"github.com/dvintimilla/andina-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC      *catalog.UseCase
	LedgerUC       *inventory.LedgerUseCase
	Availability   *inventory.AvailabilityService
	SalesUC        *sales.UseCase
	TransferUC     *transfer.UseCase
	ReturnsUC      *returns.UseCase
	SellersUC      *sellers.UseCase
	ReconcileUC    *reconcile.Engine
	ReportRenderer reconcile.ReportRenderer
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products / catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/consolidate", productHandler.Consolidate)
	products.Delete("/:id/consolidate", productHandler.Unconsolidate)

	// Inventory: entradas, correcciones, overrides y vistas derivadas
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.Availability)
	inv.Post("/entries", inventoryHandler.RegisterEntry)
	inv.Post("/corrections", inventoryHandler.RegisterCorrection)
	inv.Post("/records/override", inventoryHandler.OverrideQuantity)
	inv.Get("/records", inventoryHandler.ListRecords)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/availability", inventoryHandler.Availability)

	// Exit notes / traslados
	notes := protected.Group("/exit-notes")
	exitNoteHandler := NewExitNoteHandler(deps.TransferUC)
	notes.Post("/", exitNoteHandler.Create)
	notes.Get("/", exitNoteHandler.List)
	notes.Get("/:id", exitNoteHandler.GetByID)
	notes.Put("/:id/status", exitNoteHandler.UpdateStatus)
	notes.Post("/:id/cancel", exitNoteHandler.Cancel)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Returns / devoluciones de revendedor
	rets := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnsUC)
	rets.Post("/", returnHandler.Create)
	rets.Get("/", returnHandler.List)
	rets.Get("/:id", returnHandler.GetByID)
	rets.Post("/:id/approve", returnHandler.Approve)
	rets.Post("/:id/reject", returnHandler.Reject)
	rets.Post("/:id/restore", returnHandler.Restore)

	// Sellers / directorio de revendedores
	sellersGroup := protected.Group("/sellers")
	sellerHandler := NewSellerHandler(deps.SellersUC)
	sellersGroup.Post("/", sellerHandler.Create)
	sellersGroup.Get("/", sellerHandler.List)
	sellersGroup.Get("/:id", sellerHandler.GetByID)
	sellersGroup.Get("/:id/stock", sellerHandler.ConsignmentStock)

	// Reconciliation
	recon := protected.Group("/reconciliation")
	reconciliationHandler := NewReconciliationHandler(deps.ReconcileUC, deps.ReportRenderer)
	recon.Get("/run", reconciliationHandler.Run)
	recon.Get("/discrepancies", reconciliationHandler.Discrepancies)
	recon.Get("/discrepancies/pdf", reconciliationHandler.ExportPDF)
}
