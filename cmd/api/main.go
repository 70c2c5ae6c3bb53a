package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dvintimilla/andina-api/internal/application/catalog"
	"github.com/dvintimilla/andina-api/internal/application/inventory"
	"github.com/dvintimilla/andina-api/internal/application/reconcile"
	"github.com/dvintimilla/andina-api/internal/application/returns"
	"github.com/dvintimilla/andina-api/internal/application/sales"
	"github.com/dvintimilla/andina-api/internal/application/sellers"
	"github.com/dvintimilla/andina-api/internal/application/transfer"
	infrapdf "github.com/dvintimilla/andina-api/internal/infrastructure/pdf"
	"github.com/dvintimilla/andina-api/internal/infrastructure/postgres"
	httpRouter "github.com/dvintimilla/andina-api/internal/interfaces/http"
	"github.com/dvintimilla/andina-api/pkg/config"
	"github.com/dvintimilla/andina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	recordRepo := postgres.NewInventoryRecordRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	exitNoteRepo := postgres.NewExitNoteRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	sellerRepo := postgres.NewSellerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(productRepo)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, productRepo, recordRepo, movementRepo)
	availability := inventory.NewAvailabilityService(recordRepo, movementRepo)
	salesUC := sales.NewUseCase(txRunner, productRepo)
	transferUC := transfer.NewUseCase(txRunner, productRepo, sellerRepo, exitNoteRepo)
	returnsUC := returns.NewUseCase(txRunner, productRepo, sellerRepo, returnRepo)
	sellersUC := sellers.NewUseCase(sellerRepo, recordRepo)
	reconcileEngine := reconcile.NewEngine(recordRepo, movementRepo, productRepo)

	// PDF: reporte imprimible de discrepancias para el conteo físico
	reportRenderer := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Andina Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:      catalogUC,
		LedgerUC:       ledgerUC,
		Availability:   availability,
		SalesUC:        salesUC,
		TransferUC:     transferUC,
		ReturnsUC:      returnsUC,
		SellersUC:      sellersUC,
		ReconcileUC:    reconcileEngine,
		ReportRenderer: reportRenderer,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
