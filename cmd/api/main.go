package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Perecederos-api/internal/application/inventory"
	"github.com/jhoicas/Perecederos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Perecederos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Perecederos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Perecederos-api/internal/interfaces/http"
	"github.com/jhoicas/Perecederos-api/pkg/config"
	"github.com/jhoicas/Perecederos-api/pkg/logger"

	_ "github.com/jhoicas/Perecederos-api/docs"
)

// @title        Perecederos API
// @version      1.0
// @description  Inventario por lotes con vencimiento: salidas FEFO y revisión física priorizada.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	logRepo := postgres.NewInventoryLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, batchRepo, logRepo)

	// PDF: hoja de revisión imprimible del checklist de auditoría
	checklistGen := infrapdf.NewMarotoChecklistGenerator()
	auditUC := inventory.NewAuditUseCase(batchRepo, checklistGen)

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
		Title:    "Perecederos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		AuditUC:     auditUC,
		AuditDefaults: httpRouter.AuditDefaults{
			ExpiringWithinDays: cfg.Audit.ExpiringWithinDays,
			StaleAfterDays:     cfg.Audit.StaleAfterDays,
			Limit:              cfg.Audit.Limit,
		},
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
