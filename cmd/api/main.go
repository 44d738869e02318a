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
	"github.com/jhoicas/Bodega-api/internal/application/barcode"
	"github.com/jhoicas/Bodega-api/internal/application/scanner"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	sessionRepo := postgres.NewScanSessionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := stock.NewMovementUseCase(txRunner, productRepo, locationRepo, levelRepo, movRepo)
	scannerUC := scanner.NewSessionUseCase(txRunner, sessionRepo, productRepo, locationRepo, stockUC)
	barcodeUC := barcode.NewIssueUseCase(txRunner, sessionRepo, productRepo, locationRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI si existe la spec generada
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		LocationUC: locationUC,
		StockUC:    stockUC,
		ScannerUC:  scannerUC,
		BarcodeUC:  barcodeUC,
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
		JWTExpMin:  cfg.JWT.Expiration,
	})

	// Apagado ordenado: SIGINT/SIGTERM cierran el servidor y el pool
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("señal recibida, apagando")
		_ = app.Shutdown()
	}()

	addr := cfg.HTTP.Addr()
	log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
	log.Info().Msg("aplicación detenida")
}
