package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/barcode"
	"github.com/jhoicas/Bodega-api/internal/application/scanner"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	LocationUC *usecase.LocationUseCase
	StockUC    *stock.MovementUseCase
	ScannerUC  *scanner.SessionUseCase
	BarcodeUC  *barcode.IssueUseCase
	JWTSecret  string
	JWTIssuer  string
	JWTExpMin  int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público): emisión de tokens para actores ya autenticados fuera
	authHandler := NewAuthHandler(deps.JWTSecret, deps.JWTIssuer, deps.JWTExpMin)
	api.Post("/auth/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Stock: motor de movimientos y consultas (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/levels", stockHandler.ListLevels)
	stockGroup.Get("/levels/:productId/:locationId", stockHandler.GetLevel)

	// Scanner: sesiones masivas y escaneo unitario (protegido)
	scannerGroup := protected.Group("/scanner")
	scannerHandler := NewScannerHandler(deps.ScannerUC)
	scannerGroup.Post("/sessions", scannerHandler.StartSession)
	scannerGroup.Get("/sessions/active", scannerHandler.ActiveSession)
	scannerGroup.Post("/sessions/:id/scans", scannerHandler.AddScan)
	scannerGroup.Post("/sessions/:id/complete", scannerHandler.CompleteSession)
	scannerGroup.Post("/sessions/:id/cancel", scannerHandler.CancelSession)
	scannerGroup.Get("/sessions/:id/barcodes", scannerHandler.SessionBarcodes)
	scannerGroup.Post("/scan", scannerHandler.SingleScan)

	// Barcodes: emisión de lotes (protegido)
	barcodes := protected.Group("/barcodes")
	barcodeHandler := NewBarcodeHandler(deps.BarcodeUC)
	barcodes.Post("/generate", barcodeHandler.Generate)
	barcodes.Get("/sessions/:id", barcodeHandler.BatchSession)
}
