package barcode

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// Límites de un lote de barcodes.
const (
	MinBatchSize = 1
	MaxBatchSize = 1000
)

// IssueUseCase emite lotes de barcodes: genera N identificadores únicos dentro
// del lote, crea una sesión sintética ya completada con un registro por barcode
// y asienta UN movimiento inbound por el tamaño del lote, todo en una
// transacción. Es la única ruta que crea una sesión sin pasar por "active".
type IssueUseCase struct {
	txRunner     stock.TxRunner
	sessionRepo  repository.ScanSessionRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewIssueUseCase construye el caso de uso.
func NewIssueUseCase(
	txRunner stock.TxRunner,
	sessionRepo repository.ScanSessionRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *IssueUseCase {
	return &IssueUseCase{
		txRunner:     txRunner,
		sessionRepo:  sessionRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// BatchResult resultado de la emisión de un lote.
type BatchResult struct {
	SessionID string
	Barcodes  []string
	Product   *entity.Product
	Location  *entity.Location
	Quantity  int
}

// GenerateBatch genera quantity barcodes (1..1000) para un producto y siembra
// el libro con el movimiento inbound inicial del lote.
func (uc *IssueUseCase) GenerateBatch(ctx context.Context, productID, locationID string, quantity int, actorID string) (*BatchResult, error) {
	if quantity < MinBatchSize || quantity > MaxBatchSize {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	barcodes := composeBarcodes(product.SKU, now, quantity)
	sessionID := uuid.New().String()

	err = uc.txRunner.RunScanner(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
		sessionRepo repository.ScanSessionRepository,
	) error {
		// Sesión sintética: representa el lote completo, nace completada.
		session := &entity.ScanSession{
			ID:           sessionID,
			ProductID:    productID,
			LocationID:   locationID,
			Status:       entity.SessionStatusCompleted,
			TotalScanned: quantity,
			CreatedBy:    actorID,
			CreatedAt:    now,
			CompletedAt:  &now,
		}
		if err := sessionRepo.Create(session); err != nil {
			return err
		}
		for _, code := range barcodes {
			if err := sessionRepo.AddScan(&entity.ScanRecord{
				ID:        uuid.New().String(),
				SessionID: sessionID,
				Barcode:   code,
				ScannedAt: now,
			}); err != nil {
				return err
			}
		}
		_, err := stock.ApplyInTx(movRepo, levelRepo, stock.MovementInput{
			ProductID:  productID,
			LocationID: locationID,
			Type:       entity.MovementTypeInbound,
			Quantity:   quantity,
			Reference:  "Barcode Generation",
			Notes:      fmt.Sprintf("Se generaron %d barcodes únicos", quantity),
			ActorID:    actorID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BatchResult{
		SessionID: sessionID,
		Barcodes:  barcodes,
		Product:   product,
		Location:  location,
		Quantity:  quantity,
	}, nil
}

// composeBarcodes compone los identificadores del lote: SKU del producto más
// los últimos 8 dígitos de timestamp+secuencia. La secuencia estrictamente
// creciente garantiza unicidad dentro del lote; entre lotes la protege el
// timestamp compartido en milisegundos.
func composeBarcodes(sku string, batchTime time.Time, quantity int) []string {
	timestamp := batchTime.UnixMilli()
	barcodes := make([]string, 0, quantity)
	for i := 0; i < quantity; i++ {
		uniqueID := fmt.Sprintf("%d%04d", timestamp, i+1)
		barcodes = append(barcodes, sku+uniqueID[len(uniqueID)-8:])
	}
	return barcodes
}

// GeneratedBarcodes devuelve la sesión del lote con sus barcodes en orden de
// generación (para impresión de etiquetas).
func (uc *IssueUseCase) GeneratedBarcodes(ctx context.Context, sessionID string) (*BatchResult, error) {
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(session.ProductID)
	if err != nil {
		return nil, err
	}
	location, err := uc.locationRepo.GetByID(session.LocationID)
	if err != nil {
		return nil, err
	}
	records, err := uc.sessionRepo.ListScans(sessionID, true)
	if err != nil {
		return nil, err
	}
	barcodes := make([]string, 0, len(records))
	for _, r := range records {
		barcodes = append(barcodes, r.Barcode)
	}
	return &BatchResult{
		SessionID: sessionID,
		Barcodes:  barcodes,
		Product:   product,
		Location:  location,
		Quantity:  session.TotalScanned,
	}, nil
}
