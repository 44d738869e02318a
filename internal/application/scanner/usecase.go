package scanner

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SessionUseCase maneja las sesiones de escaneo masivo: acumulan N escaneos y
// al completarse confirman UN movimiento inbound agregado. addScan, complete y
// cancel se serializan por sesión (FOR UPDATE sobre la fila de la sesión) para
// que total_scanned siempre coincida con el número de registros de escaneo.
type SessionUseCase struct {
	txRunner     stock.TxRunner
	sessionRepo  repository.ScanSessionRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	engine       *stock.MovementUseCase
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	txRunner stock.TxRunner,
	sessionRepo repository.ScanSessionRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	engine *stock.MovementUseCase,
) *SessionUseCase {
	return &SessionUseCase{
		txRunner:     txRunner,
		sessionRepo:  sessionRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		engine:       engine,
	}
}

// StartSession crea una sesión activa para el actor. La unicidad "una sesión
// activa por actor" la garantiza un índice único parcial en la base: el insert
// condicional reemplaza al check-then-insert y devuelve ErrConflict en carrera.
func (uc *SessionUseCase) StartSession(ctx context.Context, productID, locationID, actorID string) (string, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return "", err
	}
	if location == nil {
		return "", domain.ErrNotFound
	}

	session := &entity.ScanSession{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LocationID: locationID,
		Status:     entity.SessionStatusActive,
		CreatedBy:  actorID,
		CreatedAt:  time.Now(),
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return "", err
	}
	return session.ID, nil
}

// AddScan añade un registro de escaneo y suma 1 a total_scanned. Devuelve el
// nuevo total. El barcode no se deduplica dentro de la sesión.
func (uc *SessionUseCase) AddScan(ctx context.Context, sessionID, barcode, actorID string) (int, error) {
	var total int
	err := uc.txRunner.RunScanner(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockLevelRepository,
		sessionRepo repository.ScanSessionRepository,
	) error {
		session, err := uc.ownedActiveSession(sessionRepo, sessionID, actorID)
		if err != nil {
			return err
		}
		if err := sessionRepo.AddScan(&entity.ScanRecord{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Barcode:   barcode,
			ScannedAt: time.Now(),
		}); err != nil {
			return err
		}
		session.TotalScanned++
		total = session.TotalScanned
		return sessionRepo.Update(session)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CompleteResult resultado de completar una sesión.
type CompleteResult struct {
	Product      *entity.Product
	TotalScanned int
}

// CompleteSession confirma la sesión: si acumuló escaneos, registra UN
// movimiento inbound por el total en la misma transacción que marca la sesión
// como completed. Una sesión vacía se completa sin tocar stock.
func (uc *SessionUseCase) CompleteSession(ctx context.Context, sessionID, actorID string) (*CompleteResult, error) {
	var result CompleteResult
	var productID string
	err := uc.txRunner.RunScanner(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
		sessionRepo repository.ScanSessionRepository,
	) error {
		session, err := uc.ownedActiveSession(sessionRepo, sessionID, actorID)
		if err != nil {
			return err
		}
		now := time.Now()
		if session.TotalScanned > 0 {
			_, err := stock.ApplyInTx(movRepo, levelRepo, stock.MovementInput{
				ProductID:  session.ProductID,
				LocationID: session.LocationID,
				Type:       entity.MovementTypeInbound,
				Quantity:   session.TotalScanned,
				Reference:  "Bulk Barcode Scan",
				Notes:      fmt.Sprintf("Sesión de escaneo masivo con %d unidades", session.TotalScanned),
				ActorID:    actorID,
			}, now)
			if err != nil {
				return err
			}
		}
		session.Status = entity.SessionStatusCompleted
		session.CompletedAt = &now
		if err := sessionRepo.Update(session); err != nil {
			return err
		}
		result.TotalScanned = session.TotalScanned
		productID = session.ProductID
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Product, err = uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelSession marca la sesión como cancelled sin tocar stock: las unidades
// escaneadas-pero-canceladas quedan fuera del stock para siempre; solo
// sobreviven los registros de escaneo como pista de auditoría.
func (uc *SessionUseCase) CancelSession(ctx context.Context, sessionID, actorID string) error {
	return uc.txRunner.RunScanner(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockLevelRepository,
		sessionRepo repository.ScanSessionRepository,
	) error {
		session, err := uc.ownedActiveSession(sessionRepo, sessionID, actorID)
		if err != nil {
			return err
		}
		now := time.Now()
		session.Status = entity.SessionStatusCancelled
		session.CompletedAt = &now
		return sessionRepo.Update(session)
	})
}

// ownedActiveSession bloquea la sesión y aplica los chequeos de propiedad y
// estado. Sesión ajena y sesión inexistente responden igual (ErrSessionAccess)
// para no revelar existencia.
func (uc *SessionUseCase) ownedActiveSession(sessionRepo repository.ScanSessionRepository, sessionID, actorID string) (*entity.ScanSession, error) {
	session, err := sessionRepo.GetForUpdate(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.CreatedBy != actorID {
		return nil, domain.ErrSessionAccess
	}
	if session.Status != entity.SessionStatusActive {
		return nil, domain.ErrSessionNotActive
	}
	return session, nil
}

// ActiveSession devuelve la sesión activa del actor enriquecida, o nil.
func (uc *SessionUseCase) ActiveSession(ctx context.Context, actorID string) (*entity.ScanSessionDetail, error) {
	session, err := uc.sessionRepo.GetActiveByActor(actorID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	detail := &entity.ScanSessionDetail{ScanSession: *session}
	if detail.Product, err = uc.productRepo.GetByID(session.ProductID); err != nil {
		return nil, err
	}
	if detail.Location, err = uc.locationRepo.GetByID(session.LocationID); err != nil {
		return nil, err
	}
	return detail, nil
}

// SessionBarcodes lista los escaneos de una sesión del actor, del más reciente
// al más antiguo.
func (uc *SessionUseCase) SessionBarcodes(ctx context.Context, sessionID, actorID string) ([]*entity.ScanRecord, error) {
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.CreatedBy != actorID {
		return nil, domain.ErrSessionAccess
	}
	return uc.sessionRepo.ListScans(sessionID, false)
}

// SingleScanResult resultado del escaneo unitario.
type SingleScanResult struct {
	Type    string // "existing" | "new"
	Product *entity.Product
	Message string
}

// SingleScan es el atajo de escaneo unitario: barcode conocido suma 1 unidad
// (inbound); barcode desconocido registra un producto nuevo con datos
// placeholder y NO mueve stock (el producto nuevo arranca en cero).
func (uc *SessionUseCase) SingleScan(ctx context.Context, barcode, locationID, actorID string) (*SingleScanResult, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product != nil {
		if _, err := uc.engine.ApplyMovement(ctx, stock.MovementInput{
			ProductID:  product.ID,
			LocationID: locationID,
			Type:       entity.MovementTypeInbound,
			Quantity:   1,
			Reference:  "Barcode Scan",
			Notes:      "Incremento por escaneo unitario",
			ActorID:    actorID,
		}); err != nil {
			return nil, err
		}
		return &SingleScanResult{
			Type:    "existing",
			Product: product,
			Message: fmt.Sprintf("Se añadió 1 unidad de %s", product.Name),
		}, nil
	}

	now := time.Now()
	newProduct := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          generateSKU(now),
		Barcode:      barcode,
		Name:         "Product " + barcode,
		UnitPrice:    decimal.Zero,
		ReorderLevel: 10,
		IsActive:     true,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(newProduct); err != nil {
		return nil, err
	}
	return &SingleScanResult{
		Type:    "new",
		Product: newProduct,
		Message: fmt.Sprintf("Producto nuevo creado con barcode %s", barcode),
	}, nil
}

const skuRandomChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateSKU compone un SKU placeholder: "SKU" + últimos 6 dígitos del
// timestamp en milisegundos + 3 caracteres aleatorios.
func generateSKU(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = skuRandomChars[rand.Intn(len(skuRandomChars))]
	}
	return "SKU" + millis[len(millis)-6:] + string(suffix)
}
