package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// MovementUseCase es el motor de movimientos: calcula la nueva cantidad según
// el tipo, actualiza el nivel y añade el asiento al libro en una transacción
// con bloqueo de fila (SELECT FOR UPDATE) por par (producto, ubicación).
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	levelRepo    repository.StockLevelRepository
	movRepo      repository.StockMovementRepository
}

// NewMovementUseCase construye el motor.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		levelRepo:    levelRepo,
		movRepo:      movRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// TransferToLocationID solo tiene significado con Type=transfer_out: correlaciona
// la salida con el transfer_in que el cliente emite aparte en el destino.
type MovementInput struct {
	ProductID            string
	LocationID           string
	Type                 string
	Quantity             int
	Reference            string
	Notes                string
	TransferToLocationID string
	ActorID              string
}

// ApplyMovement valida las referencias, abre la transacción y aplica el
// movimiento. Devuelve la cantidad resultante del par.
//
// Un traslado NO es una operación atómica entre ubicaciones: transfer_out
// registra la salida en origen con el destino como correlación, y el cliente
// emite después un transfer_in independiente en el destino.
func (uc *MovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (int, error) {
	entry := &entity.StockMovement{
		ProductID:            input.ProductID,
		LocationID:           input.LocationID,
		Type:                 input.Type,
		Quantity:             input.Quantity,
		TransferToLocationID: input.TransferToLocationID,
	}
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	// Producto y ubicación(es) deben existir; se rechaza con ErrNotFound sin reintentos.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(input.LocationID)
	if err != nil {
		return 0, err
	}
	if location == nil {
		return 0, domain.ErrNotFound
	}
	if input.Type == entity.MovementTypeTransferOut && input.TransferToLocationID != "" {
		dest, err := uc.locationRepo.GetByID(input.TransferToLocationID)
		if err != nil {
			return 0, err
		}
		if dest == nil {
			return 0, domain.ErrNotFound
		}
	}

	var newQuantity int
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
	) error {
		newQuantity, err = ApplyInTx(movRepo, levelRepo, input, time.Now())
		return err
	})
	if err != nil {
		return 0, err
	}
	return newQuantity, nil
}

// ApplyInTx ejecuta los pasos 1-4 del motor con repositorios ya atados a la
// transacción del caller. Lo usan complete de sesión y la emisión de lotes para
// mover stock en la misma transacción que muta la sesión.
// El caller es responsable de haber validado producto y ubicación.
func ApplyInTx(
	movRepo repository.StockMovementRepository,
	levelRepo repository.StockLevelRepository,
	input MovementInput,
	now time.Time,
) (int, error) {
	// Bloquea la fila del par: dos movimientos concurrentes sobre el mismo
	// (producto, ubicación) no pueden intercalar su read-modify-write.
	level, err := levelRepo.GetForUpdate(input.ProductID, input.LocationID)
	if err != nil {
		return 0, err
	}
	previous := level.Quantity
	newQuantity := computeNewQuantity(input.Type, previous, input.Quantity)

	level.Quantity = newQuantity
	level.UpdatedAt = now
	if err := levelRepo.Upsert(level); err != nil {
		return 0, err
	}

	mov := &entity.StockMovement{
		ID:                   uuid.New().String(),
		ProductID:            input.ProductID,
		LocationID:           input.LocationID,
		Type:                 input.Type,
		Quantity:             input.Quantity,
		PreviousQuantity:     previous,
		NewQuantity:          newQuantity,
		Reference:            input.Reference,
		Notes:                input.Notes,
		TransferToLocationID: input.TransferToLocationID,
		CreatedBy:            input.ActorID,
		CreatedAt:            now,
	}
	if err := movRepo.Create(mov); err != nil {
		return 0, err
	}
	return newQuantity, nil
}

// computeNewQuantity aplica la tabla cerrada de reglas por tipo.
// outbound/transfer_out recortan en cero en lugar de rechazar el sobregiro:
// el asiento conserva la cantidad solicitada y PreviousQuantity/NewQuantity
// dejan constancia del recorte.
func computeNewQuantity(movType string, previous, quantity int) int {
	switch movType {
	case entity.MovementTypeInbound, entity.MovementTypeTransferIn:
		return previous + quantity
	case entity.MovementTypeOutbound, entity.MovementTypeTransferOut:
		if previous-quantity < 0 {
			return 0
		}
		return previous - quantity
	case entity.MovementTypeAdjustment:
		// Valor absoluto final; ignora previous.
		return quantity
	}
	return previous
}
