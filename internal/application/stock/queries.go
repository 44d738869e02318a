package stock

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// GetSnapshot devuelve el nivel actual del par, o nil si el par nunca tuvo
// movimientos (ausente equivale lógicamente a cantidad 0).
func (uc *MovementUseCase) GetSnapshot(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return uc.levelRepo.Get(productID, locationID)
}

// ListLevels lista los niveles de stock enriquecidos con producto y ubicación.
// locationID vacío = todas las ubicaciones.
func (uc *MovementUseCase) ListLevels(ctx context.Context, locationID string) ([]*entity.StockLevelDetail, error) {
	return uc.levelRepo.ListDetailed(locationID)
}

// ListMovements lista el libro de movimientos del más reciente al más antiguo.
func (uc *MovementUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.movRepo.List(filter)
}
