package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// MovementFilter filtros para listar movimientos (excluyentes en el original;
// aquí se combinan con AND cuando vienen varios).
type MovementFilter struct {
	ProductID  string
	LocationID string
	Type       string
	Limit      int // 0 = 50
}

// StockMovementRepository define el puerto del libro de movimientos.
// Solo inserta y lista: los asientos nunca se editan ni se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// List devuelve movimientos del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// ListByPair devuelve los movimientos de un par en orden de creación
	// ascendente (para reconstruir el nivel por replay).
	ListByPair(productID, locationID string) ([]*entity.StockMovement, error)
}
