package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
}
