package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// LocationUseCase CRUD mínimo de ubicaciones/bodegas.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create valida y persiste una ubicación nueva.
func (uc *LocationUseCase) Create(name, address, actorID string) (*entity.Location, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   address,
		IsActive:  true,
		CreatedBy: actorID,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetByID obtiene una ubicación; ErrNotFound si no existe.
func (uc *LocationUseCase) GetByID(id string) (*entity.Location, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return location, nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) ([]*entity.Location, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(limit, offset)
}
