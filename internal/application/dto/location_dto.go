package dto

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// LocationDTO representación HTTP de una ubicación.
type LocationDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLocationDTO convierte la entidad a DTO.
func NewLocationDTO(l *entity.Location) *LocationDTO {
	if l == nil {
		return nil
	}
	return &LocationDTO{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
	}
}
