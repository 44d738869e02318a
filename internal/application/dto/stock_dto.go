package dto

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// transfer_to_location_id solo aplica con type=transfer_out: correlaciona la
// salida con el transfer_in que el cliente emitirá en el destino.
type RegisterMovementRequest struct {
	ProductID            string `json:"product_id"`
	LocationID           string `json:"location_id"`
	Type                 string `json:"type"`
	Quantity             int    `json:"quantity"`
	Reference            string `json:"reference,omitempty"`
	Notes                string `json:"notes,omitempty"`
	TransferToLocationID string `json:"transfer_to_location_id,omitempty"`
}

// MovementResponse respuesta de un movimiento registrado.
type MovementResponse struct {
	NewQuantity int `json:"new_quantity"`
}

// StockLevelDTO nivel de stock de un par (producto, ubicación).
type StockLevelDTO struct {
	ProductID        string    `json:"product_id"`
	LocationID       string    `json:"location_id"`
	Quantity         int       `json:"quantity"`
	ReservedQuantity int       `json:"reserved_quantity"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StockLevelDetailDTO nivel enriquecido para listados.
type StockLevelDetailDTO struct {
	StockLevelDTO
	Product  *ProductDTO  `json:"product,omitempty"`
	Location *LocationDTO `json:"location,omitempty"`
	LowStock bool         `json:"low_stock"`
}

// MovementDTO asiento del libro de movimientos.
type MovementDTO struct {
	ID                   string    `json:"id"`
	ProductID            string    `json:"product_id"`
	LocationID           string    `json:"location_id"`
	Type                 string    `json:"type"`
	Quantity             int       `json:"quantity"`
	PreviousQuantity     int       `json:"previous_quantity"`
	NewQuantity          int       `json:"new_quantity"`
	Reference            string    `json:"reference,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	TransferToLocationID string    `json:"transfer_to_location_id,omitempty"`
	CreatedBy            string    `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewStockLevelDTO convierte la entidad a DTO.
func NewStockLevelDTO(l *entity.StockLevel) StockLevelDTO {
	return StockLevelDTO{
		ProductID:        l.ProductID,
		LocationID:       l.LocationID,
		Quantity:         l.Quantity,
		ReservedQuantity: l.ReservedQuantity,
		UpdatedAt:        l.UpdatedAt,
	}
}

// NewMovementDTO convierte la entidad a DTO.
func NewMovementDTO(m *entity.StockMovement) MovementDTO {
	return MovementDTO{
		ID:                   m.ID,
		ProductID:            m.ProductID,
		LocationID:           m.LocationID,
		Type:                 m.Type,
		Quantity:             m.Quantity,
		PreviousQuantity:     m.PreviousQuantity,
		NewQuantity:          m.NewQuantity,
		Reference:            m.Reference,
		Notes:                m.Notes,
		TransferToLocationID: m.TransferToLocationID,
		CreatedBy:            m.CreatedBy,
		CreatedAt:            m.CreatedAt,
	}
}
