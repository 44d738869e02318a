package dto

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// StartSessionRequest body para POST /api/scanner/sessions.
type StartSessionRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
}

// AddScanRequest body para POST /api/scanner/sessions/:id/scans.
type AddScanRequest struct {
	Barcode string `json:"barcode"`
}

// SingleScanRequest body para POST /api/scanner/scan.
type SingleScanRequest struct {
	Barcode    string `json:"barcode"`
	LocationID string `json:"location_id"`
}

// ScanSessionDTO representación HTTP de una sesión de escaneo.
type ScanSessionDTO struct {
	ID           string       `json:"id"`
	ProductID    string       `json:"product_id"`
	LocationID   string       `json:"location_id"`
	Status       string       `json:"status"`
	TotalScanned int          `json:"total_scanned"`
	CreatedAt    time.Time    `json:"created_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	Product      *ProductDTO  `json:"product,omitempty"`
	Location     *LocationDTO `json:"location,omitempty"`
}

// ScanRecordDTO un escaneo individual.
type ScanRecordDTO struct {
	Barcode   string    `json:"barcode"`
	ScannedAt time.Time `json:"scanned_at"`
}

// NewScanSessionDTO convierte la sesión enriquecida a DTO.
func NewScanSessionDTO(d *entity.ScanSessionDetail) ScanSessionDTO {
	return ScanSessionDTO{
		ID:           d.ID,
		ProductID:    d.ProductID,
		LocationID:   d.LocationID,
		Status:       d.Status,
		TotalScanned: d.TotalScanned,
		CreatedAt:    d.CreatedAt,
		CompletedAt:  d.CompletedAt,
		Product:      NewProductDTO(d.Product),
		Location:     NewLocationDTO(d.Location),
	}
}
