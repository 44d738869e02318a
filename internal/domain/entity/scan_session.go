package entity

import "time"

// Estados de una sesión de escaneo. completed y cancelled son terminales.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// ScanSession acumula escaneos de un producto en una ubicación antes de
// confirmar un único movimiento inbound agregado. Un actor solo puede tener
// una sesión activa a la vez (índice único parcial en la base).
type ScanSession struct {
	ID           string
	ProductID    string
	LocationID   string
	Status       string
	TotalScanned int
	CreatedBy    string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// ScanRecord es un escaneo individual dentro de una sesión. El barcode crudo no
// se deduplica: escanear dos veces el mismo código suma dos unidades.
type ScanRecord struct {
	ID        string
	SessionID string
	Barcode   string
	ScannedAt time.Time
}

// ScanSessionDetail sesión enriquecida con producto y ubicación.
type ScanSessionDetail struct {
	ScanSession
	Product  *Product
	Location *Location
}
