package entity

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// Tipos de movimiento de stock.
const (
	MovementTypeInbound     = "inbound"      // entrada
	MovementTypeOutbound    = "outbound"     // salida
	MovementTypeAdjustment  = "adjustment"   // ajuste: Quantity es el valor absoluto final
	MovementTypeTransferOut = "transfer_out" // salida por traslado (lleva TransferToLocationID)
	MovementTypeTransferIn  = "transfer_in"  // entrada por traslado (llamada independiente del cliente)
)

// ValidMovementType indica si el tipo pertenece al conjunto cerrado de tipos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeInbound, MovementTypeOutbound, MovementTypeAdjustment,
		MovementTypeTransferOut, MovementTypeTransferIn:
		return true
	}
	return false
}

// StockMovement es un registro inmutable del libro de movimientos (append-only).
// PreviousQuantity y NewQuantity se capturan en el momento de escribir y nunca
// se recalculan: son la pista de auditoría del estado en ese instante.
type StockMovement struct {
	ID                   string
	ProductID            string
	LocationID           string
	Type                 string
	Quantity             int // solicitado; para adjustment es el valor absoluto final
	PreviousQuantity     int
	NewQuantity          int
	Reference            string
	Notes                string
	TransferToLocationID string // solo tiene significado en transfer_out
	CreatedBy            string
	CreatedAt            time.Time
}

// Validate aplica las reglas del modelo de asiento: cantidad positiva para todos
// los tipos salvo adjustment, donde puede ser cualquier entero no negativo
// (se interpreta como valor final, no como delta).
func (m *StockMovement) Validate() error {
	if !ValidMovementType(m.Type) {
		return domain.ErrInvalidInput
	}
	if m.ProductID == "" || m.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if m.Type == MovementTypeAdjustment {
		if m.Quantity < 0 {
			return domain.ErrInvalidInput
		}
		return nil
	}
	if m.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
