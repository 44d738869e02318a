package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// ScanSessionRepository define el puerto de persistencia para sesiones de
// escaneo y sus registros.
type ScanSessionRepository interface {
	// Create inserta la sesión. Si el actor ya tiene una sesión activa
	// (índice único parcial) devuelve domain.ErrConflict.
	Create(session *entity.ScanSession) error
	GetByID(id string) (*entity.ScanSession, error)
	// GetForUpdate bloquea la fila de la sesión (SELECT FOR UPDATE) para
	// serializar addScan/complete/cancel por sesión. nil si no existe.
	GetForUpdate(id string) (*entity.ScanSession, error)
	// GetActiveByActor devuelve la sesión activa del actor, o nil.
	GetActiveByActor(actorID string) (*entity.ScanSession, error)
	// Update persiste status, total_scanned y completed_at.
	Update(session *entity.ScanSession) error
	AddScan(record *entity.ScanRecord) error
	// ListScans lista los escaneos de una sesión. asc=true en orden de
	// escaneo (impresión de lotes); asc=false del más reciente al más antiguo.
	ListScans(sessionID string, asc bool) ([]*entity.ScanRecord, error)
}
