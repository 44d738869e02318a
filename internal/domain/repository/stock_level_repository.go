package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// StockLevelRepository define el puerto para consultar/actualizar el nivel de
// stock por (producto, ubicación). Usado dentro de transacciones para
// garantizar consistencia.
type StockLevelRepository interface {
	// Get obtiene el nivel actual. nil si el par nunca tuvo movimientos.
	Get(productID, locationID string) (*entity.StockLevel, error)
	// GetForUpdate asegura la fila del par y la bloquea (SELECT FOR UPDATE).
	// Si el par no existe devuelve una fila en cero ya insertada, de modo que
	// dos primeros movimientos concurrentes también quedan serializados.
	GetForUpdate(productID, locationID string) (*entity.StockLevel, error)
	// Upsert inserta o actualiza quantity y updated_at. ReservedQuantity solo
	// se fija en 0 al crear; la ruta de movimientos nunca lo modifica.
	Upsert(level *entity.StockLevel) error
	// ListDetailed lista niveles enriquecidos con producto y ubicación.
	// locationID vacío = todas las ubicaciones.
	ListDetailed(locationID string) ([]*entity.StockLevelDetail, error)
}
