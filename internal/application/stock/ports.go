package stock

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del nivel y el
// asiento en el libro se observen como una unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
	) error) error

	// RunScanner añade el repositorio de sesiones para los flujos de escaneo
	// (complete de sesión y emisión de lotes), que mueven stock y mutan la
	// sesión en la misma transacción.
	RunScanner(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
		sessionRepo repository.ScanSessionRepository,
	) error) error
}
