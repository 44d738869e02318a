package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: los asientos son inmutables.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, location_id, type, quantity, previous_quantity, new_quantity, reference, notes, transfer_to_location_id, created_by, created_at`

// Create persiste un asiento del libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.LocationID, movement.Type,
		movement.Quantity, movement.PreviousQuantity, movement.NewQuantity,
		nullable(movement.Reference), nullable(movement.Notes),
		nullable(movement.TransferToLocationID), nullable(movement.CreatedBy),
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", pos)
	args = append(args, limit)

	return r.list(query, args...)
}

// ListByPair devuelve los movimientos de un par en orden de creación ascendente
// (replay del libro para reconstruir el nivel).
func (r *StockMovementRepo) ListByPair(productID, locationID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1 AND location_id = $2
		ORDER BY created_at ASC`
	return r.list(query, productID, locationID)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reference, notes, transferTo, createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.LocationID, &m.Type,
		&m.Quantity, &m.PreviousQuantity, &m.NewQuantity,
		&reference, &notes, &transferTo, &createdBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Reference = fromNullable(reference)
	m.Notes = fromNullable(notes)
	m.TransferToLocationID = fromNullable(transferTo)
	m.CreatedBy = fromNullable(createdBy)
	return &m, nil
}
