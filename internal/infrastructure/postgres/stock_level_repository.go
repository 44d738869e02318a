package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel actual de un par. nil si el par nunca tuvo movimientos.
func (r *StockLevelRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, location_id, quantity, reserved_quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&l.ProductID, &l.LocationID, &l.Quantity, &l.ReservedQuantity, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// GetForUpdate asegura la fila del par y la bloquea (SELECT FOR UPDATE).
// El INSERT previo cubre el primer movimiento del par: sin fila no habría nada
// que bloquear y dos primeros movimientos concurrentes podrían intercalarse.
func (r *StockLevelRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	ctx := context.Background()
	ensure := `
		INSERT INTO stock_levels (product_id, location_id, quantity, reserved_quantity)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, productID, locationID); err != nil {
		return nil, fmt.Errorf("ensure stock level: %w", err)
	}
	query := `
		SELECT product_id, location_id, quantity, reserved_quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&l.ProductID, &l.LocationID, &l.Quantity, &l.ReservedQuantity, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza la cantidad del par. reserved_quantity solo se
// fija en 0 al crear; esta ruta nunca lo modifica.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, location_id, quantity, reserved_quantity, updated_at)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		level.ProductID, level.LocationID, level.Quantity, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListDetailed lista niveles con su producto y ubicación. locationID vacío = todas.
func (r *StockLevelRepo) ListDetailed(locationID string) ([]*entity.StockLevelDetail, error) {
	query := `
		SELECT s.product_id, s.location_id, s.quantity, s.reserved_quantity, s.updated_at,
		       p.id, p.sku, p.barcode, p.name, p.description, p.unit_price, p.reorder_level, p.is_active, p.created_by, p.created_at, p.updated_at,
		       l.id, l.name, l.address, l.is_active, l.created_by, l.created_at
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id`
	args := []any{}
	if locationID != "" {
		query += ` WHERE s.location_id = $1`
		args = append(args, locationID)
	}
	query += ` ORDER BY p.name, l.name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevelDetail
	for rows.Next() {
		var d entity.StockLevelDetail
		var p entity.Product
		var l entity.Location
		var barcode, pCreatedBy, lCreatedBy *string
		if err := rows.Scan(
			&d.ProductID, &d.LocationID, &d.Quantity, &d.ReservedQuantity, &d.UpdatedAt,
			&p.ID, &p.SKU, &barcode, &p.Name, &p.Description, &p.UnitPrice, &p.ReorderLevel, &p.IsActive, &pCreatedBy, &p.CreatedAt, &p.UpdatedAt,
			&l.ID, &l.Name, &l.Address, &l.IsActive, &lCreatedBy, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		p.Barcode = fromNullable(barcode)
		p.CreatedBy = fromNullable(pCreatedBy)
		l.CreatedBy = fromNullable(lCreatedBy)
		d.Product = &p
		d.Location = &l
		list = append(list, &d)
	}
	return list, rows.Err()
}
