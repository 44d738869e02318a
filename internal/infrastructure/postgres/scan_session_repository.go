package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ScanSessionRepository = (*ScanSessionRepo)(nil)

// ScanSessionRepo implementación de ScanSessionRepository sobre PostgreSQL
// (usable con pool o tx).
type ScanSessionRepo struct {
	q Querier
}

// NewScanSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScanSessionRepository(q Querier) *ScanSessionRepo {
	return &ScanSessionRepo{q: q}
}

const sessionColumns = `id, product_id, location_id, status, total_scanned, created_by, created_at, completed_at`

// Create inserta la sesión. El índice único parcial sobre (created_by) WHERE
// status='active' hace del insert el chequeo de unicidad: en carrera, uno de
// los dos inserts pierde con 23505 y se traduce a ErrConflict.
func (r *ScanSessionRepo) Create(session *entity.ScanSession) error {
	query := `
		INSERT INTO scan_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.ProductID, session.LocationID, session.Status,
		session.TotalScanned, session.CreatedBy, session.CreatedAt, session.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert scan session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID. nil si no existe.
func (r *ScanSessionRepo) GetByID(id string) (*entity.ScanSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM scan_sessions WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get scan session")
}

// GetForUpdate obtiene la sesión y bloquea la fila (SELECT FOR UPDATE) para
// serializar las mutaciones por sesión. nil si no existe.
func (r *ScanSessionRepo) GetForUpdate(id string) (*entity.ScanSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM scan_sessions WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get scan session for update")
}

// GetActiveByActor devuelve la sesión activa del actor, o nil.
func (r *ScanSessionRepo) GetActiveByActor(actorID string) (*entity.ScanSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM scan_sessions WHERE created_by = $1 AND status = 'active'`
	return r.scanOne(r.q.QueryRow(context.Background(), query, actorID), "get active scan session")
}

// Update persiste status, total_scanned y completed_at.
func (r *ScanSessionRepo) Update(session *entity.ScanSession) error {
	query := `
		UPDATE scan_sessions
		SET status = $2, total_scanned = $3, completed_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.Status, session.TotalScanned, session.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update scan session: %w", err)
	}
	return nil
}

// AddScan inserta un registro de escaneo.
func (r *ScanSessionRepo) AddScan(record *entity.ScanRecord) error {
	query := `
		INSERT INTO scan_records (id, session_id, barcode, scanned_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.SessionID, record.Barcode, record.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan record: %w", err)
	}
	return nil
}

// ListScans lista los escaneos de una sesión.
func (r *ScanSessionRepo) ListScans(sessionID string, asc bool) ([]*entity.ScanRecord, error) {
	order := "DESC"
	if asc {
		order = "ASC"
	}
	query := `
		SELECT id, session_id, barcode, scanned_at
		FROM scan_records WHERE session_id = $1
		ORDER BY scanned_at ` + order
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list scan records: %w", err)
	}
	defer rows.Close()
	var list []*entity.ScanRecord
	for rows.Next() {
		var rec entity.ScanRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Barcode, &rec.ScannedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

func (r *ScanSessionRepo) scanOne(row pgx.Row, op string) (*entity.ScanSession, error) {
	var s entity.ScanSession
	err := row.Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.Status,
		&s.TotalScanned, &s.CreatedBy, &s.CreatedAt, &s.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
