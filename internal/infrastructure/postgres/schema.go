package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL del sistema. stock_movements es append-only: no hay UPDATE ni
// DELETE en ningún repositorio. El índice único parcial sobre scan_sessions
// convierte "una sesión activa por actor" en un insert condicional atómico.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id            UUID PRIMARY KEY,
	sku           TEXT NOT NULL UNIQUE,
	barcode       TEXT UNIQUE,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	unit_price    NUMERIC(14,2) NOT NULL DEFAULT 0,
	reorder_level INTEGER NOT NULL DEFAULT 0,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_by    UUID,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS locations (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL DEFAULT '',
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_by UUID,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_levels (
	product_id        UUID NOT NULL REFERENCES products(id),
	location_id       UUID NOT NULL REFERENCES locations(id),
	quantity          INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	reserved_quantity INTEGER NOT NULL DEFAULT 0 CHECK (reserved_quantity >= 0),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (product_id, location_id)
);

CREATE TABLE IF NOT EXISTS stock_movements (
	id                      UUID PRIMARY KEY,
	product_id              UUID NOT NULL REFERENCES products(id),
	location_id             UUID NOT NULL REFERENCES locations(id),
	type                    TEXT NOT NULL CHECK (type IN ('inbound','outbound','adjustment','transfer_out','transfer_in')),
	quantity                INTEGER NOT NULL,
	previous_quantity       INTEGER NOT NULL,
	new_quantity            INTEGER NOT NULL,
	reference               TEXT,
	notes                   TEXT,
	transfer_to_location_id UUID REFERENCES locations(id),
	created_by              UUID,
	created_at              TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_movements_product  ON stock_movements (product_id, created_at);
CREATE INDEX IF NOT EXISTS idx_stock_movements_location ON stock_movements (location_id, created_at);
CREATE INDEX IF NOT EXISTS idx_stock_movements_type     ON stock_movements (type, created_at);

CREATE TABLE IF NOT EXISTS scan_sessions (
	id            UUID PRIMARY KEY,
	product_id    UUID NOT NULL REFERENCES products(id),
	location_id   UUID NOT NULL REFERENCES locations(id),
	status        TEXT NOT NULL CHECK (status IN ('active','completed','cancelled')),
	total_scanned INTEGER NOT NULL DEFAULT 0,
	created_by    UUID NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	completed_at  TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_scan_sessions_active_actor
	ON scan_sessions (created_by) WHERE status = 'active';

CREATE TABLE IF NOT EXISTS scan_records (
	id         UUID PRIMARY KEY,
	session_id UUID NOT NULL REFERENCES scan_sessions(id),
	barcode    TEXT NOT NULL,
	scanned_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_records_session ON scan_records (session_id, scanned_at);
`

// EnsureSchema crea las tablas e índices si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
