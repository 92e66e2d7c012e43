package postgres

import "context"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id                BIGSERIAL PRIMARY KEY,
		name              TEXT    NOT NULL,
		brand             TEXT,
		size              TEXT,
		category          TEXT    NOT NULL,
		current_stock     INTEGER NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		min_stock         INTEGER NOT NULL DEFAULT 1 CHECK (min_stock >= 0),
		purchase_location TEXT,
		price             NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
		storage_location  TEXT,
		expiry_date       TEXT,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_history (
		id              BIGSERIAL PRIMARY KEY,
		product_id      BIGINT  NOT NULL REFERENCES products (id),
		operation_type  TEXT    NOT NULL CHECK (operation_type IN ('purchase', 'use', 'adjust')),
		quantity_change INTEGER NOT NULL,
		stock_after     INTEGER NOT NULL CHECK (stock_after >= 0),
		memo            TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_history_product_created
		ON stock_history (product_id, created_at)`,
}

// Migrate crea las tablas e índices si no existen. Idempotente.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return mapError("migrar esquema", err)
		}
	}
	return nil
}
