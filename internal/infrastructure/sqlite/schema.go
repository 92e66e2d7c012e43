package sqlite

import (
	"context"

	"gorm.io/gorm"
)

// schema es idempotente: re-ejecutarlo sobre una base existente no falla ni borra datos.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT    NOT NULL,
		brand             TEXT,
		size              TEXT,
		category          TEXT    NOT NULL,
		current_stock     INTEGER NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		min_stock         INTEGER NOT NULL DEFAULT 1 CHECK (min_stock >= 0),
		purchase_location TEXT,
		price             REAL    NOT NULL DEFAULT 0 CHECK (price >= 0),
		storage_location  TEXT,
		expiry_date       TEXT,
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stock_history (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id      INTEGER NOT NULL REFERENCES products (id),
		operation_type  TEXT    NOT NULL CHECK (operation_type IN ('purchase', 'use', 'adjust')),
		quantity_change INTEGER NOT NULL,
		stock_after     INTEGER NOT NULL CHECK (stock_after >= 0),
		memo            TEXT,
		created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_history_product_created
		ON stock_history (product_id, created_at)`,
}

// Migrate crea las tablas e índices si no existen.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range schema {
			if err := tx.Exec(stmt).Error; err != nil {
				return mapError("migrar esquema", err)
			}
		}
		return nil
	})
}
