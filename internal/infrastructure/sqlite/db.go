package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// dsnParams se aplican a cada conexión del pool: claves foráneas y espera ante bloqueos.
const dsnParams = "_foreign_keys=1&_busy_timeout=5000"

// Open abre (o crea) el archivo SQLite en path. Crea el directorio padre si no existe.
// Las claves foráneas quedan activas en todas las conexiones vía DSN.
// Una base en memoria (":memory:" o "mode=memory") usa una sola conexión: cada conexión
// nueva del pool vería otra base vacía, sin el esquema.
func Open(path string, log *logger.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: ruta vacía")
	}
	if !isMemory(path) && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: crear directorio: %w", err)
		}
	}
	if log == nil {
		log = logger.Nop()
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: NewGormLogger(log.Named("sqlite")),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	if isMemory(path) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite: pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + dsnParams
}

// Ping verifica la conexión.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close cierra el pool subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
