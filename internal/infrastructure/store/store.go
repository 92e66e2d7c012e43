package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// Store agrupa los adaptadores de persistencia del driver configurado.
type Store struct {
	Driver   string
	TxRunner inventory.TxRunner
	Products repository.ProductRepository
	History  repository.StockHistoryRepository
	Ping     func(ctx context.Context) error
	Close    func() error
}

// Open abre el almacenamiento según cfg.Driver y aplica el esquema (idempotente).
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Path, log)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = sqlite.Close(db)
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.Path).Msg("almacenamiento listo")
		return &Store{
			Driver:   cfg.Driver,
			TxRunner: sqlite.NewTxRunner(db),
			Products: sqlite.NewProductRepository(db),
			History:  sqlite.NewStockHistoryRepository(db),
			Ping:     func(ctx context.Context) error { return sqlite.Ping(ctx, db) },
			Close:    func() error { return sqlite.Close(db) },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("host", cfg.Host).Msg("almacenamiento listo")
		return &Store{
			Driver:   cfg.Driver,
			TxRunner: postgres.NewTxRunner(pool),
			Products: postgres.NewProductRepository(pool),
			History:  postgres.NewStockHistoryRepository(pool),
			Ping:     pool.Ping,
			Close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
}

// Ledger construye el caso de uso principal sobre este almacenamiento.
func (s *Store) Ledger(log *logger.Logger, opts ...inventory.Option) *inventory.LedgerUseCase {
	return inventory.NewLedgerUseCase(s.TxRunner, s.Products, s.History, log, opts...)
}

// Replenishment construye el caso de uso de lista de compras.
func (s *Store) Replenishment() *inventory.ReplenishmentUseCase {
	return inventory.NewReplenishmentUseCase(s.Products)
}
