package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// DefaultHistoryLimit cantidad de entradas que devuelve ListHistory si no se indica límite.
const DefaultHistoryLimit = 100

// LedgerUseCase mantiene el stock de cada producto consistente con su historial append-only.
// Toda operación que escribe más de una fila corre en una sola transacción (TxRunner).
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	historyRepo  repository.StockHistoryRepository
	log          *logger.Logger
	historyLimit int
}

// Option configura el caso de uso.
type Option func(*LedgerUseCase)

// WithHistoryLimit cambia el límite por defecto de ListHistory. Valores <= 0 se ignoran.
func WithHistoryLimit(n int) Option {
	return func(uc *LedgerUseCase) {
		if n > 0 {
			uc.historyLimit = n
		}
	}
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
	log *logger.Logger,
	opts ...Option,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		historyRepo:  historyRepo,
		log:          log.Named("ledger"),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateProduct valida y persiste un producto nuevo; le asigna el ID generado.
func (uc *LedgerUseCase) CreateProduct(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return fmt.Errorf("producto nulo: %w", domain.ErrValidation)
	}
	if product.IsPersisted() {
		return fmt.Errorf("el producto ya tiene id %d: %w", product.ID(), domain.ErrValidation)
	}
	if err := product.Validate(); err != nil {
		return err
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		uc.log.Warn().Err(err).Str("name", product.Name()).Msg("no se pudo crear el producto")
		return err
	}
	uc.log.Info().Int64("product_id", product.ID()).Str("name", product.Name()).Msg("producto creado")
	return nil
}

// UpdateProduct sobrescribe los atributos descriptivos y refresca updated_at.
// No modifica current_stock: un stock distinto en product se ignora (no se rechaza) y
// conserva el valor persistido; el stock solo cambia vía UpdateStockAndRecordHistory.
func (uc *LedgerUseCase) UpdateProduct(ctx context.Context, product *entity.Product) error {
	if product == nil || !product.IsPersisted() {
		return fmt.Errorf("se requiere el id del producto: %w", domain.ErrValidation)
	}
	if err := product.Validate(); err != nil {
		return err
	}
	product.Touch()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		uc.log.Warn().Err(err).Int64("product_id", product.ID()).Msg("no se pudo actualizar el producto")
		return err
	}
	uc.log.Info().Int64("product_id", product.ID()).Msg("producto actualizado")
	return nil
}

// DeleteProduct borra el producto y todo su historial en una transacción.
func (uc *LedgerUseCase) DeleteProduct(ctx context.Context, id int64) (*entity.DeleteResult, error) {
	var result entity.DeleteResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		product, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		removed, err := historyRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		if err := productRepo.Delete(ctx, id); err != nil {
			return err
		}
		result = entity.DeleteResult{ProductID: id, ProductName: product.Name(), HistoryRemoved: removed}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("product_id", id).Msg("no se pudo eliminar el producto")
		return nil, err
	}
	uc.log.Info().
		Int64("product_id", id).
		Int64("history_removed", result.HistoryRemoved).
		Msg("producto eliminado")
	return &result, nil
}

// ProductExists indica si hay un producto con ese id.
func (uc *LedgerUseCase) ProductExists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return uc.productRepo.Exists(ctx, id)
}

// ListProducts devuelve todos los productos ordenados por nombre.
func (uc *LedgerUseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx)
}

// FindProducts lista los productos (orden por nombre) que cumplen todos los criterios de filter.
// expired trae los nombres de todos los productos vencidos del inventario, filtrados o no,
// para el aviso de vencimiento. El vencimiento se evalúa contra el reloj actual.
func (uc *LedgerUseCase) FindProducts(ctx context.Context, filter entity.ProductFilter) (products []*entity.Product, expired []string, err error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}
	all, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	return filter.Apply(all, now), entity.ExpiredNames(all, now), nil
}

// GetProduct devuelve el producto o domain.ErrNotFound.
func (uc *LedgerUseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

// UpdateStockAndRecordHistory fija el stock del producto y agrega la entrada de historial
// en la misma transacción: o se aplican ambas escrituras o ninguna.
// El llamador decide QuantityChange y StockAfter; aquí solo se verifican existencia,
// stock no negativo y tipo de operación, en ese orden.
func (uc *LedgerUseCase) UpdateStockAndRecordHistory(ctx context.Context, change entity.StockChange) (*entity.StockChangeResult, error) {
	var result entity.StockChangeResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		product, err := productRepo.GetByID(ctx, change.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %d: %w", change.ProductID, domain.ErrNotFound)
		}
		if change.StockAfter < 0 {
			return fmt.Errorf("stock resultante %d: %w", change.StockAfter, domain.ErrInvalidState)
		}
		if !entity.IsValidOperation(change.OperationType) {
			return fmt.Errorf("operation_type %q no soportado: %w", change.OperationType, domain.ErrValidation)
		}

		now := time.Now()
		if err := productRepo.UpdateStock(ctx, product.ID(), change.StockAfter, now); err != nil {
			return err
		}
		entry := entity.NewStockHistoryEntry(
			product.ID(), change.OperationType, change.QuantityChange, change.StockAfter, change.Memo, now,
		)
		if err := historyRepo.Create(ctx, entry); err != nil {
			return err
		}

		result = entity.StockChangeResult{
			ProductID:      product.ID(),
			ProductName:    product.Name(),
			OperationType:  change.OperationType,
			QuantityChange: change.QuantityChange,
			OldStock:       product.CurrentStock(),
			NewStock:       change.StockAfter,
			HistoryID:      entry.ID(),
			RecordedAt:     entry.CreatedAt(),
			Warning:        inventory.StockWarning(change.StockAfter, product.MinStock()),
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Int64("product_id", change.ProductID).
			Str("operation", change.OperationType).
			Msg("cambio de stock rechazado")
		return nil, err
	}
	uc.log.Info().
		Int64("product_id", result.ProductID).
		Str("operation", result.OperationType).
		Int("old_stock", result.OldStock).
		Int("new_stock", result.NewStock).
		Int64("history_id", result.HistoryID).
		Msg("stock actualizado")
	return &result, nil
}

// ApplyOperation traduce una compra, consumo o ajuste a un StockChange y lo registra.
// El consumo se recorta en cero; la cantidad no puede ser negativa.
func (uc *LedgerUseCase) ApplyOperation(ctx context.Context, productID int64, operation string, quantity int, memo string) (*entity.StockChangeResult, error) {
	product, err := uc.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	change, err := inventory.PlanStockChange(product, operation, quantity, memo)
	if err != nil {
		return nil, err
	}
	return uc.UpdateStockAndRecordHistory(ctx, change)
}

// ListHistory devuelve el historial del más reciente al más antiguo.
// productID 0 lista todos los productos; limit <= 0 usa el límite por defecto.
func (uc *LedgerUseCase) ListHistory(ctx context.Context, productID int64, limit int) ([]*entity.StockHistoryEntry, error) {
	if limit <= 0 {
		limit = uc.historyLimit
	}
	return uc.historyRepo.List(ctx, repository.HistoryFilter{ProductID: productID, Limit: limit})
}

// GetStatistics resume todo el historial de un producto. Sin historial devuelve ceros.
func (uc *LedgerUseCase) GetStatistics(ctx context.Context, productID int64) (entity.StockStatistics, error) {
	entries, err := uc.historyRepo.List(ctx, repository.HistoryFilter{ProductID: productID})
	if err != nil {
		return entity.StockStatistics{}, err
	}
	return inventory.Summarize(entries), nil
}
