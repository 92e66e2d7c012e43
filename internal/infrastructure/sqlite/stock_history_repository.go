package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StockHistoryRepository implementación de repository.StockHistoryRepository con gorm sobre SQLite.
type StockHistoryRepository struct {
	db *gorm.DB
}

var _ repository.StockHistoryRepository = (*StockHistoryRepository)(nil)

// NewStockHistoryRepository construye el repositorio.
func NewStockHistoryRepository(db *gorm.DB) *StockHistoryRepository {
	return &StockHistoryRepository{db: db}
}

func (r *StockHistoryRepository) Create(ctx context.Context, h *entity.StockHistoryEntry) error {
	row := h.Row()
	m := historyModel{
		ProductID:      row.ProductID,
		OperationType:  row.OperationType,
		QuantityChange: row.QuantityChange,
		StockAfter:     row.StockAfter,
		Memo:           row.Memo,
		CreatedAt:      row.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError("registrar historial", err)
	}
	h.AssignID(m.ID)
	return nil
}

// List devuelve el historial del más reciente al más antiguo, con el nombre del producto.
func (r *StockHistoryRepository) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.StockHistoryEntry, error) {
	q := r.db.WithContext(ctx).
		Table("stock_history AS h").
		Select("h.id, h.product_id, p.name AS product_name, h.operation_type, h.quantity_change, h.stock_after, h.memo, h.created_at").
		Joins("LEFT JOIN products p ON p.id = h.product_id")
	if filter.ProductID > 0 {
		q = q.Where("h.product_id = ?", filter.ProductID)
	}
	q = q.Order("h.created_at DESC, h.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []historyListRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, mapError("listar historial", err)
	}
	list := make([]*entity.StockHistoryEntry, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *StockHistoryRepository) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&historyModel{})
	if result.Error != nil {
		return 0, mapError("eliminar historial", result.Error)
	}
	return result.RowsAffected, nil
}
