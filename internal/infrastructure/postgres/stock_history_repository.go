package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo historial append-only sobre PostgreSQL (usable con pool o tx).
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

func (r *StockHistoryRepo) Create(ctx context.Context, h *entity.StockHistoryEntry) error {
	row := h.Row()
	query := `
		INSERT INTO stock_history (product_id, operation_type, quantity_change, stock_after, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		row.ProductID, row.OperationType, row.QuantityChange, row.StockAfter, row.Memo, row.CreatedAt,
	).Scan(&id)
	if err != nil {
		return mapError("insert stock history", err)
	}
	h.AssignID(id)
	return nil
}

// List devuelve el historial del más reciente al más antiguo, con el nombre del producto.
func (r *StockHistoryRepo) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.StockHistoryEntry, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
		SELECT h.id, h.product_id, p.name, h.operation_type, h.quantity_change, h.stock_after, h.memo, h.created_at
		FROM stock_history h
		LEFT JOIN products p ON p.id = h.product_id`)
	if filter.ProductID > 0 {
		args = append(args, filter.ProductID)
		fmt.Fprintf(&sb, " WHERE h.product_id = $%d", len(args))
	}
	sb.WriteString(" ORDER BY h.created_at DESC, h.id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapError("list stock history", err)
	}
	defer rows.Close()

	list := make([]*entity.StockHistoryEntry, 0)
	for rows.Next() {
		var hr entity.HistoryRow
		if err := rows.Scan(
			&hr.ID, &hr.ProductID, &hr.ProductName, &hr.OperationType,
			&hr.QuantityChange, &hr.StockAfter, &hr.Memo, &hr.CreatedAt,
		); err != nil {
			return nil, mapError("scan stock history", err)
		}
		list = append(list, entity.HistoryFromRow(hr))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list stock history", err)
	}
	return list, nil
}

func (r *StockHistoryRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_history WHERE product_id = $1`, productID)
	if err != nil {
		return 0, mapError("delete stock history", err)
	}
	return tag.RowsAffected(), nil
}
