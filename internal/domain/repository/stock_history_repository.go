package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// HistoryFilter filtro para listar historial. ProductID 0 = todos los productos.
type HistoryFilter struct {
	ProductID int64
	Limit     int // <= 0 sin límite
}

// StockHistoryRepository puerto del historial append-only. No expone update ni borrado
// individual: solo DeleteByProduct como efecto del borrado de un producto.
type StockHistoryRepository interface {
	// Create inserta la entrada y le asigna el ID generado.
	Create(ctx context.Context, entry *entity.StockHistoryEntry) error
	// List devuelve entradas del más reciente al más antiguo.
	List(ctx context.Context, filter HistoryFilter) ([]*entity.StockHistoryEntry, error)
	// DeleteByProduct borra todo el historial de un producto y devuelve cuántas filas eliminó.
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
}
