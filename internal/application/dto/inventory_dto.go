package dto

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockChangeRequest body para POST /api/inventory/movements (cambio ya calculado por el cliente).
type StockChangeRequest struct {
	ProductID      int64  `json:"product_id"`
	OperationType  string `json:"operation_type"`
	QuantityChange int    `json:"quantity_change"`
	StockAfter     int    `json:"stock_after"`
	Memo           string `json:"memo"`
}

// StockChange convierte la entrada en la solicitud del ledger.
func (r StockChangeRequest) StockChange() entity.StockChange {
	return entity.StockChange{
		ProductID:      r.ProductID,
		OperationType:  r.OperationType,
		QuantityChange: r.QuantityChange,
		StockAfter:     r.StockAfter,
		Memo:           r.Memo,
	}
}

// StockOperationRequest body para POST /api/inventory/operations.
// Operation: purchase | use | adjust. Quantity >= 0.
type StockOperationRequest struct {
	ProductID int64  `json:"product_id"`
	Operation string `json:"operation"`
	Quantity  int    `json:"quantity"`
	Memo      string `json:"memo"`
}

// StockChangeResponse lo que el ledger aplicó.
type StockChangeResponse struct {
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name"`
	OperationType  string    `json:"operation_type"`
	QuantityChange int       `json:"quantity_change"`
	OldStock       int       `json:"old_stock"`
	NewStock       int       `json:"new_stock"`
	HistoryID      int64     `json:"history_id"`
	RecordedAt     time.Time `json:"recorded_at"`
	Warning        string    `json:"warning,omitempty"`
}

// ToStockChangeResponse proyecta el resultado.
func ToStockChangeResponse(r *entity.StockChangeResult) StockChangeResponse {
	return StockChangeResponse{
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		OperationType:  r.OperationType,
		QuantityChange: r.QuantityChange,
		OldStock:       r.OldStock,
		NewStock:       r.NewStock,
		HistoryID:      r.HistoryID,
		RecordedAt:     r.RecordedAt,
		Warning:        r.Warning,
	}
}

// HistoryEntryResponse una entrada de historial.
type HistoryEntryResponse struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	OperationType  string    `json:"operation_type"`
	QuantityChange int       `json:"quantity_change"`
	StockAfter     int       `json:"stock_after"`
	Memo           string    `json:"memo,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToHistoryResponse proyecta una lista de entradas.
func ToHistoryResponse(entries []*entity.StockHistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, h := range entries {
		out = append(out, HistoryEntryResponse{
			ID:             h.ID(),
			ProductID:      h.ProductID(),
			ProductName:    h.ProductName(),
			OperationType:  h.OperationType(),
			QuantityChange: h.QuantityChange(),
			StockAfter:     h.StockAfter(),
			Memo:           h.Memo(),
			CreatedAt:      h.CreatedAt(),
		})
	}
	return out
}

// StatisticsResponse resumen de operaciones de un producto.
type StatisticsResponse struct {
	ProductID       int64      `json:"product_id"`
	TotalOperations int        `json:"total_operations"`
	PurchaseCount   int        `json:"purchase_count"`
	UseCount        int        `json:"use_count"`
	AdjustCount     int        `json:"adjust_count"`
	TotalPurchased  int        `json:"total_purchased"`
	TotalUsed       int        `json:"total_used"`
	FirstOperation  *time.Time `json:"first_operation"`
	LastOperation   *time.Time `json:"last_operation"`
}

// ToStatisticsResponse proyecta las estadísticas.
func ToStatisticsResponse(productID int64, s entity.StockStatistics) StatisticsResponse {
	return StatisticsResponse{
		ProductID:       productID,
		TotalOperations: s.TotalOperations,
		PurchaseCount:   s.PurchaseCount,
		UseCount:        s.UseCount,
		AdjustCount:     s.AdjustCount,
		TotalPurchased:  s.TotalPurchased,
		TotalUsed:       s.TotalUsed,
		FirstOperation:  s.FirstOperation,
		LastOperation:   s.LastOperation,
	}
}

// ReplenishmentSuggestionDTO producto agotado o con stock bajo y la cantidad sugerida para reponer.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
	Category          string `json:"category"`
	PurchaseLocation  string `json:"purchase_location,omitempty"`
	StockStatus       string `json:"stock_status"`
	CurrentStock      int    `json:"current_stock"`
	MinStock          int    `json:"min_stock"`
	IdealStock        int    `json:"ideal_stock"`         // max(ceil(MinStock*1.5), MinStock+1)
	SuggestedOrderQty int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Expired           bool   `json:"expired"`
	Priority          int    `json:"priority"` // 1 = más urgente
}
