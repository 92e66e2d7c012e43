package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Tipos de operación que modifican el stock.
const (
	OperationPurchase = "purchase" // compra (aumenta)
	OperationUse      = "use"      // consumo (disminuye)
	OperationAdjust   = "adjust"   // ajuste a un valor absoluto
)

// Operations conjunto cerrado de operaciones válidas, en orden de presentación.
var Operations = []string{OperationPurchase, OperationUse, OperationAdjust}

// IsValidOperation indica si op pertenece al conjunto de operaciones.
func IsValidOperation(op string) bool {
	switch op {
	case OperationPurchase, OperationUse, OperationAdjust:
		return true
	}
	return false
}

// StockHistoryEntry registro inmutable de un cambio de stock (append-only).
type StockHistoryEntry struct {
	id             int64
	productID      int64
	productName    string
	operationType  string
	quantityChange int
	stockAfter     int
	memo           string
	createdAt      time.Time
}

// NewStockHistoryEntry construye una entrada transitoria. Si createdAt es cero se usa now.
func NewStockHistoryEntry(productID int64, operationType string, quantityChange, stockAfter int, memo string, createdAt time.Time) *StockHistoryEntry {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &StockHistoryEntry{
		productID:      productID,
		operationType:  operationType,
		quantityChange: quantityChange,
		stockAfter:     stockAfter,
		memo:           memo,
		createdAt:      createdAt,
	}
}

func (h *StockHistoryEntry) ID() int64             { return h.id }
func (h *StockHistoryEntry) ProductID() int64      { return h.productID }
func (h *StockHistoryEntry) ProductName() string   { return h.productName }
func (h *StockHistoryEntry) OperationType() string { return h.operationType }
func (h *StockHistoryEntry) QuantityChange() int   { return h.quantityChange }
func (h *StockHistoryEntry) StockAfter() int       { return h.stockAfter }
func (h *StockHistoryEntry) Memo() string          { return h.memo }
func (h *StockHistoryEntry) CreatedAt() time.Time  { return h.createdAt }

// AssignID lo usa el almacenamiento tras insertar la fila.
func (h *StockHistoryEntry) AssignID(id int64) { h.id = id }

func (h *StockHistoryEntry) IsIncrease() bool { return h.quantityChange > 0 }
func (h *StockHistoryEntry) IsDecrease() bool { return h.quantityChange < 0 }

// Validate verifica product_id, operación y stock resultante no negativo.
func (h *StockHistoryEntry) Validate() error {
	switch {
	case h.productID <= 0:
		return fmt.Errorf("product_id es requerido: %w", domain.ErrValidation)
	case !IsValidOperation(h.operationType):
		return fmt.Errorf("operation_type %q no soportado: %w", h.operationType, domain.ErrValidation)
	case h.stockAfter < 0:
		return fmt.Errorf("stock_after negativo (%d): %w", h.stockAfter, domain.ErrValidation)
	}
	return nil
}

func (h *StockHistoryEntry) String() string {
	date := "sin fecha"
	if !h.createdAt.IsZero() {
		date = h.createdAt.Format(ExpiryDateLayout)
	}
	return fmt.Sprintf("%s: %+d -> quedan %d (%s)", h.operationType, h.quantityChange, h.stockAfter, date)
}

// HistoryRow forma de una fila de stock_history; ProductName viene del JOIN con products.
type HistoryRow struct {
	ID             int64
	ProductID      int64
	ProductName    *string
	OperationType  string
	QuantityChange int
	StockAfter     int
	Memo           *string
	CreatedAt      time.Time
}

// HistoryFromRow hidrata una entrada desde una fila persistida. Es total.
func HistoryFromRow(r HistoryRow) *StockHistoryEntry {
	return &StockHistoryEntry{
		id:             r.ID,
		productID:      r.ProductID,
		productName:    deref(r.ProductName),
		operationType:  r.OperationType,
		quantityChange: r.QuantityChange,
		stockAfter:     r.StockAfter,
		memo:           deref(r.Memo),
		createdAt:      r.CreatedAt,
	}
}

// Row proyecta la entrada a la forma de fila (memo vacío = NULL).
func (h *StockHistoryEntry) Row() HistoryRow {
	return HistoryRow{
		ID:             h.id,
		ProductID:      h.productID,
		OperationType:  h.operationType,
		QuantityChange: h.quantityChange,
		StockAfter:     h.stockAfter,
		Memo:           nullable(h.memo),
		CreatedAt:      h.createdAt,
	}
}
