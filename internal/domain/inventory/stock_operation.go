package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// PlanStockChange traduce una operación de usuario a la solicitud que registra el ledger:
//
//	purchase: stock + quantity, cambio +quantity
//	use:      max(0, stock - quantity), cambio -quantity (se recorta en 0)
//	adjust:   stock = quantity, cambio quantity - stock
//
// quantity debe ser >= 0.
func PlanStockChange(product *entity.Product, operation string, quantity int, memo string) (entity.StockChange, error) {
	if product == nil || !product.IsPersisted() {
		return entity.StockChange{}, fmt.Errorf("producto sin id: %w", domain.ErrValidation)
	}
	if quantity < 0 {
		return entity.StockChange{}, fmt.Errorf("cantidad negativa (%d): %w", quantity, domain.ErrValidation)
	}
	current := product.CurrentStock()
	change := entity.StockChange{
		ProductID:     product.ID(),
		OperationType: operation,
		Memo:          memo,
	}
	switch operation {
	case entity.OperationPurchase:
		change.QuantityChange = quantity
		change.StockAfter = current + quantity
	case entity.OperationUse:
		change.QuantityChange = -quantity
		change.StockAfter = max(0, current-quantity)
	case entity.OperationAdjust:
		change.QuantityChange = quantity - current
		change.StockAfter = quantity
	default:
		return entity.StockChange{}, fmt.Errorf("operation_type %q no soportado: %w", operation, domain.ErrValidation)
	}
	return change, nil
}

// StockWarning aviso para la UI según el stock resultante; vacío si queda normal.
func StockWarning(stockAfter, minStock int) string {
	switch {
	case stockAfter <= 0:
		return "quedará sin stock"
	case stockAfter <= minStock:
		return "quedará con stock bajo"
	}
	return ""
}
