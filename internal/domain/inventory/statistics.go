package inventory

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// Summarize reduce el historial de un producto a sus estadísticas (servicio de dominio puro).
// El orden de entries no importa. Sin entradas devuelve ceros y timestamps nil.
// TotalPurchased suma los cambios de compras; TotalUsed suma el valor absoluto de los consumos.
func Summarize(entries []*entity.StockHistoryEntry) entity.StockStatistics {
	var st entity.StockStatistics
	for _, h := range entries {
		if h == nil {
			continue
		}
		st.TotalOperations++
		switch h.OperationType() {
		case entity.OperationPurchase:
			st.PurchaseCount++
			st.TotalPurchased += h.QuantityChange()
		case entity.OperationUse:
			st.UseCount++
			st.TotalUsed += abs(h.QuantityChange())
		case entity.OperationAdjust:
			st.AdjustCount++
		}
		at := h.CreatedAt()
		if st.FirstOperation == nil || at.Before(*st.FirstOperation) {
			first := at
			st.FirstOperation = &first
		}
		if st.LastOperation == nil || at.After(*st.LastOperation) {
			last := at
			st.LastOperation = &last
		}
	}
	return st
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
