package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

func TestNewStockHistoryEntry_FechaPorDefecto(t *testing.T) {
	h := NewStockHistoryEntry(1, OperationPurchase, 5, 8, "", time.Time{})
	assert.False(t, h.CreatedAt().IsZero())
	assert.True(t, h.IsIncrease())
	assert.False(t, h.IsDecrease())

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	h = NewStockHistoryEntry(1, OperationUse, -2, 6, "cena", at)
	assert.Equal(t, at, h.CreatedAt())
	assert.True(t, h.IsDecrease())
	assert.Equal(t, "use: -2 -> quedan 6 (2024-06-01)", h.String())
}

func TestStockHistoryEntry_Validate(t *testing.T) {
	assert.NoError(t, NewStockHistoryEntry(1, OperationAdjust, 0, 0, "", time.Time{}).Validate())
	assert.ErrorIs(t, NewStockHistoryEntry(0, OperationAdjust, 0, 0, "", time.Time{}).Validate(), domain.ErrValidation)
	assert.ErrorIs(t, NewStockHistoryEntry(1, "robo", 0, 0, "", time.Time{}).Validate(), domain.ErrValidation)
	assert.ErrorIs(t, NewStockHistoryEntry(1, OperationUse, -3, -1, "", time.Time{}).Validate(), domain.ErrValidation)
}

func TestIsValidOperation(t *testing.T) {
	for _, op := range Operations {
		assert.True(t, IsValidOperation(op), op)
	}
	assert.False(t, IsValidOperation("PURCHASE"))
	assert.False(t, IsValidOperation(""))
}

func TestHistoryFromRow(t *testing.T) {
	name := "Sal"
	h := HistoryFromRow(HistoryRow{ID: 3, ProductID: 1, ProductName: &name, OperationType: OperationPurchase, QuantityChange: 2, StockAfter: 2})
	assert.Equal(t, int64(3), h.ID())
	assert.Equal(t, "Sal", h.ProductName())
	assert.Equal(t, "", h.Memo())
	assert.Nil(t, h.Row().Memo)
}
