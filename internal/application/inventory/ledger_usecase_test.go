package inventory_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

type ledgerFixture struct {
	db *gorm.DB
	uc *inventory.LedgerUseCase
}

func newLedger(t *testing.T, opts ...inventory.Option) ledgerFixture {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "inventory.db"), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = sqlite.Close(db) })

	uc := inventory.NewLedgerUseCase(
		sqlite.NewTxRunner(db),
		sqlite.NewProductRepository(db),
		sqlite.NewStockHistoryRepository(db),
		logger.Nop(),
		opts...,
	)
	return ledgerFixture{db: db, uc: uc}
}

func paperTowels(stock int) *entity.Product {
	return entity.NewProduct(entity.ProductFields{
		Name:         "Paper Towels",
		Category:     "Household",
		CurrentStock: stock,
		MinStock:     2,
		Price:        decimal.RequireFromString("2.5"),
	})
}

func (f ledgerFixture) create(t *testing.T, p *entity.Product) *entity.Product {
	t.Helper()
	require.NoError(t, f.uc.CreateProduct(context.Background(), p))
	return p
}

func (f ledgerFixture) historyCount(t *testing.T, productID int64) int {
	t.Helper()
	entries, err := f.uc.ListHistory(context.Background(), productID, 0)
	require.NoError(t, err)
	return len(entries)
}

func TestCreateProduct_ValidaAntesDePersistir(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()

	invalid := entity.NewProduct(entity.ProductFields{Name: "", Category: "Household"})
	err := f.uc.CreateProduct(ctx, invalid)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, invalid.IsPersisted())

	list, err := f.uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateProduct_AsignaID(t *testing.T) {
	f := newLedger(t)
	p := f.create(t, paperTowels(3))

	assert.True(t, p.IsPersisted())
	exists, err := f.uc.ProductExists(context.Background(), p.ID())
	require.NoError(t, err)
	assert.True(t, exists)

	err = f.uc.CreateProduct(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrValidation, "un producto persistido no se vuelve a crear")
}

func TestUpdateProduct(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(3))
	before := p.UpdatedAt()

	p.SetCategory("Cocina")
	p.SetPrice(decimal.RequireFromString("3.1"))
	require.NoError(t, f.uc.UpdateProduct(ctx, p))

	got, err := f.uc.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "Cocina", got.Category())
	assert.True(t, decimal.RequireFromString("3.1").Equal(got.Price()))
	assert.False(t, got.UpdatedAt().Before(before))

	transient := paperTowels(1)
	assert.ErrorIs(t, f.uc.UpdateProduct(ctx, transient), domain.ErrValidation)

	ghost := entity.ProductFromRow(entity.ProductRow{ID: 999, Name: "x", Category: "y"})
	assert.ErrorIs(t, f.uc.UpdateProduct(ctx, ghost), domain.ErrNotFound)
}

func TestUpdateProduct_IgnoraStockDelLlamador(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(3))

	row := p.Row()
	row.CurrentStock = 50
	row.Name = "Toallas"
	require.NoError(t, f.uc.UpdateProduct(ctx, entity.ProductFromRow(row)))

	got, err := f.uc.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "Toallas", got.Name())
	assert.Equal(t, 3, got.CurrentStock())
	assert.Zero(t, f.historyCount(t, p.ID()))
}

func TestFindProducts(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	f.create(t, paperTowels(3))
	f.create(t, entity.NewProduct(entity.ProductFields{
		Name: "Leche", Brand: "Colanta", Category: "Lácteos", CurrentStock: 1, MinStock: 1, ExpiryDate: "2001-01-01",
	}))

	products, expired, err := f.uc.FindProducts(ctx, entity.ProductFilter{Search: "colanta"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Leche", products[0].Name())
	assert.Equal(t, []string{"Leche"}, expired)

	products, _, err = f.uc.FindProducts(ctx, entity.ProductFilter{Category: "Household", ExpiredOnly: true})
	require.NoError(t, err)
	assert.Empty(t, products)

	_, _, err = f.uc.FindProducts(ctx, entity.ProductFilter{Status: "raro"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetProduct_InexistenteEsNotFound(t *testing.T) {
	f := newLedger(t)
	_, err := f.uc.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStockAndRecordHistory_Compra(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(3))

	res, err := f.uc.UpdateStockAndRecordHistory(ctx, entity.StockChange{
		ProductID:      p.ID(),
		OperationType:  entity.OperationPurchase,
		QuantityChange: 5,
		StockAfter:     8,
		Memo:           "super",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.OldStock)
	assert.Equal(t, 8, res.NewStock)
	assert.Equal(t, "Paper Towels", res.ProductName)
	assert.Greater(t, res.HistoryID, int64(0))
	assert.Empty(t, res.Warning)

	got, err := f.uc.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 8, got.CurrentStock())

	entries, err := f.uc.ListHistory(ctx, p.ID(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].QuantityChange())
	assert.Equal(t, 8, entries[0].StockAfter())
	assert.Equal(t, "super", entries[0].Memo())
}

func TestUpdateStockAndRecordHistory_StockNegativoEsInvalidState(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(8))

	_, err := f.uc.UpdateStockAndRecordHistory(ctx, entity.StockChange{
		ProductID:      p.ID(),
		OperationType:  entity.OperationUse,
		QuantityChange: -9,
		StockAfter:     -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := f.uc.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 8, got.CurrentStock())
	assert.Zero(t, f.historyCount(t, p.ID()))
}

func TestUpdateStockAndRecordHistory_OrdenDeValidaciones(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(1))

	_, err := f.uc.UpdateStockAndRecordHistory(ctx, entity.StockChange{ProductID: 404, OperationType: "robo", StockAfter: -1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.UpdateStockAndRecordHistory(ctx, entity.StockChange{ProductID: p.ID(), OperationType: "robo", StockAfter: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.UpdateStockAndRecordHistory(ctx, entity.StockChange{ProductID: p.ID(), OperationType: "robo", StockAfter: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, f.historyCount(t, p.ID()))
}

func TestUpdateStockAndRecordHistory_FalloDelHistorialNoDejaEscriturasParciales(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(3))

	require.NoError(t, f.db.Exec(`CREATE TRIGGER fail_history BEFORE INSERT ON stock_history
		BEGIN SELECT RAISE(ABORT, 'boom'); END`).Error)

	_, err := f.uc.UpdateStockAndRecordHistory(ctx, entity.StockChange{
		ProductID:      p.ID(),
		OperationType:  entity.OperationPurchase,
		QuantityChange: 5,
		StockAfter:     8,
	})
	require.Error(t, err)

	got, err := f.uc.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStock(), "el stock no debe cambiar si el historial falla")
	assert.Zero(t, f.historyCount(t, p.ID()))
}

func TestUpdateStockAndRecordHistory_AvisoDeStockBajo(t *testing.T) {
	f := newLedger(t)
	p := f.create(t, paperTowels(5))

	res, err := f.uc.UpdateStockAndRecordHistory(context.Background(), entity.StockChange{
		ProductID: p.ID(), OperationType: entity.OperationUse, QuantityChange: -3, StockAfter: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "quedará con stock bajo", res.Warning)
}

func TestDeleteProduct_BorraHistorialYProducto(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(0))
	other := f.create(t, entity.NewProduct(entity.ProductFields{Name: "Sal", Category: "Despensa", MinStock: 1}))

	for _, qty := range []int{1, 2, 3} {
		_, err := f.uc.ApplyOperation(ctx, p.ID(), entity.OperationPurchase, qty, "")
		require.NoError(t, err)
	}
	_, err := f.uc.ApplyOperation(ctx, other.ID(), entity.OperationPurchase, 1, "")
	require.NoError(t, err)

	res, err := f.uc.DeleteProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.HistoryRemoved)
	assert.Equal(t, "Paper Towels", res.ProductName)

	exists, err := f.uc.ProductExists(ctx, p.ID())
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Zero(t, f.historyCount(t, p.ID()))
	assert.Equal(t, 1, f.historyCount(t, other.ID()))
}

func TestDeleteProduct_InexistenteEsNotFound(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(2))

	_, err := f.uc.DeleteProduct(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.uc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID(), list[0].ID())
}

func TestApplyOperation(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(3))

	res, err := f.uc.ApplyOperation(ctx, p.ID(), entity.OperationUse, 10, "se acabó")
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewStock, "el consumo se recorta en cero")
	assert.Equal(t, -10, res.QuantityChange)
	assert.Equal(t, "quedará sin stock", res.Warning)

	res, err = f.uc.ApplyOperation(ctx, p.ID(), entity.OperationAdjust, 7, "")
	require.NoError(t, err)
	assert.Equal(t, 7, res.NewStock)
	assert.Equal(t, 7, res.QuantityChange)

	_, err = f.uc.ApplyOperation(ctx, p.ID(), entity.OperationPurchase, -1, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.ApplyOperation(ctx, 404, entity.OperationPurchase, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListHistory_LimitePorDefecto(t *testing.T) {
	f := newLedger(t, inventory.WithHistoryLimit(2))
	ctx := context.Background()
	p := f.create(t, paperTowels(0))

	for i := 0; i < 3; i++ {
		_, err := f.uc.ApplyOperation(ctx, p.ID(), entity.OperationPurchase, 1, "")
		require.NoError(t, err)
	}

	entries, err := f.uc.ListHistory(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].StockAfter(), "más reciente primero")

	entries, err = f.uc.ListHistory(ctx, p.ID(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestGetStatistics(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	p := f.create(t, paperTowels(3))

	st, err := f.uc.GetStatistics(ctx, p.ID())
	require.NoError(t, err)
	assert.Zero(t, st.TotalOperations)
	assert.Nil(t, st.FirstOperation)
	assert.Nil(t, st.LastOperation)

	_, err = f.uc.ApplyOperation(ctx, p.ID(), entity.OperationPurchase, 5, "")
	require.NoError(t, err)
	_, err = f.uc.ApplyOperation(ctx, p.ID(), entity.OperationUse, 2, "")
	require.NoError(t, err)
	_, err = f.uc.ApplyOperation(ctx, p.ID(), entity.OperationAdjust, 1, "")
	require.NoError(t, err)

	st, err = f.uc.GetStatistics(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalOperations)
	assert.Equal(t, 1, st.PurchaseCount)
	assert.Equal(t, 1, st.UseCount)
	assert.Equal(t, 1, st.AdjustCount)
	assert.Equal(t, 5, st.TotalPurchased)
	assert.Equal(t, 2, st.TotalUsed)
	require.NotNil(t, st.FirstOperation)
	require.NotNil(t, st.LastOperation)
	assert.False(t, st.LastOperation.Before(*st.FirstOperation))
}
