package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// productModel fila de products para gorm.
type productModel struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string          `gorm:"column:name"`
	Brand            *string         `gorm:"column:brand"`
	Size             *string         `gorm:"column:size"`
	Category         string          `gorm:"column:category"`
	CurrentStock     int             `gorm:"column:current_stock"`
	MinStock         int             `gorm:"column:min_stock"`
	PurchaseLocation *string         `gorm:"column:purchase_location"`
	Price            decimal.Decimal `gorm:"column:price"`
	StorageLocation  *string         `gorm:"column:storage_location"`
	ExpiryDate       *string         `gorm:"column:expiry_date"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

func newProductModel(p *entity.Product) productModel {
	r := p.Row()
	return productModel{
		ID:               r.ID,
		Name:             r.Name,
		Brand:            r.Brand,
		Size:             r.Size,
		Category:         r.Category,
		CurrentStock:     r.CurrentStock,
		MinStock:         r.MinStock,
		PurchaseLocation: r.PurchaseLocation,
		Price:            r.Price,
		StorageLocation:  r.StorageLocation,
		ExpiryDate:       r.ExpiryDate,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

func (m productModel) toEntity() *entity.Product {
	return entity.ProductFromRow(entity.ProductRow{
		ID:               m.ID,
		Name:             m.Name,
		Brand:            m.Brand,
		Size:             m.Size,
		Category:         m.Category,
		CurrentStock:     m.CurrentStock,
		MinStock:         m.MinStock,
		PurchaseLocation: m.PurchaseLocation,
		Price:            m.Price,
		StorageLocation:  m.StorageLocation,
		ExpiryDate:       m.ExpiryDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	})
}

// historyModel fila de stock_history para gorm.
type historyModel struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID      int64     `gorm:"column:product_id"`
	OperationType  string    `gorm:"column:operation_type"`
	QuantityChange int       `gorm:"column:quantity_change"`
	StockAfter     int       `gorm:"column:stock_after"`
	Memo           *string   `gorm:"column:memo"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (historyModel) TableName() string { return "stock_history" }

// historyListRow resultado del JOIN con products.
type historyListRow struct {
	ID             int64
	ProductID      int64
	ProductName    *string
	OperationType  string
	QuantityChange int
	StockAfter     int
	Memo           *string
	CreatedAt      time.Time
}

func (r historyListRow) toEntity() *entity.StockHistoryEntry {
	return entity.HistoryFromRow(entity.HistoryRow(r))
}
