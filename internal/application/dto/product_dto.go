package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// UpdateProductRequest entrada para actualizar un producto (sin stock: se maneja vía movimientos).
// Los campos nil conservan el valor actual.
type UpdateProductRequest struct {
	Name             *string          `json:"name"`
	Brand            *string          `json:"brand"`
	Size             *string          `json:"size"`
	Category         *string          `json:"category"`
	MinStock         *int             `json:"min_stock"`
	PurchaseLocation *string          `json:"purchase_location"`
	StorageLocation  *string          `json:"storage_location"`
	Price            *decimal.Decimal `json:"price"`
	ExpiryDate       *string          `json:"expiry_date"`
}

// ApplyTo copia sobre p los campos presentes.
func (r UpdateProductRequest) ApplyTo(p *entity.Product) {
	if r.Name != nil {
		p.SetName(*r.Name)
	}
	if r.Brand != nil {
		p.SetBrand(*r.Brand)
	}
	if r.Size != nil {
		p.SetSize(*r.Size)
	}
	if r.Category != nil {
		p.SetCategory(*r.Category)
	}
	if r.MinStock != nil {
		p.SetMinStock(*r.MinStock)
	}
	if r.PurchaseLocation != nil {
		p.SetPurchaseLocation(*r.PurchaseLocation)
	}
	if r.StorageLocation != nil {
		p.SetStorageLocation(*r.StorageLocation)
	}
	if r.Price != nil {
		p.SetPrice(*r.Price)
	}
	if r.ExpiryDate != nil {
		p.SetExpiryDate(*r.ExpiryDate)
	}
}

// ProductResponse salida de un producto con su estado derivado.
type ProductResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Brand            string          `json:"brand"`
	Size             string          `json:"size"`
	Category         string          `json:"category"`
	CurrentStock     int             `json:"current_stock"`
	MinStock         int             `json:"min_stock"`
	PurchaseLocation string          `json:"purchase_location"`
	StorageLocation  string          `json:"storage_location"`
	Price            decimal.Decimal `json:"price"`
	ExpiryDate       string          `json:"expiry_date,omitempty"`
	StockStatus      string          `json:"stock_status"`
	Expired          bool            `json:"expired"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductResponse proyecta la entidad.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID(),
		Name:             p.Name(),
		Brand:            p.Brand(),
		Size:             p.Size(),
		Category:         p.Category(),
		CurrentStock:     p.CurrentStock(),
		MinStock:         p.MinStock(),
		PurchaseLocation: p.PurchaseLocation(),
		StorageLocation:  p.StorageLocation(),
		Price:            p.Price(),
		ExpiryDate:       p.ExpiryDate(),
		StockStatus:      p.StockStatus(),
		Expired:          p.IsExpired(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items   []ProductResponse `json:"items"`
	Total   int               `json:"total"`
	// Warning avisa de productos vencidos en todo el inventario, no solo en Items.
	Warning string            `json:"warning,omitempty"`
}

// DeleteProductResponse resultado de DELETE /api/products/:id.
type DeleteProductResponse struct {
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	HistoryRemoved int64  `json:"history_removed"`
}
