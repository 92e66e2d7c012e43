package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Estados de stock derivados de CurrentStock frente a MinStock.
const (
	StockStatusOutOfStock = "out_of_stock"
	StockStatusLow        = "low_stock"
	StockStatusNormal     = "normal"
)

// DefaultMinStock umbral de stock mínimo cuando el origen no lo especifica.
const DefaultMinStock = 1

// ExpiryDateLayout formato ISO de la fecha de vencimiento (YYYY-MM-DD).
const ExpiryDateLayout = "2006-01-02"

// ProductFields atributos editables de un producto.
// MinStock es solo un umbral de alerta; nunca se aplica como piso.
type ProductFields struct {
	Name             string
	Brand            string
	Size             string
	Category         string
	CurrentStock     int
	MinStock         int
	PurchaseLocation string
	StorageLocation  string
	Price            decimal.Decimal
	ExpiryDate       string // vacío = sin vencimiento
}

// Product representa un artículo del inventario doméstico.
// Los campos son privados: toda mutación pasa por setters que refrescan updatedAt.
// Un Product en memoria es una copia desechable, no una referencia viva al almacenamiento.
type Product struct {
	id               int64
	name             string
	brand            string
	size             string
	category         string
	currentStock     int
	minStock         int
	purchaseLocation string
	storageLocation  string
	price            decimal.Decimal
	expiryDate       string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewProduct construye un producto transitorio (sin ID) con timestamps en now.
func NewProduct(f ProductFields) *Product {
	now := time.Now()
	p := &Product{createdAt: now, updatedAt: now}
	p.assign(f)
	return p
}

func (p *Product) assign(f ProductFields) {
	p.name = f.Name
	p.brand = f.Brand
	p.size = f.Size
	p.category = f.Category
	p.currentStock = f.CurrentStock
	p.minStock = f.MinStock
	p.purchaseLocation = f.PurchaseLocation
	p.storageLocation = f.StorageLocation
	p.price = f.Price
	p.expiryDate = f.ExpiryDate
}

func (p *Product) ID() int64                { return p.id }
func (p *Product) Name() string             { return p.name }
func (p *Product) Brand() string            { return p.brand }
func (p *Product) Size() string             { return p.size }
func (p *Product) Category() string         { return p.category }
func (p *Product) CurrentStock() int        { return p.currentStock }
func (p *Product) MinStock() int            { return p.minStock }
func (p *Product) PurchaseLocation() string { return p.purchaseLocation }
func (p *Product) StorageLocation() string  { return p.storageLocation }
func (p *Product) Price() decimal.Decimal   { return p.price }
func (p *Product) ExpiryDate() string       { return p.expiryDate }
func (p *Product) CreatedAt() time.Time     { return p.createdAt }
func (p *Product) UpdatedAt() time.Time     { return p.updatedAt }

// IsPersisted indica si el producto ya tiene ID asignado por el almacenamiento.
func (p *Product) IsPersisted() bool { return p.id > 0 }

// Fields devuelve una copia de los atributos editables.
func (p *Product) Fields() ProductFields {
	return ProductFields{
		Name:             p.name,
		Brand:            p.brand,
		Size:             p.size,
		Category:         p.category,
		CurrentStock:     p.currentStock,
		MinStock:         p.minStock,
		PurchaseLocation: p.purchaseLocation,
		StorageLocation:  p.storageLocation,
		Price:            p.price,
		ExpiryDate:       p.expiryDate,
	}
}

// AssignID lo usa el almacenamiento al crear la fila. El ID es inmutable una vez asignado.
func (p *Product) AssignID(id int64) error {
	if p.id != 0 && p.id != id {
		return fmt.Errorf("producto ya tiene id %d: %w", p.id, domain.ErrInvalidState)
	}
	p.id = id
	return nil
}

// Touch refresca UpdatedAt; lo llaman todos los setters.
func (p *Product) Touch() { p.updatedAt = time.Now() }

func (p *Product) SetName(v string)             { p.name = v; p.Touch() }
func (p *Product) SetBrand(v string)            { p.brand = v; p.Touch() }
func (p *Product) SetSize(v string)             { p.size = v; p.Touch() }
func (p *Product) SetCategory(v string)         { p.category = v; p.Touch() }
func (p *Product) SetMinStock(v int)            { p.minStock = v; p.Touch() }
func (p *Product) SetPurchaseLocation(v string) { p.purchaseLocation = v; p.Touch() }
func (p *Product) SetStorageLocation(v string)  { p.storageLocation = v; p.Touch() }
func (p *Product) SetPrice(v decimal.Decimal)   { p.price = v; p.Touch() }
func (p *Product) SetExpiryDate(v string)       { p.expiryDate = v; p.Touch() }

// Apply reemplaza todos los atributos editables de una vez (usado por actualizaciones completas).
func (p *Product) Apply(f ProductFields) {
	p.assign(f)
	p.Touch()
}

// UpdateStock cambia el stock en memoria. No genera historial: eso es responsabilidad del ledger.
func (p *Product) UpdateStock(n int) {
	p.currentStock = n
	p.Touch()
}

// StockStatus clasifica CurrentStock frente a MinStock.
func (p *Product) StockStatus() string {
	switch {
	case p.currentStock <= 0:
		return StockStatusOutOfStock
	case p.currentStock <= p.minStock:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// IsExpired indica si la fecha de vencimiento ya pasó respecto al reloj actual.
func (p *Product) IsExpired() bool {
	return p.IsExpiredAt(time.Now())
}

// IsExpiredAt evalúa el vencimiento contra now. Fechas vacías o mal formadas no vencen.
func (p *Product) IsExpiredAt(now time.Time) bool {
	if p.expiryDate == "" {
		return false
	}
	expiry, err := time.ParseInLocation(ExpiryDateLayout, p.expiryDate, now.Location())
	if err != nil {
		return false
	}
	return expiry.Before(now)
}

// Validate verifica las reglas del producto sin mutarlo.
// Devuelve un error que envuelve domain.ErrValidation, o nil.
func (p *Product) Validate() error {
	switch {
	case p.name == "":
		return fmt.Errorf("name es requerido: %w", domain.ErrValidation)
	case p.category == "":
		return fmt.Errorf("category es requerido: %w", domain.ErrValidation)
	case p.currentStock < 0:
		return fmt.Errorf("current_stock negativo (%d): %w", p.currentStock, domain.ErrValidation)
	case p.minStock < 0:
		return fmt.Errorf("min_stock negativo (%d): %w", p.minStock, domain.ErrValidation)
	case p.price.IsNegative():
		return fmt.Errorf("price negativo (%s): %w", p.price, domain.ErrValidation)
	}
	return nil
}

// IsValid forma booleana de Validate.
func (p *Product) IsValid() bool { return p.Validate() == nil }

var stockStatusLabels = map[string]string{
	StockStatusOutOfStock: "sin stock",
	StockStatusLow:        "stock bajo",
	StockStatusNormal:     "normal",
}

func (p *Product) String() string {
	return fmt.Sprintf("%s (%s) - %s (%d unidades)", p.name, p.brand, stockStatusLabels[p.StockStatus()], p.currentStock)
}
