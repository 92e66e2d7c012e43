package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// ProductRow forma de una fila de la tabla products tal como la leen los adaptadores.
// Las columnas opcionales son punteros: nil equivale a NULL.
type ProductRow struct {
	ID               int64
	Name             string
	Brand            *string
	Size             *string
	Category         string
	CurrentStock     int
	MinStock         int
	PurchaseLocation *string
	Price            decimal.Decimal
	StorageLocation  *string
	ExpiryDate       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProductFromRow hidrata un Product desde una fila persistida. Es total: nunca falla.
func ProductFromRow(r ProductRow) *Product {
	return &Product{
		id:               r.ID,
		name:             r.Name,
		brand:            deref(r.Brand),
		size:             deref(r.Size),
		category:         r.Category,
		currentStock:     r.CurrentStock,
		minStock:         r.MinStock,
		purchaseLocation: deref(r.PurchaseLocation),
		storageLocation:  deref(r.StorageLocation),
		price:            r.Price,
		expiryDate:       deref(r.ExpiryDate),
		createdAt:        r.CreatedAt,
		updatedAt:        r.UpdatedAt,
	}
}

// Row proyecta el producto a la forma de fila; los strings vacíos se guardan como NULL.
func (p *Product) Row() ProductRow {
	return ProductRow{
		ID:               p.id,
		Name:             p.name,
		Brand:            nullable(p.brand),
		Size:             nullable(p.size),
		Category:         p.category,
		CurrentStock:     p.currentStock,
		MinStock:         p.minStock,
		PurchaseLocation: nullable(p.purchaseLocation),
		Price:            p.price,
		StorageLocation:  nullable(p.storageLocation),
		ExpiryDate:       nullable(p.expiryDate),
		CreatedAt:        p.createdAt,
		UpdatedAt:        p.updatedAt,
	}
}

// ProductFromMap construye un Product desde un origen débilmente tipado (columna -> valor),
// p. ej. filas genéricas. Las claves ausentes toman valores por defecto:
// strings vacíos, stock 0, min_stock DefaultMinStock, precio 0 y sin vencimiento.
// Acepta "id" o "product_id" como identidad. Los valores que no se pueden convertir
// también quedan en su valor por defecto; para entrada externa usar ProductFromMapE.
func ProductFromMap(m map[string]any) *Product {
	p, _ := productFromMap(m, false)
	return p
}

// ProductFromMapE es la variante estricta de ProductFromMap: una clave presente con un
// valor que no se puede convertir (stock "abc", precio "zz", min_stock 2.9) devuelve un
// error que envuelve domain.ErrValidation. Solo las claves ausentes o nulas toman defaults.
func ProductFromMapE(m map[string]any) (*Product, error) {
	return productFromMap(m, true)
}

func productFromMap(m map[string]any, strict bool) (*Product, error) {
	p := &Product{minStock: DefaultMinStock}
	var firstErr error
	field := func(key string, conv func(v any) error) {
		v, ok := m[key]
		if !ok || v == nil {
			return
		}
		if err := conv(v); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %v: %w", key, err, domain.ErrValidation)
		}
	}
	str := func(dst *string) func(any) error {
		return func(v any) (err error) {
			*dst, err = cast.ToStringE(v)
			return err
		}
	}

	idKey := "id"
	if v, ok := m["id"]; !ok || v == nil {
		idKey = "product_id"
	}
	field(idKey, func(v any) (err error) {
		p.id, err = toInt64E(v)
		return err
	})
	field("name", str(&p.name))
	field("brand", str(&p.brand))
	field("size", str(&p.size))
	field("category", str(&p.category))
	field("current_stock", func(v any) error {
		n, err := toInt64E(v)
		p.currentStock = int(n)
		return err
	})
	field("min_stock", func(v any) error {
		n, err := toInt64E(v)
		if err == nil {
			p.minStock = int(n)
		}
		return err
	})
	field("purchase_location", str(&p.purchaseLocation))
	field("storage_location", str(&p.storageLocation))
	field("price", func(v any) (err error) {
		p.price, err = toDecimalE(v)
		return err
	})
	field("expiry_date", str(&p.expiryDate))
	field("created_at", func(v any) (err error) {
		p.createdAt, err = cast.ToTimeE(v)
		return err
	})
	field("updated_at", func(v any) (err error) {
		p.updatedAt, err = cast.ToTimeE(v)
		return err
	})

	if p.createdAt.IsZero() && p.id == 0 {
		now := time.Now()
		p.createdAt, p.updatedAt = now, now
	}
	if strict && firstErr != nil {
		return nil, firstErr
	}
	return p, nil
}

// toInt64E rechaza booleanos y flotantes con parte decimal; cast los truncaría.
func toInt64E(v any) (int64, error) {
	switch x := v.(type) {
	case bool:
		return 0, fmt.Errorf("se esperaba un entero, se recibió %v", x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("se esperaba un entero, se recibió %v", x)
		}
		return int64(x), nil
	case float32:
		return toInt64E(float64(x))
	}
	return cast.ToInt64E(v)
}

func toDecimalE(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case string:
		return decimal.NewFromString(x)
	case bool:
		return decimal.Zero, fmt.Errorf("se esperaba un número, se recibió %v", x)
	case float64:
		return decimal.NewFromFloat(x), nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(f), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
