package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// ProductFilter criterios de listado. Los campos vacíos no filtran; los demás se combinan (AND).
type ProductFilter struct {
	// Search subcadena de name o brand, sin distinguir mayúsculas.
	Search string
	// Category coincidencia exacta.
	Category string
	// Status out_of_stock, low_stock o normal.
	Status string
	// ExpiredOnly deja solo los productos con vencimiento ya pasado.
	ExpiredOnly bool
}

// Validate rechaza un Status desconocido con domain.ErrValidation.
func (f ProductFilter) Validate() error {
	switch f.Status {
	case "", StockStatusOutOfStock, StockStatusLow, StockStatusNormal:
		return nil
	}
	return fmt.Errorf("estado %q no válido (out_of_stock, low_stock, normal): %w", f.Status, domain.ErrValidation)
}

// Matches indica si p cumple todos los criterios evaluando el vencimiento contra now.
func (f ProductFilter) Matches(p *Product, now time.Time) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.name), q) && !strings.Contains(strings.ToLower(p.brand), q) {
			return false
		}
	}
	if f.Category != "" && p.category != f.Category {
		return false
	}
	if f.Status != "" && p.StockStatus() != f.Status {
		return false
	}
	if f.ExpiredOnly && !p.IsExpiredAt(now) {
		return false
	}
	return true
}

// Apply devuelve los productos que cumplen el filtro conservando el orden de entrada.
func (f ProductFilter) Apply(products []*Product, now time.Time) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// ExpiredNames nombres de los productos vencidos a now, en el orden recibido.
func ExpiredNames(products []*Product, now time.Time) []string {
	var names []string
	for _, p := range products {
		if p.IsExpiredAt(now) {
			names = append(names, p.name)
		}
	}
	return names
}

// ExpiryWarning texto de aviso para los productos vencidos, o "" si no hay ninguno.
func ExpiryWarning(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("%d producto(s) vencido(s): %s", len(names), strings.Join(names, ", "))
}
