package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones traducen fallos del motor a domain.ErrIntegrity / domain.ErrStorage.
type ProductRepository interface {
	// Create inserta el producto y le asigna el ID generado. No valida la entidad.
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// List devuelve todos los productos ordenados por nombre.
	List(ctx context.Context) ([]*entity.Product, error)
	// Update sobrescribe los atributos descriptivos (no current_stock) y updated_at.
	// Devuelve domain.ErrNotFound si ninguna fila coincide.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija current_stock y updated_at. Solo debe llamarse dentro de una
	// transacción que también registre el historial.
	UpdateStock(ctx context.Context, id int64, stock int, at time.Time) error
	// Delete elimina la fila. Devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
