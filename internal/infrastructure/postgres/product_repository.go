package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, brand, size, category, current_stock, min_stock,
	purchase_location, price, storage_location, expiry_date, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y le asigna el id generado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	row := product.Row()
	query := `
		INSERT INTO products (name, brand, size, category, current_stock, min_stock,
			purchase_location, price, storage_location, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		row.Name, row.Brand, row.Size, row.Category, row.CurrentStock, row.MinStock,
		row.PurchaseLocation, row.Price, row.StorageLocation, row.ExpiryDate, row.CreatedAt, row.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return mapError("insert product", err)
	}
	return product.AssignID(id)
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, mapError("exists product", err)
	}
	return exists, nil
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list products", err)
	}
	return list, nil
}

// Update actualiza los atributos descriptivos. No permite modificar current_stock (se maneja vía ledger).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	row := product.Row()
	query := `
		UPDATE products SET name = $2, brand = $3, size = $4, category = $5, min_stock = $6,
			purchase_location = $7, price = $8, storage_location = $9, expiry_date = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		row.ID, row.Name, row.Brand, row.Size, row.Category, row.MinStock,
		row.PurchaseLocation, row.Price, row.StorageLocation, row.ExpiryDate, row.UpdatedAt,
	)
	if err != nil {
		return mapError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", row.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock int, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET current_stock = $2, updated_at = $3 WHERE id = $1`, id, stock, at)
	if err != nil {
		return mapError("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var r entity.ProductRow
	err := row.Scan(
		&r.ID, &r.Name, &r.Brand, &r.Size, &r.Category, &r.CurrentStock, &r.MinStock,
		&r.PurchaseLocation, &r.Price, &r.StorageLocation, &r.ExpiryDate, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity.ProductFromRow(r), nil
}
