package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ProductRepository implementación de repository.ProductRepository con gorm sobre SQLite.
// db puede ser la conexión principal o una transacción.
type ProductRepository struct {
	db *gorm.DB
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository construye el repositorio.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	m := newProductModel(p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError("crear producto", err)
	}
	return p.AssignID(m.ID)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var m productModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError("obtener producto", err)
	}
	return m.toEntity(), nil
}

func (r *ProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, mapError("verificar producto", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, mapError("listar productos", err)
	}
	list := make([]*entity.Product, 0, len(models))
	for _, m := range models {
		list = append(list, m.toEntity())
	}
	return list, nil
}

// Update sobrescribe los atributos descriptivos. current_stock no se toca.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	m := newProductModel(p)
	result := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID()).Updates(map[string]any{
		"name":              m.Name,
		"brand":             m.Brand,
		"size":              m.Size,
		"category":          m.Category,
		"min_stock":         m.MinStock,
		"purchase_location": m.PurchaseLocation,
		"price":             m.Price,
		"storage_location":  m.StorageLocation,
		"expiry_date":       m.ExpiryDate,
		"updated_at":        m.UpdatedAt,
	})
	if result.Error != nil {
		return mapError("actualizar producto", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("producto %d: %w", p.ID(), domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, stock int, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Updates(map[string]any{
		"current_stock": stock,
		"updated_at":    at.UTC(),
	})
	if result.Error != nil {
		return mapError("actualizar stock", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&productModel{})
	if result.Error != nil {
		return mapError("eliminar producto", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
