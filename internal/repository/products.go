// Package repository holds the GORM-backed stores.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) filtered(ctx context.Context, f catalog.Filter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	for _, clause := range f.Clauses() {
		sql, args := clause.SQL()
		tx = tx.Where(sql, args...)
	}
	return tx
}

func (r *ProductRepository) Count(ctx context.Context, f catalog.Filter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *ProductRepository) Find(ctx context.Context, q catalog.Query) ([]models.Product, error) {
	tx := r.filtered(ctx, q.Filter).Order(q.Sort.OrderSQL())
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Sample(ctx context.Context, f catalog.Filter, n int) ([]models.Product, error) {
	var products []models.Product
	if err := r.filtered(ctx, f).Order("RANDOM()").Limit(n).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to sample products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) distinct(ctx context.Context, column string) ([]string, error) {
	values := []string{}
	query := fmt.Sprintf(
		"SELECT DISTINCT v FROM products, unnest(%s) AS v WHERE deleted_at IS NULL ORDER BY v",
		column,
	)
	if err := r.db.WithContext(ctx).Raw(query).Scan(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", column, err)
	}
	return values, nil
}

func (r *ProductRepository) DistinctColors(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "colors")
}

func (r *ProductRepository) DistinctSizes(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "sizes")
}

// Snapshot runs fn in a read-only REPEATABLE READ transaction so every read
// sees the same committed state.
func (r *ProductRepository) Snapshot(ctx context.Context, fn func(catalog.Reader) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProductRepository{db: tx})
	}, opts)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	result := r.db.WithContext(ctx).Model(p).Select("*").Omit("id", "created_at").Updates(p)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}
