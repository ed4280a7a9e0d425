// internal/repository/taxonomy.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/models"
)

var nameOrder = `name COLLATE "` + catalog.NameCollation + `" ASC, id ASC`

type TaxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

func (r *TaxonomyRepository) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Category, error) {
	out := make(map[uuid.UUID]models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, c := range categories {
		out[c.ID] = c
	}
	return out, nil
}

func (r *TaxonomyRepository) BrandsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Brand, error) {
	out := make(map[uuid.UUID]models.Brand, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}
	for _, b := range brands {
		out[b.ID] = b
	}
	return out, nil
}

func (r *TaxonomyRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order(nameOrder).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *TaxonomyRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands := []models.Brand{}
	if err := r.db.WithContext(ctx).Order(nameOrder).Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (r *TaxonomyRepository) slugExists(ctx context.Context, model interface{}, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (r *TaxonomyRepository) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	return r.slugExists(ctx, &models.Category{}, slug)
}

func (r *TaxonomyRepository) BrandSlugExists(ctx context.Context, slug string) (bool, error) {
	return r.slugExists(ctx, &models.Brand{}, slug)
}

func (r *TaxonomyRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *TaxonomyRepository) CreateBrand(ctx context.Context, b *models.Brand) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}
