// internal/catalog/store.go
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/fashionfactory/store-backend/internal/models"
)

// Query is one page fetch. A zero Limit means no limit.
type Query struct {
	Filter Filter
	Sort   Sort
	Offset int
	Limit  int
}

// Reader is the read side of a product store.
type Reader interface {
	Count(ctx context.Context, f Filter) (int64, error)
	Find(ctx context.Context, q Query) ([]models.Product, error)
	// Sample returns up to n matching products in random order.
	Sample(ctx context.Context, f Filter, n int) ([]models.Product, error)
	// FindByID returns models.ErrRecordNotFound when the product does not
	// exist.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	DistinctColors(ctx context.Context) ([]string, error)
	DistinctSizes(ctx context.Context) ([]string, error)
}

type Store interface {
	Reader
	// Snapshot runs fn against a read-only view where every read observes the
	// same state.
	Snapshot(ctx context.Context, fn func(Reader) error) error
	Create(ctx context.Context, p *models.Product) error
	// Update and Delete return models.ErrRecordNotFound for unknown ids.
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxonomyStore holds categories and brands.
type TaxonomyStore interface {
	CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Category, error)
	BrandsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	CategorySlugExists(ctx context.Context, slug string) (bool, error)
	BrandSlugExists(ctx context.Context, slug string) (bool, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	CreateBrand(ctx context.Context, b *models.Brand) error
}
