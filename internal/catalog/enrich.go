// internal/catalog/enrich.go
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashionfactory/store-backend/internal/models"
)

// Projection selects which summary fields enrichment attaches.
type Projection int

const (
	// ProjectionFull attaches category {id, name, slug} and brand
	// {id, name, logo, slug}.
	ProjectionFull Projection = iota
	// ProjectionCompact attaches category {id, name} and brand {id, name, logo}.
	ProjectionCompact
)

type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug,omitempty"`
}

type BrandSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Logo string    `json:"logo,omitempty"`
	Slug string    `json:"slug,omitempty"`
}

// ProductView is a product as returned to clients. Category and Brand are nil
// when the referenced record is missing.
type ProductView struct {
	models.Product
	EffectivePrice     decimal.Decimal  `json:"effectivePrice"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	Category           *CategorySummary `json:"category"`
	Brand              *BrandSummary    `json:"brand"`
}

// Enrich attaches category and brand summaries, loading each referenced
// category and brand once per call.
func Enrich(ctx context.Context, taxonomy TaxonomyStore, products []models.Product, proj Projection) ([]ProductView, error) {
	views := make([]ProductView, 0, len(products))
	if len(products) == 0 {
		return views, nil
	}

	categoryIDs := make([]uuid.UUID, 0, len(products))
	brandIDs := make([]uuid.UUID, 0, len(products))
	seenCategory := make(map[uuid.UUID]struct{})
	seenBrand := make(map[uuid.UUID]struct{})
	for i := range products {
		if _, ok := seenCategory[products[i].CategoryID]; !ok {
			seenCategory[products[i].CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, products[i].CategoryID)
		}
		if _, ok := seenBrand[products[i].BrandID]; !ok {
			seenBrand[products[i].BrandID] = struct{}{}
			brandIDs = append(brandIDs, products[i].BrandID)
		}
	}

	categories, err := taxonomy.CategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	brands, err := taxonomy.BrandsByIDs(ctx, brandIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	for i := range products {
		p := products[i]
		view := ProductView{Product: p, EffectivePrice: p.EffectivePrice()}
		if c, ok := categories[p.CategoryID]; ok {
			view.Category = &CategorySummary{ID: c.ID, Name: c.Name}
			if proj == ProjectionFull {
				view.Category.Slug = c.Slug
			}
		}
		if b, ok := brands[p.BrandID]; ok {
			view.Brand = &BrandSummary{ID: b.ID, Name: b.Name, Logo: b.Logo}
			if proj == ProjectionFull {
				view.Brand.Slug = b.Slug
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// WithDiscount sets DiscountPercentage on every view.
func WithDiscount(views []ProductView) []ProductView {
	for i := range views {
		d := DiscountPercentage(&views[i].Product)
		views[i].DiscountPercentage = &d
	}
	return views
}
