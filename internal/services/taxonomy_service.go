// internal/services/taxonomy_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type TaxonomyService struct {
	store catalog.TaxonomyStore
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description string `json:"description"`
}

type CreateBrandRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Logo        string `json:"logo,omitempty" validate:"omitempty,url"`
	Description string `json:"description"`
}

func NewTaxonomyService(store catalog.TaxonomyStore) *TaxonomyService {
	return &TaxonomyService{store: store}
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *TaxonomyService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.store.ListBrands(ctx)
}

func slugFor(name, slug string) (string, error) {
	if slug = strings.TrimSpace(slug); slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return "", utils.InvalidArgument(i18n.KeyValidationInvalid, "slug")
	}
	return slug, nil
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	slug, err := slugFor(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	taken, err := s.store.CategorySlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check category slug: %w", err)
	}
	if taken {
		return nil, utils.Conflict(i18n.KeyCategorySlugTaken)
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *TaxonomyService) CreateBrand(ctx context.Context, req *CreateBrandRequest) (*models.Brand, error) {
	slug, err := slugFor(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	taken, err := s.store.BrandSlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check brand slug: %w", err)
	}
	if taken {
		return nil, utils.Conflict(i18n.KeyBrandSlugTaken)
	}

	brand := &models.Brand{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Logo:        req.Logo,
		Description: req.Description,
	}
	if err := s.store.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}
