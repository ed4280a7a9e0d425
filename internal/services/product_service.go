// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

const (
	newArrivalsLimit   = 10
	topSellingLimit    = 5
	topDiscountedLimit = 10
)

type ProductService struct {
	store    catalog.Store
	taxonomy catalog.TaxonomyStore
	cfg      config.CatalogConfig
	limits   catalog.PageLimits
}

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Slug          string          `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	IsSale        bool            `json:"isSale"`
	CategoryID    uuid.UUID       `json:"categoryId" validate:"required"`
	BrandID       uuid.UUID       `json:"brandId" validate:"required"`
	Gender        models.Gender   `json:"gender" validate:"required,gender"`
	Sizes         []string        `json:"sizes" validate:"dive,required"`
	Colors        []string        `json:"colors" validate:"dive,required"`
	ProductImages []string        `json:"productImages" validate:"dive,required"`
	Stock         int             `json:"stock" validate:"min=0"`
	IsActive      *bool           `json:"isActive,omitempty"`
}

// UpdateProductRequest is a partial update: nil fields are left unchanged.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Slug          *string          `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	IsSale        *bool            `json:"isSale,omitempty"`
	CategoryID    *uuid.UUID       `json:"categoryId,omitempty"`
	BrandID       *uuid.UUID       `json:"brandId,omitempty"`
	Gender        *models.Gender   `json:"gender,omitempty" validate:"omitempty,gender"`
	Sizes         []string         `json:"sizes,omitempty" validate:"omitempty,dive,required"`
	Colors        []string         `json:"colors,omitempty" validate:"omitempty,dive,required"`
	ProductImages []string         `json:"productImages,omitempty" validate:"omitempty,dive,required"`
	Stock         *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

// ProductPage is one page of an enriched listing.
type ProductPage struct {
	Products   []catalog.ProductView `json:"products"`
	Pagination utils.Pagination      `json:"pagination"`
}

func NewProductService(store catalog.Store, taxonomy catalog.TaxonomyStore, cfg config.CatalogConfig) *ProductService {
	return &ProductService{
		store:    store,
		taxonomy: taxonomy,
		cfg:      cfg,
		limits:   catalog.PageLimits{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize},
	}
}

// ListProducts runs the general listing: filter, count, sort, page, enrich.
func (s *ProductService) ListProducts(ctx context.Context, params catalog.ListParams) (*ProductPage, error) {
	q, err := params.Parse(s.limits)
	if err != nil {
		return nil, err
	}
	return s.paged(ctx, q, catalog.ProjectionFull)
}

func (s *ProductService) paged(ctx context.Context, q catalog.ListQuery, proj catalog.Projection) (*ProductPage, error) {
	var total int64
	var rows []models.Product

	fetch := func(r catalog.Reader) error {
		var err error
		if total, err = r.Count(ctx, q.Filter); err != nil {
			return err
		}
		if total == 0 {
			return nil
		}
		rows, err = r.Find(ctx, catalog.Query{
			Filter: q.Filter,
			Sort:   q.Sort,
			Offset: q.Page.Offset(),
			Limit:  q.Page.Size,
		})
		return err
	}

	var err error
	if s.cfg.ConsistentPagination {
		err = s.store.Snapshot(ctx, fetch)
	} else {
		err = fetch(s.store)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views, err := catalog.Enrich(ctx, s.taxonomy, rows, proj)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: views, Pagination: q.Page.Pagination(total)}, nil
}

func (s *ProductService) find(ctx context.Context, q catalog.Query, proj catalog.Projection) ([]catalog.ProductView, error) {
	rows, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return catalog.Enrich(ctx, s.taxonomy, rows, proj)
}

var activeOnly = catalog.NewFilter(catalog.ActiveIs(true))

func (s *ProductService) NewArrivals(ctx context.Context) ([]catalog.ProductView, error) {
	return s.find(ctx, catalog.Query{Filter: activeOnly, Sort: catalog.Newest, Limit: newArrivalsLimit}, catalog.ProjectionFull)
}

// TopSelling returns a random sample of active products, or the best sellers
// by sold count when configured with TopSellingSoldCount.
func (s *ProductService) TopSelling(ctx context.Context) ([]catalog.ProductView, error) {
	if s.cfg.TopSellingMode == config.TopSellingSoldCount {
		q := catalog.Query{
			Filter: activeOnly,
			Sort:   catalog.Sort{Key: catalog.SortBySoldCount, Direction: catalog.Descending},
			Limit:  topSellingLimit,
		}
		return s.find(ctx, q, catalog.ProjectionFull)
	}

	rows, err := s.store.Sample(ctx, activeOnly, topSellingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample products: %w", err)
	}
	return catalog.Enrich(ctx, s.taxonomy, rows, catalog.ProjectionFull)
}

// TopDiscounted returns the active products with the largest percentage
// discount. Products with a zero list price never qualify.
func (s *ProductService) TopDiscounted(ctx context.Context) ([]catalog.ProductView, error) {
	q := catalog.Query{
		Filter: activeOnly.And(catalog.Discountable()),
		Sort:   catalog.Sort{Key: catalog.SortByDiscount, Direction: catalog.Descending},
		Limit:  topDiscountedLimit,
	}
	views, err := s.find(ctx, q, catalog.ProjectionFull)
	if err != nil {
		return nil, err
	}
	return catalog.WithDiscount(views), nil
}

// Search matches keyword literally against name and description of active
// products. Results are not paginated.
func (s *ProductService) Search(ctx context.Context, keyword string) ([]catalog.ProductView, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, utils.InvalidArgument(i18n.KeyProductSearchKeyword)
	}
	q := catalog.Query{Filter: activeOnly.And(catalog.TextContains(keyword)), Sort: catalog.Newest}
	return s.find(ctx, q, catalog.ProjectionFull)
}

func (s *ProductService) ByGender(ctx context.Context, gender, page, size string) (*ProductPage, error) {
	if !models.Gender(gender).Valid() {
		return nil, utils.InvalidArgument(i18n.KeyProductInvalidGender)
	}
	return s.compactPage(ctx, catalog.GenderIs(gender), page, size)
}

func (s *ProductService) BySize(ctx context.Context, size, page, pageSize string) (*ProductPage, error) {
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, utils.InvalidArgument(i18n.KeyValidationRequired, "size")
	}
	return s.compactPage(ctx, catalog.HasSize(size), page, pageSize)
}

func (s *ProductService) compactPage(ctx context.Context, clause catalog.Clause, page, size string) (*ProductPage, error) {
	p, err := catalog.ParsePage(page, size, s.limits)
	if err != nil {
		return nil, err
	}
	q := catalog.ListQuery{Filter: activeOnly.And(clause), Sort: catalog.Newest, Page: p}
	return s.paged(ctx, q, catalog.ProjectionCompact)
}

func parseProductID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, utils.InvalidArgument(i18n.KeyProductInvalidID)
	}
	return id, nil
}

func (s *ProductService) load(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := parseProductID(rawID)
	if err != nil {
		return nil, err
	}
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, utils.NotFound(i18n.KeyProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) enrichOne(ctx context.Context, p *models.Product) (*catalog.ProductView, error) {
	views, err := catalog.Enrich(ctx, s.taxonomy, []models.Product{*p}, catalog.ProjectionFull)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ProductService) GetProduct(ctx context.Context, rawID string) (*catalog.ProductView, error) {
	product, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return s.enrichOne(ctx, product)
}

func (s *ProductService) Variants(ctx context.Context, rawID string) (*catalog.VariantSet, error) {
	product, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	set := catalog.ExpandVariants(product)
	return &set, nil
}

func (s *ProductService) Colors(ctx context.Context) ([]string, error) {
	colors, err := s.store.DistinctColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	return colors, nil
}

func (s *ProductService) Sizes(ctx context.Context) ([]string, error) {
	sizes, err := s.store.DistinctSizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	return sizes, nil
}

func validatePrices(prices ...decimal.Decimal) error {
	for _, p := range prices {
		if p.IsNegative() {
			return utils.InvalidArgument(i18n.KeyProductInvalidPrice)
		}
	}
	return nil
}

// checkReferences verifies that the category and brand exist.
func (s *ProductService) checkReferences(ctx context.Context, categoryID, brandID uuid.UUID) error {
	categories, err := s.taxonomy.CategoriesByIDs(ctx, []uuid.UUID{categoryID})
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if _, ok := categories[categoryID]; !ok {
		return utils.InvalidArgument(i18n.KeyProductUnknownCategory)
	}

	brands, err := s.taxonomy.BrandsByIDs(ctx, []uuid.UUID{brandID})
	if err != nil {
		return fmt.Errorf("failed to load brand: %w", err)
	}
	if _, ok := brands[brandID]; !ok {
		return utils.InvalidArgument(i18n.KeyProductUnknownBrand)
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*catalog.ProductView, error) {
	if err := validatePrices(req.Price, req.SalePrice); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := &models.Product{
		Name:          strings.TrimSpace(req.Name),
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		IsSale:        req.IsSale,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Gender:        req.Gender,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		ProductImages: req.ProductImages,
		Stock:         req.Stock,
		IsActive:      active,
	}

	if err := s.store.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.enrichOne(ctx, product)
}

func (s *ProductService) UpdateProduct(ctx context.Context, rawID string, req *UpdateProductRequest) (*catalog.ProductView, error) {
	product, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.IsSale != nil {
		product.IsSale = *req.IsSale
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.BrandID != nil {
		product.BrandID = *req.BrandID
	}
	if req.Gender != nil {
		product.Gender = *req.Gender
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.ProductImages != nil {
		product.ProductImages = req.ProductImages
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := validatePrices(product.Price, product.SalePrice); err != nil {
		return nil, err
	}
	if req.CategoryID != nil || req.BrandID != nil {
		if err := s.checkReferences(ctx, product.CategoryID, product.BrandID); err != nil {
			return nil, err
		}
	}

	if err := s.store.Update(ctx, product); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, utils.NotFound(i18n.KeyProductNotFound)
		}
		return nil, err
	}
	return s.enrichOne(ctx, product)
}

func (s *ProductService) DeleteProduct(ctx context.Context, rawID string) error {
	id, err := parseProductID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return utils.NotFound(i18n.KeyProductNotFound)
		}
		return err
	}
	return nil
}
