package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/repository/memory"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	cfg      config.CatalogConfig
	category models.Category
	brand    models.Brand
	base     time.Time
	store    *memory.ProductStore
	taxonomy *memory.TaxonomyStore
	service  *ProductService
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = testConfig().Catalog
	s.base = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	s.category = models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Áo thun", Slug: "ao-thun"}
	s.brand = models.Brand{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Saigon Denim", Slug: "saigon-denim", Logo: "https://cdn.test/sgd.png"}
	s.taxonomy = memory.NewTaxonomyStore([]models.Category{s.category}, []models.Brand{s.brand})
	s.use()
}

// use replaces the catalog with products and rebuilds the service.
func (s *ProductServiceTestSuite) use(products ...models.Product) {
	s.store = memory.NewProductStore(products...)
	s.service = NewProductService(s.store, s.taxonomy, s.cfg)
}

func (s *ProductServiceTestSuite) product(i int, name string, price, salePrice int64, isSale bool) models.Product {
	created := s.base.Add(time.Duration(i) * time.Minute)
	return models.Product{
		BaseModel:  models.BaseModel{ID: uuid.New(), CreatedAt: created, UpdatedAt: created},
		Name:       name,
		Price:      decimal.NewFromInt(price),
		SalePrice:  decimal.NewFromInt(salePrice),
		IsSale:     isSale,
		CategoryID: s.category.ID,
		BrandID:    s.brand.ID,
		Gender:     models.GenderUnisex,
		Sizes:      []string{"M"},
		Colors:     []string{"Red"},
		Stock:      5,
		IsActive:   true,
	}
}

func (s *ProductServiceTestSuite) numbered(n int) []models.Product {
	out := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, s.product(i, fmt.Sprintf("Item %d", i), int64(i*10), 0, false))
	}
	return out
}

func (s *ProductServiceTestSuite) names(views []catalog.ProductView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Name)
	}
	return out
}

func (s *ProductServiceTestSuite) TestLastPageReportsOneBasedIndex() {
	s.use(s.numbered(25)...)

	page, err := s.service.ListProducts(s.ctx, catalog.ListParams{
		SortBy: "createdAt", SortDirection: "asc", Page: "2", Size: "10",
	})
	s.Require().NoError(err)
	s.Equal(utils.Pagination{Page: 3, TotalPages: 3, TotalItems: 25}, page.Pagination)
	s.Equal([]string{"Item 21", "Item 22", "Item 23", "Item 24", "Item 25"}, s.names(page.Products))
}

func (s *ProductServiceTestSuite) TestConsistentPaginationMatchesPlainListing() {
	s.use(s.numbered(25)...)
	params := catalog.ListParams{SortBy: "price", Page: "1", Size: "10"}

	plain, err := s.service.ListProducts(s.ctx, params)
	s.Require().NoError(err)

	s.cfg.ConsistentPagination = true
	s.service = NewProductService(s.store, s.taxonomy, s.cfg)
	snap, err := s.service.ListProducts(s.ctx, params)
	s.Require().NoError(err)

	s.Equal(plain.Pagination, snap.Pagination)
	s.Equal(s.names(plain.Products), s.names(snap.Products))
}

func (s *ProductServiceTestSuite) TestPriceRangeUsesEffectivePrice() {
	onSale := s.product(1, "On sale", 100, 30, true)
	zeroSale := s.product(2, "Zero sale price", 100, 0, true)
	plain := s.product(3, "Plain", 40, 0, false)
	s.use(onSale, zeroSale, plain)

	page, err := s.service.ListProducts(s.ctx, catalog.ListParams{MinPrice: "10", MaxPrice: "50", SortBy: "name", SortDirection: "asc"})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"On sale", "Plain"}, s.names(page.Products))
	s.Equal(int64(2), page.Pagination.TotalItems)

	for _, v := range page.Products {
		if v.Name == "On sale" {
			s.True(v.EffectivePrice.Equal(decimal.NewFromInt(30)))
		}
	}
}

func (s *ProductServiceTestSuite) TestNameSortIsVietnameseAndNumeric() {
	s.use(
		s.product(1, "Item 10", 10, 0, false),
		s.product(2, "Bình giữ nhiệt", 10, 0, false),
		s.product(3, "Item 2", 10, 0, false),
		s.product(4, "áo sơ mi", 10, 0, false),
	)

	page, err := s.service.ListProducts(s.ctx, catalog.ListParams{SortBy: "name", SortDirection: "asc"})
	s.Require().NoError(err)
	s.Equal([]string{"áo sơ mi", "Bình giữ nhiệt", "Item 2", "Item 10"}, s.names(page.Products))
}

func (s *ProductServiceTestSuite) TestListingIsIdempotent() {
	s.use(s.numbered(12)...)
	params := catalog.ListParams{SortBy: "stock", Page: "0", Size: "5"}

	first, err := s.service.ListProducts(s.ctx, params)
	s.Require().NoError(err)
	second, err := s.service.ListProducts(s.ctx, params)
	s.Require().NoError(err)

	s.Equal(first.Pagination, second.Pagination)
	s.Equal(s.names(first.Products), s.names(second.Products))
}

func (s *ProductServiceTestSuite) TestListRejectsUnknownSortKey() {
	_, err := s.service.ListProducts(s.ctx, catalog.ListParams{SortBy: "password"})
	s.Require().Error(err)
	s.True(errors.Is(err, utils.ErrInvalidArgument))
}

func (s *ProductServiceTestSuite) TestEmptyResultStillReportsPagination() {
	s.use(s.numbered(3)...)

	page, err := s.service.ListProducts(s.ctx, catalog.ListParams{Search: "không tồn tại"})
	s.Require().NoError(err)
	s.NotNil(page.Products)
	s.Empty(page.Products)
	s.Equal(utils.Pagination{Page: 1, TotalPages: 0, TotalItems: 0}, page.Pagination)
}

func (s *ProductServiceTestSuite) TestMissingTaxonomyYieldsNilSummary() {
	orphan := s.product(1, "Orphan", 10, 0, false)
	orphan.CategoryID = uuid.New()
	s.use(orphan)

	view, err := s.service.GetProduct(s.ctx, orphan.ID.String())
	s.Require().NoError(err)
	s.Nil(view.Category)
	s.Require().NotNil(view.Brand)
	s.Equal("Saigon Denim", view.Brand.Name)
	s.Equal("saigon-denim", view.Brand.Slug)
}

func (s *ProductServiceTestSuite) TestTopDiscountedSkipsZeroPrice() {
	free := s.product(1, "Free sample", 0, 10, true)
	half := s.product(2, "Half price", 200, 100, true)
	small := s.product(3, "Small discount", 100, 90, true)
	none := s.product(4, "Full price", 100, 0, false)
	s.use(free, half, small, none)

	views, err := s.service.TopDiscounted(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Half price", "Small discount"}, s.names(views))
	s.Require().NotNil(views[0].DiscountPercentage)
	s.True(views[0].DiscountPercentage.Equal(decimal.NewFromInt(50)))
}

func (s *ProductServiceTestSuite) TestNewArrivalsNewestActiveFirst() {
	products := s.numbered(12)
	products[11].IsActive = false // Item 12
	s.use(products...)

	views, err := s.service.NewArrivals(s.ctx)
	s.Require().NoError(err)
	s.Len(views, 10)
	s.Equal("Item 11", views[0].Name)
}

func (s *ProductServiceTestSuite) TestTopSellingModes() {
	products := s.numbered(8)
	for i := range products {
		products[i].SoldCount = int64(i)
	}
	s.use(products...)

	sampled, err := s.service.TopSelling(s.ctx)
	s.Require().NoError(err)
	s.Len(sampled, 5)

	s.cfg.TopSellingMode = config.TopSellingSoldCount
	s.service = NewProductService(s.store, s.taxonomy, s.cfg)
	best, err := s.service.TopSelling(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Item 8", "Item 7", "Item 6", "Item 5", "Item 4"}, s.names(best))
}

func (s *ProductServiceTestSuite) TestSearchMatchesPercentLiterally() {
	s.use(
		s.product(1, "Giảm 50% áo khoác", 100, 0, false),
		s.product(2, "Áo khoác 500", 100, 0, false),
	)

	views, err := s.service.Search(s.ctx, "50%")
	s.Require().NoError(err)
	s.Equal([]string{"Giảm 50% áo khoác"}, s.names(views))

	_, err = s.service.Search(s.ctx, "  ")
	s.True(errors.Is(err, utils.ErrInvalidArgument))
}

func (s *ProductServiceTestSuite) TestByGenderAndSize() {
	men := s.product(1, "Men shirt", 10, 0, false)
	men.Gender = models.GenderMen
	men.Sizes = []string{"L", "XL"}
	women := s.product(2, "Women dress", 10, 0, false)
	women.Gender = models.GenderWomen
	s.use(men, women)

	page, err := s.service.ByGender(s.ctx, "Men", "", "")
	s.Require().NoError(err)
	s.Equal([]string{"Men shirt"}, s.names(page.Products))
	s.Equal(1, page.Pagination.Page)
	s.Require().NotNil(page.Products[0].Category)
	s.Empty(page.Products[0].Category.Slug)

	_, err = s.service.ByGender(s.ctx, "Robots", "", "")
	s.True(errors.Is(err, utils.ErrInvalidArgument))

	page, err = s.service.BySize(s.ctx, "XL", "0", "10")
	s.Require().NoError(err)
	s.Equal([]string{"Men shirt"}, s.names(page.Products))
}

func (s *ProductServiceTestSuite) TestVariantsShareAvailability() {
	p := s.product(1, "Tee", 100, 0, false)
	p.Sizes = []string{"S", "M"}
	p.Colors = []string{"Red"}
	p.Stock = 0
	s.use(p)

	set, err := s.service.Variants(s.ctx, p.ID.String())
	s.Require().NoError(err)
	s.Require().Len(set.Combinations, 2)
	for _, v := range set.Combinations {
		s.False(v.Available)
		s.Equal("Red", v.Color)
	}
}

func (s *ProductServiceTestSuite) TestGetProductErrors() {
	_, err := s.service.GetProduct(s.ctx, "abc")
	s.True(errors.Is(err, utils.ErrInvalidArgument))

	_, err = s.service.GetProduct(s.ctx, uuid.NewString())
	s.True(errors.Is(err, utils.ErrNotFound))
}

func (s *ProductServiceTestSuite) TestCreateUpdateDelete() {
	created, err := s.service.CreateProduct(s.ctx, &CreateProductRequest{
		Name:       "Áo Polo Nam",
		Price:      decimal.NewFromInt(350000),
		CategoryID: s.category.ID,
		BrandID:    s.brand.ID,
		Gender:     models.GenderMen,
		Sizes:      []string{"M", "L"},
		Colors:     []string{"Navy"},
		Stock:      20,
	})
	s.Require().NoError(err)
	s.Equal("ao-polo-nam", created.Slug)
	s.True(created.IsActive)
	s.Require().NotNil(created.Category)
	s.Equal("Áo thun", created.Category.Name)

	sale := decimal.NewFromInt(299000)
	onSale := true
	updated, err := s.service.UpdateProduct(s.ctx, created.ID.String(), &UpdateProductRequest{SalePrice: &sale, IsSale: &onSale})
	s.Require().NoError(err)
	s.Equal("Áo Polo Nam", updated.Name)
	s.True(updated.EffectivePrice.Equal(sale))

	negative := decimal.NewFromInt(-1)
	_, err = s.service.UpdateProduct(s.ctx, created.ID.String(), &UpdateProductRequest{Price: &negative})
	s.True(errors.Is(err, utils.ErrInvalidArgument))

	s.Require().NoError(s.service.DeleteProduct(s.ctx, created.ID.String()))
	s.True(errors.Is(s.service.DeleteProduct(s.ctx, created.ID.String()), utils.ErrNotFound))
}

func (s *ProductServiceTestSuite) TestCreateRejectsUnknownReferences() {
	_, err := s.service.CreateProduct(s.ctx, &CreateProductRequest{
		Name:       "Ghost",
		Price:      decimal.NewFromInt(10),
		CategoryID: uuid.New(),
		BrandID:    s.brand.ID,
	})
	s.Require().Error(err)
	appErr, ok := utils.AsAppError(err)
	s.Require().True(ok)
	s.Equal(i18n.KeyProductUnknownCategory, appErr.Key)
}

func (s *ProductServiceTestSuite) TestColorsAndSizesAreDistinct() {
	a := s.product(1, "A", 10, 0, false)
	a.Colors = []string{"Red", "Blue"}
	a.Sizes = []string{"S", "M"}
	b := s.product(2, "B", 10, 0, false)
	b.Colors = []string{"Blue"}
	b.Sizes = []string{"M", "L"}
	s.use(a, b)

	colors, err := s.service.Colors(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Red", "Blue"}, colors)

	sizes, err := s.service.Sizes(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"S", "M", "L"}, sizes)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
