package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/models"
)

type ProductStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *ProductStore
	base  time.Time
}

func (s *ProductStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.base = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	seed := make([]models.Product, 0, 25)
	for i := 1; i <= 25; i++ {
		created := s.base.Add(time.Duration(i) * time.Minute)
		seed = append(seed, models.Product{
			BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: created, UpdatedAt: created},
			Name:      fmt.Sprintf("Item %d", i),
			Price:     decimal.NewFromInt(int64(i * 10)),
			SalePrice: decimal.Zero,
			Sizes:     []string{"M"},
			Colors:    []string{"Red"},
			IsActive:  true,
		})
	}
	s.store = NewProductStore(seed...)
}

func (s *ProductStoreTestSuite) TestPaginationOverFilteredSet() {
	total, err := s.store.Count(s.ctx, catalog.Filter{})
	s.Require().NoError(err)
	s.Equal(int64(25), total)

	page := catalog.NewPage(2, 10, catalog.DefaultPageLimits)
	rows, err := s.store.Find(s.ctx, catalog.Query{
		Sort:   catalog.Sort{Key: catalog.SortByCreatedAt, Direction: catalog.Ascending},
		Offset: page.Offset(),
		Limit:  page.Size,
	})
	s.Require().NoError(err)
	s.Require().Len(rows, 5)
	s.Equal("Item 21", rows[0].Name)
	s.Equal("Item 25", rows[4].Name)

	meta := page.Pagination(total)
	s.Equal(3, meta.Page)
	s.Equal(3, meta.TotalPages)
}

func (s *ProductStoreTestSuite) TestNumericNameOrder() {
	rows, err := s.store.Find(s.ctx, catalog.Query{
		Sort:  catalog.Sort{Key: catalog.SortByName, Direction: catalog.Ascending},
		Limit: 3,
	})
	s.Require().NoError(err)
	s.Equal([]string{"Item 1", "Item 2", "Item 3"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func (s *ProductStoreTestSuite) TestListingIsIdempotent() {
	q := catalog.Query{Sort: catalog.Newest, Offset: 5, Limit: 7}
	first, err := s.store.Find(s.ctx, q)
	s.Require().NoError(err)
	second, err := s.store.Find(s.ctx, q)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ProductStoreTestSuite) TestOffsetPastEnd() {
	rows, err := s.store.Find(s.ctx, catalog.Query{Sort: catalog.Newest, Offset: 100, Limit: 10})
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *ProductStoreTestSuite) TestFindReturnsCopies() {
	rows, err := s.store.Find(s.ctx, catalog.Query{Sort: catalog.Newest, Limit: 1})
	s.Require().NoError(err)
	rows[0].Sizes[0] = "XXL"

	again, err := s.store.FindByID(s.ctx, rows[0].ID)
	s.Require().NoError(err)
	s.Equal("M", again.Sizes[0])
}

func (s *ProductStoreTestSuite) TestSampleRespectsFilterAndSize() {
	rows, err := s.store.Sample(s.ctx, catalog.NewFilter(catalog.ActiveIs(true)), 5)
	s.Require().NoError(err)
	s.Len(rows, 5)

	rows, err = s.store.Sample(s.ctx, catalog.NewFilter(catalog.ActiveIs(false)), 5)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *ProductStoreTestSuite) TestWritesAndNotFound() {
	p := &models.Product{Name: "New", Price: decimal.NewFromInt(5), IsActive: true}
	s.Require().NoError(s.store.Create(s.ctx, p))
	s.NotEqual(uuid.Nil, p.ID)
	s.False(p.CreatedAt.IsZero())

	p.Name = "Renamed"
	s.Require().NoError(s.store.Update(s.ctx, p))
	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", got.Name)

	s.Require().NoError(s.store.Delete(s.ctx, p.ID))
	_, err = s.store.FindByID(s.ctx, p.ID)
	s.True(errors.Is(err, models.ErrRecordNotFound))
	s.True(errors.Is(s.store.Delete(s.ctx, p.ID), models.ErrRecordNotFound))
	s.True(errors.Is(s.store.Update(s.ctx, &models.Product{BaseModel: models.BaseModel{ID: uuid.New()}}), models.ErrRecordNotFound))
}

func (s *ProductStoreTestSuite) TestSnapshotSeesConsistentState() {
	err := s.store.Snapshot(s.ctx, func(r catalog.Reader) error {
		total, err := r.Count(s.ctx, catalog.Filter{})
		if err != nil {
			return err
		}
		rows, err := r.Find(s.ctx, catalog.Query{Sort: catalog.Newest})
		if err != nil {
			return err
		}
		s.Equal(total, int64(len(rows)))
		return nil
	})
	s.NoError(err)
}

func TestProductStoreSuite(t *testing.T) {
	suite.Run(t, new(ProductStoreTestSuite))
}

func TestPriceRangeUsesEffectivePrice(t *testing.T) {
	ctx := context.Background()
	onSale := models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "sale branch",
		Price:     decimal.NewFromInt(100),
		SalePrice: decimal.NewFromInt(30),
		IsSale:    true,
	}
	zeroSale := models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "zero sale price",
		Price:     decimal.NewFromInt(100),
		SalePrice: decimal.Zero,
		IsSale:    true,
	}
	store := NewProductStore(onSale, zeroSale)

	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(50)
	rows, err := store.Find(ctx, catalog.Query{
		Filter: catalog.NewFilter(catalog.PriceRange(&lo, &hi)),
		Sort:   catalog.Newest,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, onSale.ID, rows[0].ID)
}

func TestDistinctValuesAreSorted(t *testing.T) {
	store := NewProductStore(
		models.Product{Sizes: []string{"M", "S"}, Colors: []string{"Red", "Blue"}},
		models.Product{Sizes: []string{"L", "M"}, Colors: []string{"Blue"}},
	)
	sizes, err := store.DistinctSizes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"L", "M", "S"}, sizes)

	colors, err := store.DistinctColors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Blue", "Red"}, colors)
}
