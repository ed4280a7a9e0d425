package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/repository/memory"
	"github.com/fashionfactory/store-backend/internal/utils"
)

func TestTaxonomyServiceCreateCategory(t *testing.T) {
	svc := NewTaxonomyService(memory.NewTaxonomyStore(nil, nil))
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &CreateCategoryRequest{Name: " Quần jean "})
	require.NoError(t, err)
	assert.Equal(t, "Quần jean", category.Name)
	assert.Equal(t, "quan-jean", category.Slug)

	_, err = svc.CreateCategory(ctx, &CreateCategoryRequest{Name: "Quần Jean"})
	assert.True(t, errors.Is(err, utils.ErrConflict))

	_, err = svc.CreateCategory(ctx, &CreateCategoryRequest{Name: "!!!"})
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
}

func TestTaxonomyServiceBrandsSortedByName(t *testing.T) {
	svc := NewTaxonomyService(memory.NewTaxonomyStore(nil, nil))
	ctx := context.Background()

	for _, name := range []string{"Việt Tiến", "An Phước", "Biti's"} {
		_, err := svc.CreateBrand(ctx, &CreateBrandRequest{Name: name})
		require.NoError(t, err)
	}

	_, err := svc.CreateBrand(ctx, &CreateBrandRequest{Name: "Other", Slug: "an-phuoc"})
	assert.True(t, errors.Is(err, utils.ErrConflict))

	brands, err := svc.ListBrands(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(brands))
	for _, b := range brands {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"An Phước", "Biti's", "Việt Tiến"}, names)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Category{}, categories)
}
