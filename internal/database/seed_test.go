package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/models"
)

func TestSampleCatalogReferencesExist(t *testing.T) {
	sample := SampleCatalog()
	assert.NotEmpty(t, sample.Products)

	categories := map[string]bool{}
	for _, c := range sample.Categories {
		categories[c.ID.String()] = true
		assert.NotEmpty(t, c.Slug)
	}
	brands := map[string]bool{}
	for _, b := range sample.Brands {
		brands[b.ID.String()] = true
	}

	for _, p := range sample.Products {
		assert.True(t, categories[p.CategoryID.String()], p.Name)
		assert.True(t, brands[p.BrandID.String()], p.Name)
		assert.True(t, p.Gender.Valid(), p.Name)
		assert.Equal(t, p.SalePrice.IsPositive(), p.IsSale, p.Name)
	}
}

func TestNewAdminUser(t *testing.T) {
	user, err := NewAdminUser(config.AdminConfig{Email: "root@example.com", Password: "Admin123"})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, user.CheckPassword("Admin123"))
}

func TestGormLogLevel(t *testing.T) {
	assert.NotEqual(t, gormLogLevel("silent"), gormLogLevel("info"))
	assert.Equal(t, gormLogLevel("warn"), gormLogLevel("bogus"))
}
