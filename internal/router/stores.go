// internal/router/stores.go
package router

import (
	"gorm.io/gorm"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/database"
	"github.com/fashionfactory/store-backend/internal/repository"
	"github.com/fashionfactory/store-backend/internal/repository/memory"
	"github.com/fashionfactory/store-backend/internal/services"
)

// Stores is the persistence layer the HTTP API runs against.
type Stores struct {
	Products catalog.Store
	Taxonomy catalog.TaxonomyStore
	Users    services.UserStore
}

func PostgresStores(db *gorm.DB) Stores {
	return Stores{
		Products: repository.NewProductRepository(db),
		Taxonomy: repository.NewTaxonomyRepository(db),
		Users:    repository.NewUserRepository(db),
	}
}

// MemoryStores holds the sample catalog and the admin account in process
// memory. Nothing survives a restart.
func MemoryStores(admin config.AdminConfig) (Stores, error) {
	sample := database.SampleCatalog()

	user, err := database.NewAdminUser(admin)
	if err != nil {
		return Stores{}, err
	}

	return Stores{
		Products: memory.NewProductStore(sample.Products...),
		Taxonomy: memory.NewTaxonomyStore(sample.Categories, sample.Brands),
		Users:    memory.NewUserStore(*user),
	}, nil
}
