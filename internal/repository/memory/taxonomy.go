// internal/repository/memory/taxonomy.go
package memory

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/models"
)

type TaxonomyStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
	brands     map[uuid.UUID]models.Brand
}

func NewTaxonomyStore(categories []models.Category, brands []models.Brand) *TaxonomyStore {
	s := &TaxonomyStore{
		categories: make(map[uuid.UUID]models.Category, len(categories)),
		brands:     make(map[uuid.UUID]models.Brand, len(brands)),
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	for _, b := range brands {
		s.brands[b.ID] = b
	}
	return s
}

func pick[T any](all map[uuid.UUID]T, ids []uuid.UUID) map[uuid.UUID]T {
	out := make(map[uuid.UUID]T, len(ids))
	for _, id := range ids {
		if v, ok := all[id]; ok {
			out[id] = v
		}
	}
	return out
}

func (s *TaxonomyStore) CategoriesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.categories, ids), nil
}

func (s *TaxonomyStore) BrandsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.brands, ids), nil
}

// byName sorts with the same collation as the database listing.
func byName[T any](all map[uuid.UUID]T, name func(T) string, id func(T) uuid.UUID) []T {
	out := make([]T, 0, len(all))
	for _, v := range all {
		out = append(out, v)
	}
	col := catalog.NewNameCollator()
	slices.SortFunc(out, func(a, b T) int {
		if c := col.CompareString(name(a), name(b)); c != 0 {
			return c
		}
		ida, idb := id(a), id(b)
		return bytes.Compare(ida[:], idb[:])
	})
	return out
}

func (s *TaxonomyStore) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byName(s.categories,
		func(c models.Category) string { return c.Name },
		func(c models.Category) uuid.UUID { return c.ID }), nil
}

func (s *TaxonomyStore) ListBrands(_ context.Context) ([]models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byName(s.brands,
		func(b models.Brand) string { return b.Name },
		func(b models.Brand) uuid.UUID { return b.ID }), nil
}

func (s *TaxonomyStore) CategorySlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *TaxonomyStore) BrandSlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.brands {
		if b.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *TaxonomyStore) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&c.BaseModel)
	s.categories[c.ID] = *c
	return nil
}

func (s *TaxonomyStore) CreateBrand(_ context.Context, b *models.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&b.BaseModel)
	s.brands[b.ID] = *b
	return nil
}

// stamp fills the id and timestamps the database would assign.
func stamp(b *models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
