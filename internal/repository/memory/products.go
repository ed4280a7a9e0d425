// Package memory provides map-backed stores with the same contracts as the
// GORM repositories. They back the test suites and STORE_DRIVER=memory.
package memory

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/models"
)

func cloneProduct(p models.Product) models.Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	p.ProductImages = slices.Clone(p.ProductImages)
	return p
}

// products is the unlocked read side shared by the store and its snapshots.
type products map[uuid.UUID]models.Product

func (m products) matching(f catalog.Filter) []*models.Product {
	out := make([]*models.Product, 0, len(m))
	for id := range m {
		p := m[id]
		if f.Match(&p) {
			out = append(out, &p)
		}
	}
	return out
}

func (m products) Count(_ context.Context, f catalog.Filter) (int64, error) {
	var n int64
	for id := range m {
		p := m[id]
		if f.Match(&p) {
			n++
		}
	}
	return n, nil
}

func (m products) Find(_ context.Context, q catalog.Query) ([]models.Product, error) {
	rows := m.matching(q.Filter)
	slices.SortFunc(rows, q.Sort.Comparator())

	start := min(max(q.Offset, 0), len(rows))
	end := len(rows)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(rows))
	}

	out := make([]models.Product, 0, end-start)
	for _, p := range rows[start:end] {
		out = append(out, cloneProduct(*p))
	}
	return out, nil
}

func (m products) Sample(_ context.Context, f catalog.Filter, n int) ([]models.Product, error) {
	rows := m.matching(f)
	rand.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	if n < len(rows) {
		rows = rows[:n]
	}
	out := make([]models.Product, 0, len(rows))
	for _, p := range rows {
		out = append(out, cloneProduct(*p))
	}
	return out, nil
}

func (m products) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (m products) distinct(values func(p *models.Product) []string) []string {
	seen := make(map[string]struct{})
	for id := range m {
		p := m[id]
		for _, v := range values(&p) {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func (m products) DistinctColors(_ context.Context) ([]string, error) {
	return m.distinct(func(p *models.Product) []string { return p.Colors }), nil
}

func (m products) DistinctSizes(_ context.Context) ([]string, error) {
	return m.distinct(func(p *models.Product) []string { return p.Sizes }), nil
}

// ProductStore is safe for concurrent use.
type ProductStore struct {
	mu    sync.RWMutex
	items products
	now   func() time.Time
}

func NewProductStore(seed ...models.Product) *ProductStore {
	s := &ProductStore{items: make(products, len(seed)), now: time.Now}
	for _, p := range seed {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		s.items[p.ID] = cloneProduct(p)
	}
	return s
}

func (s *ProductStore) Count(ctx context.Context, f catalog.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Count(ctx, f)
}

func (s *ProductStore) Find(ctx context.Context, q catalog.Query) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Find(ctx, q)
}

func (s *ProductStore) Sample(ctx context.Context, f catalog.Filter, n int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Sample(ctx, f, n)
}

func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.FindByID(ctx, id)
}

func (s *ProductStore) DistinctColors(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.DistinctColors(ctx)
}

func (s *ProductStore) DistinctSizes(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.DistinctSizes(ctx)
}

// Snapshot holds the read lock for the whole of fn, so writers wait until it
// returns.
func (s *ProductStore) Snapshot(ctx context.Context, fn func(catalog.Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.items)
}

func (s *ProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.items[p.ID] = cloneProduct(*p)
	return nil
}

func (s *ProductStore) Update(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[p.ID]
	if !ok {
		return models.ErrRecordNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	s.items[p.ID] = cloneProduct(*p)
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}
