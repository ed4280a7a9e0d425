// internal/repository/memory/users.go
package memory

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fashionfactory/store-backend/internal/models"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewUserStore(seed ...models.User) *UserStore {
	s := &UserStore{users: make(map[uuid.UUID]models.User, len(seed))}
	for _, u := range seed {
		stamp(&u.BaseModel)
		s.users[u.ID] = u
	}
	return s
}

func (s *UserStore) find(match func(u *models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.users {
		u := s.users[id]
		if match(&u) {
			return &u, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.ID == id })
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *UserStore) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return s.find(func(u *models.User) bool {
		return u.ResetPasswordToken != "" && u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now)
	})
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.ErrDuplicateKey
		}
	}
	stamp(&u.BaseModel)
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[u.ID]
	if !ok {
		return models.ErrRecordNotFound
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) List(_ context.Context, search string, offset, limit int) ([]models.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(search)
	matched := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			matched = append(matched, u)
		}
	}
	slices.SortFunc(matched, func(a, b models.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})

	total := int64(len(matched))
	start := min(max(offset, 0), len(matched))
	end := len(matched)
	if limit > 0 {
		end = min(start+limit, len(matched))
	}
	return matched[start:end], total, nil
}
