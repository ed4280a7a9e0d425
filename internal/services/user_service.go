// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

// UserStore is the persistence contract shared by the GORM and in-memory user
// repositories.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, offset, limit int) ([]models.User, int64, error)
}

type UserService struct {
	users          UserStore
	storageService *StorageService
}

type UpdateUserProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,username"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,url"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type UserPage struct {
	Users      []models.User    `json:"users"`
	Pagination utils.Pagination `json:"pagination"`
}

func NewUserService(users UserStore, storageService *StorageService) *UserService {
	return &UserService{
		users:          users,
		storageService: storageService,
	}
}

func findUser(ctx context.Context, users UserStore, rawID string) (*models.User, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, utils.InvalidArgument(i18n.KeyUserInvalidID)
	}
	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, utils.NotFound(i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return findUser(ctx, s.users, userID)
}

// UpdateProfile only touches fields that are set in the request.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *UpdateUserProfileRequest) (*models.User, error) {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(req.Bio); v != "" {
		user.Bio = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.TrimSpace(req.Avatar); v != "" {
		if key, ok := s.storageService.KeyFromURL(v); ok && !ownsAvatar(user, key) {
			return nil, utils.InvalidArgument(i18n.KeyUserAvatarNotOwned)
		}
		user.Avatar = v
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// avatarFolder keeps every user's uploads under their own prefix.
func avatarFolder(user *models.User) string {
	return AvatarUpload.Folder + "/" + user.ID.String()
}

func ownsAvatar(user *models.User, key string) bool {
	return strings.HasPrefix(key, avatarFolder(user)+"/")
}

func (s *UserService) UploadAvatar(ctx context.Context, userID string, header *multipart.FileHeader) (*models.User, error) {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	options := AvatarUpload
	options.Folder = avatarFolder(user)
	result, err := s.storageService.UploadImage(ctx, header, options)
	if err != nil {
		return nil, err
	}

	previous := user.Avatar
	user.Avatar = result.URL
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	if key, ok := s.storageService.KeyFromURL(previous); ok && ownsAvatar(user, key) {
		if err := s.storageService.DeleteFile(ctx, key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to delete previous avatar")
		}
	}
	return user, nil
}

// ListUsers pages through accounts newest first, optionally narrowed by a
// username or email substring.
func (s *UserService) ListUsers(ctx context.Context, params utils.PaginationParams) (*UserPage, error) {
	users, total, err := s.users.List(ctx, strings.TrimSpace(params.Search), params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	return &UserPage{
		Users: users,
		Pagination: utils.Pagination{
			Page:       params.Page,
			TotalPages: utils.TotalPages(total, params.Limit),
			TotalItems: total,
		},
	}, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

// ToggleLock flips the locked flag and returns the updated account.
func (s *UserService) ToggleLock(ctx context.Context, userID string) (*models.User, error) {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	user.IsLocked = !user.IsLocked
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) ChangeRole(ctx context.Context, userID string, req *ChangeRoleRequest) (*models.User, error) {
	role := models.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		return nil, utils.InvalidArgument(i18n.KeyUserInvalidRole)
	}

	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
