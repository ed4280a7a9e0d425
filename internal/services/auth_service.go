// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type AuthService struct {
	users         UserStore
	jwt           *utils.JWTManager
	notifications *NotificationService
	log           *logrus.Logger
	now           func() time.Time
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int          `json:"expiresIn"` // in seconds
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func NewAuthService(users UserStore, jwt *utils.JWTManager, notifications *NotificationService, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:         users,
		jwt:           jwt,
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := s.jwt.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.jwt.TTL().Seconds()),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, utils.Conflict(i18n.KeyAuthEmailInUse)
	}

	user := &models.User{
		Username: req.Username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, utils.Conflict(i18n.KeyAuthEmailInUse)
		}
		return nil, err
	}

	return s.issue(user)
}

// Login rejects unknown emails and wrong passwords with the same error. A
// locked account is reported only after the password checks out.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, utils.Unauthorized(i18n.KeyAuthInvalidCredentials)
		}
		return nil, err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, utils.Unauthorized(i18n.KeyAuthInvalidCredentials)
	}

	if user.IsLocked {
		return nil, utils.Forbidden(i18n.KeyAuthAccountLocked)
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return s.issue(user)
}

func (s *AuthService) userByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, utils.NotFound(i18n.KeyEmailUnknownEmail)
		}
		return nil, err
	}
	return user, nil
}

// SendOTP stores the hash of a fresh six digit code and mails the code.
func (s *AuthService) SendOTP(ctx context.Context, req *SendOTPRequest) error {
	user, err := s.userByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	expires := s.now().Add(otpTTL)
	user.OTPHash = utils.HashString(code)
	user.OTPExpiresAt = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if sendErr := s.notifications.SendOTPEmail(ctx, user, code); sendErr != nil {
		user.OTPHash = ""
		user.OTPExpiresAt = nil
		if err := s.users.Update(ctx, user); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Error("Failed to clear OTP")
		}
		return fmt.Errorf("failed to send OTP email: %w", sendErr)
	}
	return nil
}

// VerifyOTP consumes the pending code on success.
func (s *AuthService) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) error {
	user, err := s.userByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if user.OTPHash == "" || user.OTPExpiresAt == nil || !s.now().Before(*user.OTPExpiresAt) ||
		!utils.HashEquals(req.OTP, user.OTPHash) {
		return utils.InvalidArgument(i18n.KeyOTPInvalid)
	}

	user.OTPHash = ""
	user.OTPExpiresAt = nil
	return s.users.Update(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return utils.InvalidArgument(i18n.KeyPasswordRequired)
	}
	if len(req.NewPassword) < 8 {
		return utils.InvalidArgument(i18n.KeyPasswordTooShort)
	}
	if !utils.IsStrongPassword(req.NewPassword) {
		return utils.InvalidArgument(i18n.KeyPasswordWeak)
	}
	if req.OldPassword == req.NewPassword {
		return utils.InvalidArgument(i18n.KeyPasswordSameAsOld)
	}

	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return err
	}
	if err := user.CheckPassword(req.OldPassword); err != nil {
		return utils.Unauthorized(i18n.KeyPasswordOldIncorrect)
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.Update(ctx, user)
}

// ForgotPassword stores the hash of a one-time reset token and mails the raw
// token as a frontend link. If the mail cannot be sent the token is cleared
// again.
func (s *AuthService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return utils.InvalidArgument(i18n.KeyEmailRequired)
	}
	user, err := s.userByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expires := s.now().Add(resetPasswordTTL)
	user.ResetPasswordToken = utils.HashString(token)
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if sendErr := s.notifications.SendPasswordResetEmail(ctx, user, token); sendErr != nil {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpires = nil
		if err := s.users.Update(ctx, user); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Error("Failed to clear reset token")
		}
		return fmt.Errorf("failed to send password reset email: %w", sendErr)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if req.Token == "" || req.Password == "" || req.ConfirmPassword == "" {
		return utils.InvalidArgument(i18n.KeyPasswordResetRequired)
	}
	if req.Password != req.ConfirmPassword {
		return utils.InvalidArgument(i18n.KeyPasswordMismatch)
	}
	if len(req.Password) < 8 {
		return utils.InvalidArgument(i18n.KeyPasswordTooShort)
	}

	user, err := s.users.FindByResetToken(ctx, utils.HashString(req.Token), s.now())
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return utils.InvalidArgument(i18n.KeyPasswordResetInvalid)
		}
		return err
	}

	if err := user.SetPassword(req.Password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	return s.users.Update(ctx, user)
}
