// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/services"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthRegisterSuccess), authResponse)
}

// POST /user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthLoginSuccess), authResponse)
}

// POST /user/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req services.SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.SendOTP(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyOTPSent), nil)
}

// POST /user/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req services.VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.VerifyOTP(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyOTPVerified), nil)
}

// POST /user/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyPasswordChanged), nil)
}

// POST /user/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyPasswordResetEmailSent), nil)
}

// POST /user/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyPasswordResetSuccess), nil)
}
