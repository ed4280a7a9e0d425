// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/services"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,url"`
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /user/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyUserProfileFetched), user)
}

// PUT /user/update
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateUserProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyUserProfileUpdated), user)
}

// PUT /user/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateAvatarRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &services.UpdateUserProfileRequest{Avatar: req.Avatar})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyUserAvatarUpdated), user)
}

// POST /user/avatar/upload
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileNoneUploaded), nil)
		return
	}

	user, err := h.userService.UploadAvatar(c.Request.Context(), userID, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(lang, i18n.KeyUserAvatarUpdated), user)
}

// GET /user/all
func (h *UserHandler) GetUsers(c *gin.Context) {
	page, err := h.userService.ListUsers(c.Request.Context(), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyUserListFetched), page.Users, page.Pagination)
}

// GET /user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyUserProfileFetched), user)
}

// DELETE /user/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyUserDeleted), nil)
}

// PUT /user/block/:id
func (h *UserHandler) ToggleBlock(c *gin.Context) {
	user, err := h.userService.ToggleLock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	key := i18n.KeyUserUnlocked
	if user.IsLocked {
		key = i18n.KeyUserLocked
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), key), user)
}

// PUT /user/role/:id
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req services.ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyUserRoleChanged), user)
}
