// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/utils"
)

// respondError writes the envelope for a service error. AppErrors are
// translated into the caller's language; anything else is logged and
// reported as an internal error without details.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	appErr, ok := utils.AsAppError(err)
	if !ok {
		_ = c.Error(err)
		userID, _ := c.Get("user_id")
		logrus.WithError(err).WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"user_id": userID,
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
		return
	}

	message := i18n.T(lang, appErr.Key, appErr.Args...)
	switch {
	case errors.Is(appErr, utils.ErrInvalidArgument):
		utils.BadRequestResponse(c, message, nil)
	case errors.Is(appErr, utils.ErrNotFound):
		utils.NotFoundResponse(c, message)
	case errors.Is(appErr, utils.ErrUnauthorized):
		utils.UnauthorizedResponse(c, message)
	case errors.Is(appErr, utils.ErrForbidden):
		utils.ForbiddenResponse(c, message)
	case errors.Is(appErr, utils.ErrConflict):
		utils.ConflictResponse(c, message)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes and validates the request body, writing the 400 response
// itself when either step fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
	}
	return userID, exists
}
