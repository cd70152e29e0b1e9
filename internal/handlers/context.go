package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/orbithammer/parasocial-sub002/internal/models"
	"github.com/orbithammer/parasocial-sub002/internal/services"
)

// getUserIDFromContext extracts the authenticated user id set by the JWT
// middleware; empty when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) string {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserID
}

// respondServiceError shapes a follow-service failure into the uniform
// {success, error, code} envelope with a status derived from the error code.
func respondServiceError(c echo.Context, serr *services.Error) error {
	return c.JSON(statusForCode(serr.Code), echo.Map{
		"success": false,
		"error":   serr.Message,
		"code":    serr.Code,
	})
}

func statusForCode(code services.ErrorCode) int {
	switch code {
	case services.CodeUserNotFound:
		return http.StatusNotFound
	case services.CodeAlreadyFollowing, services.CodeNotFollowing:
		return http.StatusConflict
	case services.CodeUserInactive:
		return http.StatusForbidden
	case services.CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
