package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/common"
)

// writeError converts a service error into the matching HTTP response.
// Anything not in the taxonomy is logged and reported as a generic 500.
func (s *Server) writeError(c echo.Context, err error) error {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": verr.Fields})
	}

	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_credentials"})
	case errors.Is(err, common.ErrTokenIssuance):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could_not_create_token"})
	case errors.Is(err, common.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthenticated"})
	case errors.Is(err, common.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Not found"})
	}

	s.logger.Error(c.Request().Context(), "request failed",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
}
