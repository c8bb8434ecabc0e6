package rest

import (
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard/internal/common"
	"taskboard/internal/server/models"
)

// actorHandlerFunc is an echo handler that additionally receives the
// authenticated user.
type actorHandlerFunc func(c echo.Context, actor *models.User) error

// withActor resolves the bearer token into a user before calling the
// handler. Requests without a valid token never reach the wrapped handler.
func (s *Server) withActor(h actorHandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

		actor, err := s.users.Authenticate(c.Request().Context(), token)
		if err != nil {
			return s.writeError(c, err)
		}

		return h(c, actor)
	}
}

// adminOnly rejects non-admin actors before the handler touches any data.
func (s *Server) adminOnly(h actorHandlerFunc) actorHandlerFunc {
	return func(c echo.Context, actor *models.User) error {
		if actor.Role != models.RoleAdmin {
			return s.writeError(c, common.ErrForbidden)
		}
		return h(c, actor)
	}
}

func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
