package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/server/models"
)

// adminListUsers reports every user owning at least one task together with
// their task total.
func (s *Server) adminListUsers(c echo.Context, _ *models.User) error {
	counts, err := s.tasks.ListUsersWithTasks(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}

	out := make([]userTaskCountJSON, 0, len(counts))
	for _, row := range counts {
		out = append(out, userTaskCountJSON{Email: row.Email, TaskCount: row.TaskCount})
	}
	return c.JSON(http.StatusOK, out)
}

// adminUserTasks groups one user's tasks by category.
func (s *Server) adminUserTasks(c echo.Context, _ *models.User) error {
	breakdown, err := s.tasks.UserTaskBreakdown(c.Request().Context(), c.Param("user"))
	if err != nil {
		return s.writeError(c, err)
	}

	categories := make([]categoryTaskCountJSON, 0, len(breakdown.Categories))
	for _, row := range breakdown.Categories {
		categories = append(categories, categoryTaskCountJSON{
			CategoryName: row.CategoryName,
			TaskCount:    row.TaskCount,
		})
	}
	return c.JSON(http.StatusOK, userTaskBreakdownJSON{Email: breakdown.Email, Categories: categories})
}
