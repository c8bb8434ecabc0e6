package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/server/models"
	"taskboard/internal/server/services"
)

func (s *Server) listCategories(c echo.Context, actor *models.User) error {
	categories, err := s.categories.List(c.Request().Context(), actor)
	if err != nil {
		return s.writeError(c, err)
	}

	out := make([]categoryJSON, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryJSON(category))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createCategory(c echo.Context, actor *models.User) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, badRequestBody())
	}

	category, err := s.categories.Create(c.Request().Context(), actor, services.CategoryInput{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toCategoryJSON(category))
}

func (s *Server) getCategory(c echo.Context, actor *models.User) error {
	category, err := s.categories.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryJSON(category))
}

func (s *Server) updateCategory(c echo.Context, actor *models.User) error {
	var req categoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, badRequestBody())
	}

	category, err := s.categories.Update(c.Request().Context(), actor, c.Param("id"), services.CategoryUpdate{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryJSON(category))
}

func (s *Server) deleteCategory(c echo.Context, actor *models.User) error {
	if err := s.categories.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
