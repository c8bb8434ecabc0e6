package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard/internal/server/models"
)

func (s *Server) listTasks(c echo.Context, actor *models.User) error {
	tasks, err := s.tasks.List(c.Request().Context(), actor, c.QueryParam("category_id"))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toTaskListJSON(tasks, time.Now()))
}

func (s *Server) createTask(c echo.Context, actor *models.User) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, badRequestBody())
	}

	in, err := toTaskInput(req)
	if err != nil {
		return s.writeError(c, err)
	}

	task, err := s.tasks.Create(c.Request().Context(), actor, in)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toTaskJSON(task, time.Now()))
}

func (s *Server) getTask(c echo.Context, actor *models.User) error {
	task, err := s.tasks.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toTaskJSON(task, time.Now()))
}

func (s *Server) updateTask(c echo.Context, actor *models.User) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, badRequestBody())
	}

	in, err := toTaskInput(req)
	if err != nil {
		return s.writeError(c, err)
	}

	task, err := s.tasks.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toTaskJSON(task, time.Now()))
}

func (s *Server) deleteTask(c echo.Context, actor *models.User) error {
	if err := s.tasks.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
