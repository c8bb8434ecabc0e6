package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/common"
	"taskboard/internal/server/services"
)

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, badRequestBody())
	}

	user, token, err := s.users.Register(c.Request().Context(), services.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"user":  toUserJSON(user),
		"token": token,
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, badRequestBody())
	}

	token, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// badRequestBody reports an unparseable request body as a validation error
// so malformed JSON gets the same 422 shape as missing fields.
func badRequestBody() error {
	verr := common.NewValidationError()
	verr.Add("body", "is not valid JSON")
	return verr
}
