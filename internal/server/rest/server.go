// Package rest exposes the task service over HTTP/JSON. Handlers translate
// between wire DTOs and the service layer and map service errors onto status
// codes; all domain rules live below this package.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskboard/internal/logging"
	"taskboard/internal/server/models"
	"taskboard/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type CategoryService interface {
	List(ctx context.Context, actor *models.User) ([]*models.Category, error)
	Create(ctx context.Context, actor *models.User, in services.CategoryInput) (*models.Category, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.Category, error)
	Update(ctx context.Context, actor *models.User, id string, in services.CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

type TaskService interface {
	List(ctx context.Context, actor *models.User, categoryID string) ([]*models.Task, error)
	Create(ctx context.Context, actor *models.User, in services.TaskInput) (*models.Task, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.Task, error)
	Update(ctx context.Context, actor *models.User, id string, in services.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	ListUsersWithTasks(ctx context.Context) ([]*models.UserTaskCount, error)
	UserTaskBreakdown(ctx context.Context, userID string) (*models.UserTaskBreakdown, error)
}

type Server struct {
	address    string
	echo       *echo.Echo
	users      UserService
	categories CategoryService
	tasks      TaskService
	logger     logging.Logger
}

func NewServer(address string, us UserService, cs CategoryService, ts TaskService, l logging.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s := &Server{
		address:    address,
		echo:       e,
		users:      us,
		categories: cs,
		tasks:      ts,
		logger:     l.With("module", "rest_server"),
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/healthz", s.healthz)

	api := e.Group("/api")

	api.POST("/register", s.register)
	api.POST("/login", s.login)

	api.GET("/categories", s.withActor(s.listCategories))
	api.POST("/categories", s.withActor(s.createCategory))
	api.GET("/categories/:id", s.withActor(s.getCategory))
	api.PUT("/categories/:id", s.withActor(s.updateCategory))
	api.DELETE("/categories/:id", s.withActor(s.deleteCategory))

	api.GET("/tasks", s.withActor(s.listTasks))
	api.POST("/tasks", s.withActor(s.createTask))
	api.GET("/tasks/:id", s.withActor(s.getTask))
	api.PUT("/tasks/:id", s.withActor(s.updateTask))
	api.DELETE("/tasks/:id", s.withActor(s.deleteTask))

	api.GET("/admin/tasks", s.withActor(s.adminOnly(s.adminListUsers)))
	api.GET("/admin/tasks/:user", s.withActor(s.adminOnly(s.adminUserTasks)))
}

func (s *Server) healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
