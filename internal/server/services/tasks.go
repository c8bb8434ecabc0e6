package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/common"
	"taskboard/internal/dbx"
	"taskboard/internal/server/authz"
	"taskboard/internal/server/models"
	"taskboard/internal/server/repositories/repomanager"
)

type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	CategoryID  string
}

func validateTaskInput(in TaskInput, requireDueDate bool) error {
	verr := common.NewValidationError()

	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "is required")
	} else if len(in.Title) > maxFieldLength {
		verr.Add("title", "must not be longer than 255 characters")
	}

	if requireDueDate && in.DueDate == nil {
		verr.Add("due_date", "is required")
	}

	if strings.TrimSpace(in.CategoryID) == "" {
		verr.Add("category_id", "is required")
	}

	return verr.ErrOrNil()
}

// List returns the actor's own tasks, optionally narrowed to one category.
// Tasks are never listed cross-user here; the admin aggregations below are
// the only cross-user view.
func (s *TaskService) List(ctx context.Context, actor *models.User, categoryID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	result, err := repo.ListByOwner(ctx, actor.ID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return result, nil
}

// Create stores a task owned by the actor. The referenced category must
// exist; the existence check and the insert run in one transaction so the
// reference cannot go stale in between.
func (s *TaskService) Create(ctx context.Context, actor *models.User, in TaskInput) (*models.Task, error) {
	if !authz.CanCreateTask(actor) {
		return nil, common.ErrForbidden
	}

	if err := validateTaskInput(in, true); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     in.DueDate,
		CategoryID:  in.CategoryID,
		OwnerID:     actor.ID,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkCategoryExists(ctx, tx, task.CategoryID); err != nil {
			return err
		}

		created, err := s.repomanager.Tasks(tx).Create(ctx, task)
		if err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}
		task = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, actor *models.User, id string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanViewTask(actor, task) {
		return nil, common.ErrForbidden
	}

	return task, nil
}

// Update replaces the task's mutable fields. The due date may be cleared by
// passing nil.
func (s *TaskService) Update(ctx context.Context, actor *models.User, id string, in TaskInput) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanUpdateTask(actor, task) {
		return nil, common.ErrForbidden
	}

	if err := validateTaskInput(in, false); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(in.Title)
	task.Description = in.Description
	task.DueDate = in.DueDate
	task.CategoryID = in.CategoryID

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkCategoryExists(ctx, tx, task.CategoryID); err != nil {
			return err
		}

		updated, err := s.repomanager.Tasks(tx).Update(ctx, task)
		if err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}
		task = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor *models.User, id string) error {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteTask(actor, task) {
		return common.ErrForbidden
	}

	return repo.Delete(ctx, task.ID)
}

// ListUsersWithTasks reports per-user task totals for the admin view. The
// transport layer guards the admin role before this is reached.
func (s *TaskService) ListUsersWithTasks(ctx context.Context) ([]*models.UserTaskCount, error) {
	repo := s.repomanager.Tasks(s.db)

	result, err := repo.CountByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("error aggregating tasks: %w", err)
	}
	return result, nil
}

// UserTaskBreakdown groups one user's tasks by category for the admin view.
func (s *TaskService) UserTaskBreakdown(ctx context.Context, userID string) (*models.UserTaskBreakdown, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repomanager.Tasks(s.db).CategoryBreakdown(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating tasks: %w", err)
	}

	return &models.UserTaskBreakdown{Email: user.Email, Categories: rows}, nil
}

func (s *TaskService) checkCategoryExists(ctx context.Context, tx dbx.DBTX, categoryID string) error {
	_, err := s.repomanager.Categories(tx).GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			verr := common.NewValidationError()
			verr.Add("category_id", "does not exist")
			return verr
		}
		return fmt.Errorf("error checking category: %w", err)
	}
	return nil
}
