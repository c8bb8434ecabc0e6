package tasks

import (
	"context"

	"taskboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// ListByOwner returns the owner's tasks, optionally narrowed to one
	// category. An empty categoryID means no filter.
	ListByOwner(ctx context.Context, ownerID, categoryID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error

	// CountByUser reports per-user task totals for users owning at least
	// one task.
	CountByUser(ctx context.Context) ([]*models.UserTaskCount, error)
	// CategoryBreakdown groups one user's tasks by category.
	CategoryBreakdown(ctx context.Context, userID string) ([]*models.CategoryTaskCount, error)
}
