package categories

import (
	"context"

	"taskboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// ListVisible returns categories owned by the user plus shared defaults.
	ListVisible(ctx context.Context, userID string) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}
