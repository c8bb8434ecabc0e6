package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/common"
	"taskboard/internal/server/authz"
	"taskboard/internal/server/models"
	"taskboard/internal/server/repositories/repomanager"
)

type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

type CategoryInput struct {
	Name string
	Type string
}

// CategoryUpdate carries partial category changes; nil fields keep the
// current value.
type CategoryUpdate struct {
	Name *string
	Type *string
}

func validateCategoryInput(in CategoryInput) error {
	verr := common.NewValidationError()

	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "is required")
	} else if len(in.Name) > maxFieldLength {
		verr.Add("name", "must not be longer than 255 characters")
	}

	if strings.TrimSpace(in.Type) == "" {
		verr.Add("type", "is required")
	} else if len(in.Type) > maxFieldLength {
		verr.Add("type", "must not be longer than 255 characters")
	}

	return verr.ErrOrNil()
}

// List returns the categories visible to the actor: owned ones plus shared
// defaults.
func (s *CategoryService) List(ctx context.Context, actor *models.User) ([]*models.Category, error) {
	repo := s.repomanager.Categories(s.db)

	result, err := repo.ListVisible(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return result, nil
}

// Create stores a category owned by the actor. Ownership always comes from
// the actor, never from client input.
func (s *CategoryService) Create(ctx context.Context, actor *models.User, in CategoryInput) (*models.Category, error) {
	if !authz.CanCreateCategory(actor) {
		return nil, common.ErrForbidden
	}

	if err := validateCategoryInput(in); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(in.Name),
		Type:    strings.TrimSpace(in.Type),
		OwnerID: actor.ID,
	}

	repo := s.repomanager.Categories(s.db)

	category, err := repo.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, actor *models.User, id string) (*models.Category, error) {
	repo := s.repomanager.Categories(s.db)

	category, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanViewCategory(actor, category) {
		return nil, common.ErrForbidden
	}

	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, actor *models.User, id string, in CategoryUpdate) (*models.Category, error) {
	repo := s.repomanager.Categories(s.db)

	category, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanUpdateCategory(actor, category) {
		return nil, common.ErrForbidden
	}

	verr := common.NewValidationError()
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			verr.Add("name", "is required")
		} else if len(*in.Name) > maxFieldLength {
			verr.Add("name", "must not be longer than 255 characters")
		} else {
			category.Name = strings.TrimSpace(*in.Name)
		}
	}
	if in.Type != nil {
		if strings.TrimSpace(*in.Type) == "" {
			verr.Add("type", "is required")
		} else if len(*in.Type) > maxFieldLength {
			verr.Add("type", "must not be longer than 255 characters")
		} else {
			category.Type = strings.TrimSpace(*in.Type)
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	category, err = repo.Update(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("error updating category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor *models.User, id string) error {
	repo := s.repomanager.Categories(s.db)

	category, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteCategory(actor, category) {
		return common.ErrForbidden
	}

	return repo.Delete(ctx, category.ID)
}
