package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/internal/common"
	"taskboard/internal/dbx"
	"taskboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {

	query :=
		`INSERT INTO categories (id, name, type, user_id, is_default)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		category.ID, category.Name, category.Type, nullString(category.OwnerID), category.IsDefault).
		Scan(&category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return category, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query :=
		`SELECT id, name, type, user_id, is_default, created_at, updated_at FROM categories
		 WHERE id = $1
		 `

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return category, nil
}

func (r *PostgresRepository) ListVisible(ctx context.Context, userID string) ([]*models.Category, error) {
	query :=
		`SELECT id, name, type, user_id, is_default, created_at, updated_at FROM categories
		 WHERE user_id = $1 OR is_default
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error reading category row: %w", err)
		}
		result = append(result, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading category rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	query :=
		`UPDATE categories SET name = $2, type = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, category.ID, category.Name, category.Type).
		Scan(&category.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return category, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM categories
		 WHERE id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanCategory(row scannable) (*models.Category, error) {
	category := &models.Category{}
	var ownerID sql.NullString

	err := row.Scan(&category.ID, &category.Name, &category.Type, &ownerID,
		&category.IsDefault, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}

	category.OwnerID = ownerID.String
	return category, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
