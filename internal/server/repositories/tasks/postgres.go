package tasks

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

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, title, description, due_date, category_id, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, nullString(task.Description), task.DueDate, task.CategoryID, task.OwnerID).
		Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query :=
		`SELECT id, title, description, due_date, category_id, user_id, created_at, updated_at FROM tasks
		 WHERE id = $1
		 `

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID, categoryID string) ([]*models.Task, error) {
	query :=
		`SELECT id, title, description, due_date, category_id, user_id, created_at, updated_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at
		 `
	args := []any{ownerID}

	if categoryID != "" {
		query =
			`SELECT id, title, description, due_date, category_id, user_id, created_at, updated_at FROM tasks
			 WHERE user_id = $1 AND category_id = $2
			 ORDER BY created_at
			 `
		args = append(args, categoryID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("error reading task row: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading task rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks SET title = $2, description = $3, due_date = $4, category_id = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, nullString(task.Description), task.DueDate, task.CategoryID).
		Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM tasks
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

func (r *PostgresRepository) CountByUser(ctx context.Context) ([]*models.UserTaskCount, error) {
	query :=
		`SELECT u.email, COUNT(t.id) AS tasks_count
		 FROM users u
		 JOIN tasks t ON t.user_id = u.id
		 GROUP BY u.id, u.email
		 ORDER BY u.email
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]*models.UserTaskCount, 0)
	for rows.Next() {
		row := &models.UserTaskCount{}
		if err := rows.Scan(&row.Email, &row.TaskCount); err != nil {
			return nil, fmt.Errorf("error reading aggregation row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading aggregation rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CategoryBreakdown(ctx context.Context, userID string) ([]*models.CategoryTaskCount, error) {
	query :=
		`SELECT c.name, COUNT(t.id) AS task_count
		 FROM tasks t
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.user_id = $1
		 GROUP BY c.id, c.name
		 ORDER BY c.name
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CategoryTaskCount, 0)
	for rows.Next() {
		row := &models.CategoryTaskCount{}
		if err := rows.Scan(&row.CategoryName, &row.TaskCount); err != nil {
			return nil, fmt.Errorf("error reading aggregation row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading aggregation rows: %w", err)
	}

	return result, nil
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (*models.Task, error) {
	task := &models.Task{}
	var description sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(&task.ID, &task.Title, &description, &dueDate,
		&task.CategoryID, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}

	return task, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
