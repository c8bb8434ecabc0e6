// Package repomanager hands out per-entity repositories bound to a database
// handle (connection or transaction) and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"taskboard/internal/dbx"
	"taskboard/internal/server/repositories/categories"
	"taskboard/internal/server/repositories/tasks"
	"taskboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Categories(db dbx.DBTX) categories.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
