// Package repomanager wires the SQL repositories to a concrete database.
// It owns driver selection, the connection, and migrations.
package repomanager

import (
	"context"
	"database/sql"

	"gastor/internal/dbx"
	"gastor/internal/server/repositories/categories"
	"gastor/internal/server/repositories/transactions"
	"gastor/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to an arbitrary DBTX, so
// services can run several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Close() error
	Users(db dbx.DBTX) users.Repository
	Categories(db dbx.DBTX) categories.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
