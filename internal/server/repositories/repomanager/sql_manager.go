package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gastor/internal/dbx"
	"gastor/internal/server/migrations"
	"gastor/internal/server/repositories/categories"
	"gastor/internal/server/repositories/transactions"
	"gastor/internal/server/repositories/users"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager serves repositories over a single database/sql
// connection. The backend is picked from the DSN: postgres:// or
// postgresql:// selects pgx, anything else is treated as a SQLite path
// (":memory:" included).
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect string
}

// New opens the database for the given DSN and runs pending migrations.
func New(dsn string) (*SQLRepositoryManager, error) {
	driver, dialect := driverFor(dsn)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if driver == "sqlite" {
		// modernc's driver misbehaves with concurrent writers on one file;
		// a single connection also keeps :memory: databases alive.
		db.SetMaxOpenConns(1)
	}

	m := &SQLRepositoryManager{db: db, dialect: dialect}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func driverFor(dsn string) (driver, dialect string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", "postgres"
	}
	return "sqlite", "sqlite3"
}

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}

	dir := "postgres"
	if m.dialect == "sqlite3" {
		dir = "sqlite"
	}

	return goose.UpContext(ctx, m.db, dir)
}

func (m *SQLRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewSQLRepository(db)
}
