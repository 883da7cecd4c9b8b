package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gastor/internal/common"
	"gastor/internal/dbx"
	"gastor/internal/server/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
// The SQL is kept portable between PostgreSQL and SQLite.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, display_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.DisplayName, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, password_hash FROM users
		WHERE LOWER(email) = LOWER($1)
		ORDER BY id
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLRepository) FindByEmailOrName(ctx context.Context, term string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, password_hash FROM users
		WHERE LOWER(email) = LOWER($1) OR LOWER(display_name) = LOWER($1)
		ORDER BY id
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, term))
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return user, nil
}

// isUniqueViolation recognizes a duplicate-key error from either backend:
// SQLSTATE 23505 on PostgreSQL, "UNIQUE constraint failed" on SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
