package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gastor/internal/common"
	"gastor/internal/dbx"
	"gastor/internal/server/models"
)

// SQLRepository implements category storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (owner_id, name, kind)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		category.OwnerID, category.Name, category.Kind).Scan(&category.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return category, nil
}

func (r *SQLRepository) List(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Category, error) {
	query := `
		SELECT id, owner_id, name, kind FROM categories
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []*models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Kind); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id, ownerID int64) (*models.Category, error) {
	query := `
		SELECT id, owner_id, name, kind FROM categories
		WHERE id = $1 AND owner_id = $2
	`
	category := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&category.ID, &category.OwnerID, &category.Name, &category.Kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return category, nil
}

func (r *SQLRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories SET name = $1, kind = $2
		WHERE id = $3 AND owner_id = $4
	`
	res, err := r.db.ExecContext(ctx, query,
		category.Name, category.Kind, category.ID, category.OwnerID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return requireOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM categories WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return requireOneRow(res)
}

// requireOneRow translates zero affected rows into common.ErrorNotFound,
// covering both missing and foreign-owned rows with the same signal.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
