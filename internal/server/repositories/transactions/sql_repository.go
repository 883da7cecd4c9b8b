package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gastor/internal/common"
	"gastor/internal/dbx"
	"gastor/internal/server/models"
)

// SQLRepository implements transaction storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). The SQL is portable between PostgreSQL and SQLite;
// month windows arrive as half-open [from, to) ranges computed by the caller
// so no dialect-specific date functions are needed.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (owner_id, category_id, amount, kind, description, ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		tr.OwnerID, tr.CategoryID, tr.Amount, tr.Kind, tr.Description, tr.Timestamp).Scan(&tr.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return tr, nil
}

func (r *SQLRepository) List(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, owner_id, category_id, amount, kind, description, ts
		FROM transactions
		WHERE owner_id = $1
		ORDER BY ts DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.CategoryID,
			&item.Amount, &item.Kind, &item.Description, &item.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id, ownerID int64) (*models.Transaction, error) {
	query := `
		SELECT id, owner_id, category_id, amount, kind, description, ts
		FROM transactions
		WHERE id = $1 AND owner_id = $2
	`
	tr := &models.Transaction{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&tr.ID, &tr.OwnerID, &tr.CategoryID, &tr.Amount, &tr.Kind, &tr.Description, &tr.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return tr, nil
}

func (r *SQLRepository) Update(ctx context.Context, tr *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, kind = $3, description = $4, ts = $5
		WHERE id = $6 AND owner_id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		tr.CategoryID, tr.Amount, tr.Kind, tr.Description, tr.Timestamp, tr.ID, tr.OwnerID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return requireOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return requireOneRow(res)
}

func (r *SQLRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) SumByKind(ctx context.Context, ownerID int64, kind models.Kind, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE owner_id = $1 AND kind = $2 AND ts >= $3 AND ts < $4
	`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, ownerID, kind, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return total, nil
}

func (r *SQLRepository) ExpenseTotalsByCategory(ctx context.Context, ownerID int64, from, to time.Time) ([]models.CategoryTotal, error) {
	query := `
		SELECT c.name, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.owner_id = $1 AND t.kind = $2 AND t.ts >= $3 AND t.ts < $4
		GROUP BY c.name
		ORDER BY c.name
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, models.KindExpense, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select expense totals: %w", err)
	}
	defer rows.Close()

	var result []models.CategoryTotal
	for rows.Next() {
		var item models.CategoryTotal
		if err := rows.Scan(&item.Name, &item.Value); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

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
