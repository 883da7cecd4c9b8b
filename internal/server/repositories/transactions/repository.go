// Package transactions persists transaction rows and answers the aggregate
// queries behind the dashboard. All reads and writes are scoped by owner id.
package transactions

import (
	"context"
	"time"

	"gastor/internal/server/models"
)

type Repository interface {
	// Create inserts the transaction and fills in the generated ID.
	Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error)

	// List returns the owner's transactions ordered by timestamp descending.
	// The ordering is part of the contract.
	List(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Transaction, error)

	// Get returns the transaction only when it belongs to ownerID, otherwise
	// common.ErrorNotFound.
	Get(ctx context.Context, id, ownerID int64) (*models.Transaction, error)

	// Update replaces the mutable fields when the row belongs to ownerID,
	// otherwise common.ErrorNotFound.
	Update(ctx context.Context, tr *models.Transaction) error

	// Delete removes the row when it belongs to ownerID, otherwise
	// common.ErrorNotFound.
	Delete(ctx context.Context, id, ownerID int64) error

	// CountByCategory reports how many transactions reference the category,
	// regardless of owner. Used for the delete-blocking in-use rule.
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)

	// SumByKind totals the owner's amounts of one kind within [from, to).
	SumByKind(ctx context.Context, ownerID int64, kind models.Kind, from, to time.Time) (float64, error)

	// ExpenseTotalsByCategory groups the owner's expenses within [from, to)
	// by category name, ordered by name.
	ExpenseTotalsByCategory(ctx context.Context, ownerID int64, from, to time.Time) ([]models.CategoryTotal, error)
}
