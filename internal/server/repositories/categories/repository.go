// Package categories persists category rows. Every query is scoped by owner
// id; a row belonging to another owner is indistinguishable from a missing
// one.
package categories

import (
	"context"

	"gastor/internal/server/models"
)

type Repository interface {
	// Create inserts the category and fills in the generated ID.
	Create(ctx context.Context, category *models.Category) (*models.Category, error)

	// List returns the owner's categories ordered by ID.
	List(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Category, error)

	// Get returns the category only when it belongs to ownerID, otherwise
	// common.ErrorNotFound.
	Get(ctx context.Context, id, ownerID int64) (*models.Category, error)

	// Update replaces name and kind when the row belongs to ownerID,
	// otherwise common.ErrorNotFound.
	Update(ctx context.Context, category *models.Category) error

	// Delete removes the row when it belongs to ownerID, otherwise
	// common.ErrorNotFound. Callers are responsible for the in-use check.
	Delete(ctx context.Context, id, ownerID int64) error
}
