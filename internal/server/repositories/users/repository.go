// Package users persists account rows and implements the case-insensitive
// directory lookups the login flow relies on.
package users

import (
	"context"

	"gastor/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in the generated ID. A duplicate
	// (case-insensitive) email yields common.ErrorEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByEmail matches the email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByEmailOrName matches either the email or the display name,
	// case-insensitively. When the term matches different users on the two
	// fields, the row with the lowest ID wins; display names are not unique.
	FindByEmailOrName(ctx context.Context, term string) (*models.User, error)
}
