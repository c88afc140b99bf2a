// Package users is the credential store: persistence for registered
// principals and their password hashes.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists users. GetUserByEmail returns common.ErrorNotFound
// when no user has that email; Create returns an error wrapping
// common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
