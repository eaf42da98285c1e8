package repository

import (
	"context"

	"petcareapi/internal/model"
)

// UserRepository defines data access for user profile documents.
type UserRepository interface {
	// Create inserts a new profile. The ID must be the identity provider uid.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by id, or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Update applies a partial update; nil fields in upd are left unchanged.
	Update(ctx context.Context, id string, upd model.UserUpdate) error
}
