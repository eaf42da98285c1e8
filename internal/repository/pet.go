package repository

import (
	"context"

	"petcareapi/internal/model"
)

// PetRepository defines data access for pet profiles.
type PetRepository interface {
	Create(ctx context.Context, p *model.Pet) (*model.Pet, error)
	FindByID(ctx context.Context, id string) (*model.Pet, error)

	// ListByOwner returns all pets whose owner reference equals ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Pet, error)

	// Update applies a partial update; nil fields in upd are left unchanged.
	Update(ctx context.Context, id string, upd model.PetUpdate) error

	// Delete removes a pet by id. Deleting a missing row is not an error.
	Delete(ctx context.Context, id string) error
}
