package repository

import (
	"context"

	"petcareapi/internal/model"
)

// AdoptionRepository defines data access for adoption listings.
type AdoptionRepository interface {
	Create(ctx context.Context, a *model.Adoption) (*model.Adoption, error)
	FindByID(ctx context.Context, id string) (*model.Adoption, error)
	List(ctx context.Context) ([]model.Adoption, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Adoption, error)

	// Update rewrites the named listing fields for id; the id itself and any
	// column not carried by a is untouched. Returns sql.ErrNoRows if absent.
	Update(ctx context.Context, id string, a *model.Adoption) error

	Delete(ctx context.Context, id string) error
}
