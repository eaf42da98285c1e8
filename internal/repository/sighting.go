package repository

import (
	"context"

	"petcareapi/internal/model"
)

// SightingRepository defines data access for sighting documents. Sightings
// are immutable once created, so there is no update or delete.
type SightingRepository interface {
	Create(ctx context.Context, s *model.Sighting) (*model.Sighting, error)
	FindByID(ctx context.Context, id string) (*model.Sighting, error)
	List(ctx context.Context) ([]model.Sighting, error)
}
