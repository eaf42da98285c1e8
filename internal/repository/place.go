package repository

import (
	"context"
	"time"

	"petcareapi/internal/model"
)

// AmenityFilterBatchSize is the store's fan-in limit for id-set queries;
// FilterByIDs callers must batch id lists into groups of at most this size.
const AmenityFilterBatchSize = 10

// LocationRepository defines data access for cached locations.
// Locations are deduplicated by exact latitude/longitude equality.
type LocationRepository interface {
	// SaveOrUpdate updates the location matching l's coordinates, or inserts
	// a new one. Returns the id of the stored row either way.
	SaveOrUpdate(ctx context.Context, l *model.Location) (string, error)

	FindByID(ctx context.Context, id string) (*model.Location, error)
}

// AmenityRepository defines data access for the place-search cache.
type AmenityRepository interface {
	// Upsert refreshes open_now and cached_at when the place id is already
	// cached, and inserts the full record otherwise.
	Upsert(ctx context.Context, a *model.Amenity) error

	// DeleteStale removes entries cached before the cutoff and reports how
	// many were purged.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)

	// FilterByIDs returns cached amenities whose place id is in ids,
	// optionally restricted server-side to rating >= minRating and to
	// currently-open places. len(ids) must not exceed AmenityFilterBatchSize.
	FilterByIDs(ctx context.Context, ids []string, minRating *float64, openNow bool) ([]model.Amenity, error)
}
