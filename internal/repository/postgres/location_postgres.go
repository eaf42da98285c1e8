package postgres

import (
	"context"
	"database/sql"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// LocationPostgres is a PostgreSQL implementation of repository.LocationRepository.
// Coordinate dedup rides on the unique index over (latitude, longitude).
type LocationPostgres struct {
	db *sql.DB
}

// NewLocationPostgres creates a new LocationPostgres repository.
func NewLocationPostgres(db *sql.DB) *LocationPostgres {
	return &LocationPostgres{db: db}
}

var _ repository.LocationRepository = (*LocationPostgres)(nil)

// SaveOrUpdate upserts by exact coordinate match and returns the stored id.
// Callers pass coordinates only; on insert the id comes from the column
// default, on conflict the existing row's id is returned.
func (r *LocationPostgres) SaveOrUpdate(ctx context.Context, l *model.Location) (string, error) {
	const q = `
		INSERT INTO locations (latitude, longitude, address)
		VALUES ($1, $2, $3)
		ON CONFLICT (latitude, longitude) DO UPDATE SET address = EXCLUDED.address
		RETURNING id
	`
	var id string
	if err := r.db.QueryRowContext(ctx, q, l.Latitude, l.Longitude, l.Address).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// FindByID fetches a single location by id.
func (r *LocationPostgres) FindByID(ctx context.Context, id string) (*model.Location, error) {
	const q = `SELECT id, latitude, longitude, address FROM locations WHERE id = $1`
	var l model.Location
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&l.ID, &l.Latitude, &l.Longitude, &l.Address); err != nil {
		return nil, err
	}
	return &l, nil
}
