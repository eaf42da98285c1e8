package postgres

import (
	"context"
	"database/sql"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// SightingPostgres is a PostgreSQL implementation of repository.SightingRepository.
type SightingPostgres struct {
	db *sql.DB
}

// NewSightingPostgres creates a new SightingPostgres repository.
func NewSightingPostgres(db *sql.DB) *SightingPostgres {
	return &SightingPostgres{db: db}
}

var _ repository.SightingRepository = (*SightingPostgres)(nil)

const sightingColumns = `id, missing_id, reporter_id, occurred_at, description, image_path, lat, lng`

// Create inserts a new sighting and returns the stored record.
func (r *SightingPostgres) Create(ctx context.Context, s *model.Sighting) (*model.Sighting, error) {
	const q = `
		INSERT INTO sightings (id, missing_id, reporter_id, occurred_at, description, image_path, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + sightingColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.MissingID,
		s.ReporterID,
		s.OccurredAt,
		s.Description,
		s.ImagePath,
		s.Location.Latitude,
		s.Location.Longitude,
	)
	var out model.Sighting
	if err := scanSighting(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single sighting by id.
func (r *SightingPostgres) FindByID(ctx context.Context, id string) (*model.Sighting, error) {
	const q = `SELECT ` + sightingColumns + ` FROM sightings WHERE id = $1`
	var s model.Sighting
	if err := scanSighting(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all sightings.
func (r *SightingPostgres) List(ctx context.Context) ([]model.Sighting, error) {
	const q = `SELECT ` + sightingColumns + ` FROM sightings ORDER BY occurred_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sightings := make([]model.Sighting, 0)
	for rows.Next() {
		var s model.Sighting
		if err := scanSighting(rows, &s); err != nil {
			return nil, err
		}
		sightings = append(sightings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sightings, nil
}

func scanSighting(row rowScanner, s *model.Sighting) error {
	return row.Scan(
		&s.ID,
		&s.MissingID,
		&s.ReporterID,
		&s.OccurredAt,
		&s.Description,
		&s.ImagePath,
		&s.Location.Latitude,
		&s.Location.Longitude,
	)
}
