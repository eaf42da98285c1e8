package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// AmenityPostgres is a PostgreSQL implementation of repository.AmenityRepository.
// Rows are keyed by the external place id; the weekly schedule is a JSONB array.
type AmenityPostgres struct {
	db *sql.DB
}

// NewAmenityPostgres creates a new AmenityPostgres repository.
func NewAmenityPostgres(db *sql.DB) *AmenityPostgres {
	return &AmenityPostgres{db: db}
}

var _ repository.AmenityRepository = (*AmenityPostgres)(nil)

const amenityColumns = `amenity_id, name, open_now, opening_hours, phone, website, rating, photo, location_id, cached_at`

// Upsert inserts the full record, or on an existing place id refreshes only
// open_now and cached_at, leaving the rest of the cached entry alone.
func (r *AmenityPostgres) Upsert(ctx context.Context, a *model.Amenity) error {
	hours, err := json.Marshal(a.OpeningHours)
	if err != nil {
		return fmt.Errorf("marshal opening hours: %w", err)
	}
	const q = `
		INSERT INTO amenities (amenity_id, name, open_now, opening_hours, phone, website, rating, photo, location_id, cached_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (amenity_id) DO UPDATE SET
			open_now  = EXCLUDED.open_now,
			cached_at = EXCLUDED.cached_at
	`
	// An amenity cached before its location write lands has no location yet.
	locationID := sql.NullString{String: a.LocationID, Valid: a.LocationID != ""}
	_, err = r.db.ExecContext(ctx, q,
		a.AmenityID,
		a.Name,
		a.OpenNow,
		hours,
		a.ContactNumber,
		a.Website,
		a.Rating,
		a.Photo,
		locationID,
		a.CachedAt,
	)
	return err
}

// DeleteStale purges entries cached before the cutoff.
func (r *AmenityPostgres) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM amenities WHERE cached_at < $1`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FilterByIDs queries one batch of at most AmenityFilterBatchSize place ids,
// applying the rating and open-now predicates in the store.
func (r *AmenityPostgres) FilterByIDs(ctx context.Context, ids []string, minRating *float64, openNow bool) ([]model.Amenity, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("place ids list cannot be empty")
	}
	if len(ids) > repository.AmenityFilterBatchSize {
		return nil, fmt.Errorf("at most %d place ids per query, got %d", repository.AmenityFilterBatchSize, len(ids))
	}

	q := `SELECT ` + amenityColumns + ` FROM amenities WHERE amenity_id = ANY($1)`
	args := []any{ids}
	if minRating != nil {
		args = append(args, *minRating)
		q += fmt.Sprintf(` AND rating >= $%d`, len(args))
	}
	if openNow {
		q += ` AND open_now`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	amenities := make([]model.Amenity, 0)
	for rows.Next() {
		var a model.Amenity
		if err := scanAmenity(rows, &a); err != nil {
			return nil, err
		}
		amenities = append(amenities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return amenities, nil
}

func scanAmenity(row rowScanner, a *model.Amenity) error {
	var hours []byte
	var locationID sql.NullString
	if err := row.Scan(
		&a.AmenityID,
		&a.Name,
		&a.OpenNow,
		&hours,
		&a.ContactNumber,
		&a.Website,
		&a.Rating,
		&a.Photo,
		&locationID,
		&a.CachedAt,
	); err != nil {
		return err
	}
	a.LocationID = locationID.String
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &a.OpeningHours); err != nil {
			return fmt.Errorf("unmarshal opening hours: %w", err)
		}
	}
	return nil
}
