package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// MissingPostgres is a PostgreSQL implementation of
// repository.MissingReportRepository. The append-only sighting id list is a
// JSONB array; "at most one active report per pet" is enforced by a partial
// unique index plus a conditional insert, so the old read-then-write race
// cannot produce duplicates.
type MissingPostgres struct {
	db *sql.DB
}

// NewMissingPostgres creates a new MissingPostgres repository.
func NewMissingPostgres(db *sql.DB) *MissingPostgres {
	return &MissingPostgres{db: db}
}

var _ repository.MissingReportRepository = (*MissingPostgres)(nil)

const missingColumns = `id, pet_id, owner_id, active, last_seen_at, last_seen_description, last_seen_image_path, last_seen_lat, last_seen_lng, published_at, sighting_ids`

// CreateActive inserts a new Active report unless the pet already has one.
// The guard and the insert are a single statement.
func (r *MissingPostgres) CreateActive(ctx context.Context, m *model.MissingReport) (*model.MissingReport, error) {
	const q = `
		INSERT INTO missing_reports (id, pet_id, owner_id, active, last_seen_at, last_seen_description, last_seen_image_path, last_seen_lat, last_seen_lng, published_at, sighting_ids)
		SELECT $1, $2, $3, TRUE, $4, $5, $6, $7, $8, $9, '[]'::jsonb
		WHERE NOT EXISTS (
			SELECT 1 FROM missing_reports WHERE pet_id = $2 AND active
		)
		RETURNING ` + missingColumns
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.PetID,
		m.OwnerID,
		m.LastSeenAt,
		m.LastSeenDescription,
		m.LastSeenImagePath,
		m.LastSeenLocation.Latitude,
		m.LastSeenLocation.Longitude,
		m.PublishedAt,
	)
	var out model.MissingReport
	if err := scanMissing(row, &out); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return nil, repository.ErrDuplicateActiveReport
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single report by id.
func (r *MissingPostgres) FindByID(ctx context.Context, id string) (*model.MissingReport, error) {
	const q = `SELECT ` + missingColumns + ` FROM missing_reports WHERE id = $1`
	var m model.MissingReport
	if err := scanMissing(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all reports, active and found alike.
func (r *MissingPostgres) List(ctx context.Context) ([]model.MissingReport, error) {
	const q = `SELECT ` + missingColumns + ` FROM missing_reports ORDER BY published_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]model.MissingReport, 0)
	for rows.Next() {
		var m model.MissingReport
		if err := scanMissing(rows, &m); err != nil {
			return nil, err
		}
		reports = append(reports, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

// MarkFound flips active to false. Repeating the call leaves the row as-is.
func (r *MissingPostgres) MarkFound(ctx context.Context, id string) error {
	const q = `UPDATE missing_reports SET active = FALSE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AppendSighting appends sightingID to the report's list in one atomic update;
// concurrent appends both land because the concatenation happens in the store.
func (r *MissingPostgres) AppendSighting(ctx context.Context, id, sightingID string) error {
	const q = `UPDATE missing_reports SET sighting_ids = sighting_ids || to_jsonb($2::text) WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, sightingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanMissing(row rowScanner, m *model.MissingReport) error {
	var sightings []byte
	if err := row.Scan(
		&m.ID,
		&m.PetID,
		&m.OwnerID,
		&m.Active,
		&m.LastSeenAt,
		&m.LastSeenDescription,
		&m.LastSeenImagePath,
		&m.LastSeenLocation.Latitude,
		&m.LastSeenLocation.Longitude,
		&m.PublishedAt,
		&sightings,
	); err != nil {
		return err
	}
	m.SightingIDs = make([]string, 0)
	if len(sightings) > 0 {
		if err := json.Unmarshal(sightings, &m.SightingIDs); err != nil {
			return fmt.Errorf("unmarshal sighting ids: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is the partial unique index on
// (pet_id) WHERE active firing under concurrent creation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
