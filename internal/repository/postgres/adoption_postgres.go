package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// AdoptionPostgres is a PostgreSQL implementation of repository.AdoptionRepository.
// The ordered image list is stored as a JSONB array.
type AdoptionPostgres struct {
	db *sql.DB
}

// NewAdoptionPostgres creates a new AdoptionPostgres repository.
func NewAdoptionPostgres(db *sql.DB) *AdoptionPostgres {
	return &AdoptionPostgres{db: db}
}

var _ repository.AdoptionRepository = (*AdoptionPostgres)(nil)

const adoptionColumns = `id, pet_name, sex, breed, age, species, description, coat_color, image_paths, owner_id, contact_name, contact_phone, contact_email`

// Create inserts a new adoption listing and returns the stored record.
func (r *AdoptionPostgres) Create(ctx context.Context, a *model.Adoption) (*model.Adoption, error) {
	images, err := json.Marshal(a.ImagePaths)
	if err != nil {
		return nil, fmt.Errorf("marshal image paths: %w", err)
	}
	const q = `
		INSERT INTO adoptions (id, pet_name, sex, breed, age, species, description, coat_color, image_paths, owner_id, contact_name, contact_phone, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + adoptionColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.PetName,
		a.Sex,
		a.Breed,
		a.Age,
		a.Species,
		a.Description,
		a.CoatColor,
		images,
		a.OwnerID,
		a.ContactName,
		a.ContactPhone,
		a.ContactEmail,
	)
	var out model.Adoption
	if err := scanAdoption(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single listing by id.
func (r *AdoptionPostgres) FindByID(ctx context.Context, id string) (*model.Adoption, error) {
	const q = `SELECT ` + adoptionColumns + ` FROM adoptions WHERE id = $1`
	var a model.Adoption
	if err := scanAdoption(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all adoption listings.
func (r *AdoptionPostgres) List(ctx context.Context) ([]model.Adoption, error) {
	const q = `SELECT ` + adoptionColumns + ` FROM adoptions ORDER BY pet_name, id`
	return r.queryMany(ctx, q)
}

// ListByOwner returns all listings referencing the given lister.
func (r *AdoptionPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Adoption, error) {
	const q = `SELECT ` + adoptionColumns + ` FROM adoptions WHERE owner_id = $1 ORDER BY pet_name, id`
	return r.queryMany(ctx, q, ownerID)
}

// Update rewrites the named listing fields, leaving the id untouched.
func (r *AdoptionPostgres) Update(ctx context.Context, id string, a *model.Adoption) error {
	images, err := json.Marshal(a.ImagePaths)
	if err != nil {
		return fmt.Errorf("marshal image paths: %w", err)
	}
	const q = `
		UPDATE adoptions SET
			pet_name      = $2,
			sex           = $3,
			breed         = $4,
			age           = $5,
			species       = $6,
			description   = $7,
			coat_color    = $8,
			image_paths   = $9,
			owner_id      = $10,
			contact_name  = $11,
			contact_phone = $12,
			contact_email = $13
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id,
		a.PetName,
		a.Sex,
		a.Breed,
		a.Age,
		a.Species,
		a.Description,
		a.CoatColor,
		images,
		a.OwnerID,
		a.ContactName,
		a.ContactPhone,
		a.ContactEmail,
	)
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

// Delete removes a listing by id. Deleting a missing row is not an error.
func (r *AdoptionPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM adoptions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *AdoptionPostgres) queryMany(ctx context.Context, q string, args ...any) ([]model.Adoption, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]model.Adoption, 0)
	for rows.Next() {
		var a model.Adoption
		if err := scanAdoption(rows, &a); err != nil {
			return nil, err
		}
		listings = append(listings, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func scanAdoption(row rowScanner, a *model.Adoption) error {
	var images []byte
	if err := row.Scan(
		&a.ID,
		&a.PetName,
		&a.Sex,
		&a.Breed,
		&a.Age,
		&a.Species,
		&a.Description,
		&a.CoatColor,
		&images,
		&a.OwnerID,
		&a.ContactName,
		&a.ContactPhone,
		&a.ContactEmail,
	); err != nil {
		return err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &a.ImagePaths); err != nil {
			return fmt.Errorf("unmarshal image paths: %w", err)
		}
	}
	return nil
}
