package postgres

import (
	"context"
	"database/sql"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// PetPostgres is a PostgreSQL implementation of repository.PetRepository.
type PetPostgres struct {
	db *sql.DB
}

// NewPetPostgres creates a new PetPostgres repository.
func NewPetPostgres(db *sql.DB) *PetPostgres {
	return &PetPostgres{db: db}
}

var _ repository.PetRepository = (*PetPostgres)(nil)

const petColumns = `id, pet_name, sex, breed, weight, date_of_birth, medic_condition, markings, coat_color, owner_id, image_path`

// Create inserts a new pet row and returns the stored record.
func (r *PetPostgres) Create(ctx context.Context, p *model.Pet) (*model.Pet, error) {
	const q = `
		INSERT INTO pets (id, pet_name, sex, breed, weight, date_of_birth, medic_condition, markings, coat_color, owner_id, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + petColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.PetName,
		p.Sex,
		p.Breed,
		p.Weight,
		p.DateOfBirth,
		p.MedicCondition,
		p.Markings,
		p.CoatColor,
		p.OwnerID,
		p.ImagePath,
	)
	var out model.Pet
	if err := scanPet(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single pet by id.
func (r *PetPostgres) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	const q = `SELECT ` + petColumns + ` FROM pets WHERE id = $1`
	var p model.Pet
	if err := scanPet(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns all pets referencing the given owner.
func (r *PetPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Pet, error) {
	const q = `SELECT ` + petColumns + ` FROM pets WHERE owner_id = $1 ORDER BY pet_name, id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pets := make([]model.Pet, 0)
	for rows.Next() {
		var p model.Pet
		if err := scanPet(rows, &p); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pets, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (r *PetPostgres) Update(ctx context.Context, id string, upd model.PetUpdate) error {
	const q = `
		UPDATE pets SET
			pet_name        = COALESCE($2::text, pet_name),
			sex             = COALESCE($3::text, sex),
			breed           = COALESCE($4::text, breed),
			weight          = COALESCE($5::double precision, weight),
			date_of_birth   = COALESCE($6::timestamptz, date_of_birth),
			medic_condition = COALESCE($7::text, medic_condition),
			markings        = COALESCE($8::text, markings),
			coat_color      = COALESCE($9::text, coat_color),
			image_path      = COALESCE($10::text, image_path)
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id,
		upd.PetName,
		upd.Sex,
		upd.Breed,
		upd.Weight,
		upd.DateOfBirth,
		upd.MedicCondition,
		upd.Markings,
		upd.CoatColor,
		upd.ImagePath,
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

// Delete removes a pet by id. Deleting a missing row is not an error.
func (r *PetPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM pets WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func scanPet(row rowScanner, p *model.Pet) error {
	return row.Scan(
		&p.ID,
		&p.PetName,
		&p.Sex,
		&p.Breed,
		&p.Weight,
		&p.DateOfBirth,
		&p.MedicCondition,
		&p.Markings,
		&p.CoatColor,
		&p.OwnerID,
		&p.ImagePath,
	)
}
