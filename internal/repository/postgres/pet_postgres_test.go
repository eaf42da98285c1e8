package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"petcareapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func petRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "pet_name", "sex", "breed", "weight", "date_of_birth",
		"medic_condition", "markings", "coat_color", "owner_id", "image_path",
	})
}

func TestPetPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPetPostgres(db)
	ctx := context.Background()

	dob := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	pet := &model.Pet{
		ID:          "pet-1",
		PetName:     "Rex",
		Sex:         "male",
		Breed:       "corgi",
		Weight:      12.5,
		DateOfBirth: dob,
		OwnerID:     "uid-1",
		ImagePath:   "pets/rex.png",
	}

	rows := petRows().AddRow(
		pet.ID, pet.PetName, pet.Sex, pet.Breed, pet.Weight, dob,
		"", "", "", pet.OwnerID, pet.ImagePath,
	)

	mock.ExpectQuery("INSERT INTO pets").
		WithArgs(pet.ID, pet.PetName, pet.Sex, pet.Breed, pet.Weight, dob,
			"", "", "", pet.OwnerID, pet.ImagePath).
		WillReturnRows(rows)

	got, err := repo.Create(ctx, pet)

	assert.NoError(t, err)
	assert.Equal(t, "pet-1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPetPostgres(db)
	ctx := context.Background()

	rows := petRows().
		AddRow("pet-1", "Mochi", "female", "shiba", 8.0, time.Now(), "", "", "", "uid-1", "").
		AddRow("pet-2", "Rex", "male", "corgi", 12.5, time.Now(), "", "", "", "uid-1", "pets/rex.png")

	mock.ExpectQuery("SELECT (.+) FROM pets WHERE owner_id =").
		WithArgs("uid-1").
		WillReturnRows(rows)

	pets, err := repo.ListByOwner(ctx, "uid-1")

	assert.NoError(t, err)
	assert.Len(t, pets, 2)
	assert.Equal(t, "Mochi", pets[0].PetName)
}

func TestPetPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPetPostgres(db)
	ctx := context.Background()

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		name := "Rexy"
		weight := 13.0

		// Only the two set pointers carry values; the rest COALESCE to the
		// stored column.
		mock.ExpectExec("UPDATE pets SET").
			WithArgs("pet-1", &name, (*string)(nil), (*string)(nil), &weight,
				(*time.Time)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, "pet-1", model.PetUpdate{PetName: &name, Weight: &weight})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown pet", func(t *testing.T) {
		mock.ExpectExec("UPDATE pets SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, "ghost", model.PetUpdate{})
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestPetPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPetPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM pets WHERE id =").
		WithArgs("pet-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, "pet-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
