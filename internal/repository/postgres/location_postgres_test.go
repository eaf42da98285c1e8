package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"petcareapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestLocationPostgres_SaveOrUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewLocationPostgres(db)
	ctx := context.Background()

	t.Run("new coordinates insert with a generated id", func(t *testing.T) {
		// The cache writer never sets an id; the insert must not send one
		// and the column default fills it.
		mock.ExpectQuery(`INSERT INTO locations \(latitude, longitude, address\)`).
			WithArgs(1.35, 103.81, "12 Clementi Rd").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("loc-uuid-1"))

		id, err := repo.SaveOrUpdate(ctx, &model.Location{
			Latitude:  1.35,
			Longitude: 103.81,
			Address:   "12 Clementi Rd",
		})

		assert.NoError(t, err)
		assert.Equal(t, "loc-uuid-1", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("known coordinates return the existing id", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO locations \(latitude, longitude, address\)`).
			WithArgs(1.35, 103.81, "12 Clementi Road").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("loc-uuid-1"))

		id, err := repo.SaveOrUpdate(ctx, &model.Location{
			Latitude:  1.35,
			Longitude: 103.81,
			Address:   "12 Clementi Road",
		})

		assert.NoError(t, err)
		assert.Equal(t, "loc-uuid-1", id)
	})

	t.Run("query failure", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO locations \(latitude, longitude, address\)`).
			WillReturnError(errors.New("db error"))

		id, err := repo.SaveOrUpdate(ctx, &model.Location{Latitude: 1, Longitude: 2})

		assert.Error(t, err)
		assert.Empty(t, id)
	})
}

func TestLocationPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewLocationPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "latitude", "longitude", "address"}).
			AddRow("loc-uuid-1", 1.35, 103.81, "12 Clementi Rd")

		mock.ExpectQuery("SELECT (.+) FROM locations WHERE id =").
			WithArgs("loc-uuid-1").
			WillReturnRows(rows)

		l, err := repo.FindByID(ctx, "loc-uuid-1")

		assert.NoError(t, err)
		assert.Equal(t, 1.35, l.Latitude)
		assert.Equal(t, "12 Clementi Rd", l.Address)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM locations WHERE id =").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		l, err := repo.FindByID(ctx, "ghost")

		assert.Nil(t, l)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}
