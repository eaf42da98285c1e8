package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// idSliceConverter lets []string batch arguments through sqlmock; the real pgx
// driver binds them as a text array.
type idSliceConverter struct{}

func (idSliceConverter) ConvertValue(v any) (driver.Value, error) {
	if _, ok := v.([]string); ok {
		return v, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func TestAmenityPostgres_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAmenityPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	a := &model.Amenity{
		AmenityID:     "place-1",
		Name:          "City Vet",
		OpenNow:       true,
		OpeningHours:  []model.OpeningPeriod{},
		ContactNumber: "N/A",
		Website:       "N/A",
		Rating:        4.5,
		Photo:         "base64data",
		LocationID:    "loc-1",
		CachedAt:      now,
	}

	t.Run("with location", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO amenities").
			WithArgs("place-1", "City Vet", true, []byte(`[]`), "N/A", "N/A", 4.5, "base64data",
				sqlmock.AnyArg(), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Upsert(ctx, a))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without location yet", func(t *testing.T) {
		detached := *a
		detached.LocationID = ""

		mock.ExpectExec("INSERT INTO amenities").
			WithArgs("place-1", "City Vet", true, []byte(`[]`), "N/A", "N/A", 4.5, "base64data",
				sqlmock.AnyArg(), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Upsert(ctx, &detached))
	})
}

func TestAmenityPostgres_DeleteStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAmenityPostgres(db)
	ctx := context.Background()

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	mock.ExpectExec("DELETE FROM amenities WHERE cached_at <").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteStale(ctx, cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAmenityPostgres_FilterByIDs(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(idSliceConverter{}))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAmenityPostgres(db)
	ctx := context.Background()

	amenityRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"amenity_id", "name", "open_now", "opening_hours", "phone", "website",
			"rating", "photo", "location_id", "cached_at",
		})
	}

	t.Run("rating and open filters applied in the store", func(t *testing.T) {
		rows := amenityRows().AddRow(
			"place-1", "City Vet", true, []byte(`[{"open":{"day":1,"time":"0900"},"close":{"day":1,"time":"1800"}}]`),
			"N/A", "N/A", 4.5, "", nil, time.Now().UTC(),
		)

		mock.ExpectQuery(`SELECT (.+) FROM amenities WHERE amenity_id = ANY\(\$1\) AND rating >= \$2 AND open_now`).
			WithArgs(sqlmock.AnyArg(), 4.0).
			WillReturnRows(rows)

		minRating := 4.0
		got, err := repo.FilterByIDs(ctx, []string{"place-1", "place-2"}, &minRating, true)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "place-1", got[0].AmenityID)
		assert.Len(t, got[0].OpeningHours, 1)
		assert.Empty(t, got[0].LocationID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM amenities WHERE amenity_id = ANY\(\$1\)`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(amenityRows())

		got, err := repo.FilterByIDs(ctx, []string{"place-1"}, nil, false)

		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		_, err := repo.FilterByIDs(ctx, nil, nil, false)
		assert.Error(t, err)
	})

	t.Run("oversized batch rejected", func(t *testing.T) {
		ids := make([]string, repository.AmenityFilterBatchSize+1)
		for i := range ids {
			ids[i] = "p"
		}
		_, err := repo.FilterByIDs(ctx, ids, nil, false)
		assert.Error(t, err)
	})
}
