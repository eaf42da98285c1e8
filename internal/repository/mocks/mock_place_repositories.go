package mocks

import (
	"context"
	"time"

	"petcareapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) SaveOrUpdate(ctx context.Context, l *model.Location) (string, error) {
	args := m.Called(ctx, l)
	return args.String(0), args.Error(1)
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id string) (*model.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

type MockAmenityRepository struct {
	mock.Mock
}

func (m *MockAmenityRepository) Upsert(ctx context.Context, a *model.Amenity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAmenityRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAmenityRepository) FilterByIDs(ctx context.Context, ids []string, minRating *float64, openNow bool) ([]model.Amenity, error) {
	args := m.Called(ctx, ids, minRating, openNow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Amenity), args.Error(1)
}
