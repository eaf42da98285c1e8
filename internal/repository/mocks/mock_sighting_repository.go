package mocks

import (
	"context"

	"petcareapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSightingRepository struct {
	mock.Mock
}

func (m *MockSightingRepository) Create(ctx context.Context, s *model.Sighting) (*model.Sighting, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sighting), args.Error(1)
}

func (m *MockSightingRepository) FindByID(ctx context.Context, id string) (*model.Sighting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sighting), args.Error(1)
}

func (m *MockSightingRepository) List(ctx context.Context) ([]model.Sighting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Sighting), args.Error(1)
}
