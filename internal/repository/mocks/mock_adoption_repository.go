package mocks

import (
	"context"

	"petcareapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAdoptionRepository struct {
	mock.Mock
}

func (m *MockAdoptionRepository) Create(ctx context.Context, a *model.Adoption) (*model.Adoption, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Adoption), args.Error(1)
}

func (m *MockAdoptionRepository) FindByID(ctx context.Context, id string) (*model.Adoption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Adoption), args.Error(1)
}

func (m *MockAdoptionRepository) List(ctx context.Context) ([]model.Adoption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Adoption), args.Error(1)
}

func (m *MockAdoptionRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Adoption, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Adoption), args.Error(1)
}

func (m *MockAdoptionRepository) Update(ctx context.Context, id string, a *model.Adoption) error {
	args := m.Called(ctx, id, a)
	return args.Error(0)
}

func (m *MockAdoptionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
