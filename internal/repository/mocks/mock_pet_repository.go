package mocks

import (
	"context"

	"petcareapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) Create(ctx context.Context, p *model.Pet) (*model.Pet, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockPetRepository) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockPetRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Pet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pet), args.Error(1)
}

func (m *MockPetRepository) Update(ctx context.Context, id string, upd model.PetUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockPetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
