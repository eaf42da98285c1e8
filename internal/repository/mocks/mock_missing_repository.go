package mocks

import (
	"context"

	"petcareapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockMissingReportRepository struct {
	mock.Mock
}

func (m *MockMissingReportRepository) CreateActive(ctx context.Context, r *model.MissingReport) (*model.MissingReport, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MissingReport), args.Error(1)
}

func (m *MockMissingReportRepository) FindByID(ctx context.Context, id string) (*model.MissingReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MissingReport), args.Error(1)
}

func (m *MockMissingReportRepository) List(ctx context.Context) ([]model.MissingReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MissingReport), args.Error(1)
}

func (m *MockMissingReportRepository) MarkFound(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMissingReportRepository) AppendSighting(ctx context.Context, id, sightingID string) error {
	args := m.Called(ctx, id, sightingID)
	return args.Error(0)
}
