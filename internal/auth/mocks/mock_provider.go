package mocks

import (
	"context"

	"petcareapi/internal/auth"

	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateUser(ctx context.Context, email, password string) (auth.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *MockProvider) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *MockProvider) VerifyIDToken(ctx context.Context, idToken string) (auth.User, error) {
	args := m.Called(ctx, idToken)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *MockProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
