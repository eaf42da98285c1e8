package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"petcareapi/internal/auth"
	authMocks "petcareapi/internal/auth/mocks"
	mailMocks "petcareapi/internal/mailer/mocks"
	"petcareapi/internal/model"
	repoMocks "petcareapi/internal/repository/mocks"
	storeMocks "petcareapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService() (*repoMocks.MockUserRepository, *authMocks.MockProvider, *storeMocks.MockStorage, *mailMocks.MockMailer, UserService) {
	users := new(repoMocks.MockUserRepository)
	provider := new(authMocks.MockProvider)
	store := new(storeMocks.MockStorage)
	mail := new(mailMocks.MockMailer)
	return users, provider, store, mail, NewUserService(users, provider, store, mail)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		users, provider, _, _, svc := newUserService()

		provider.On("GetUserByEmail", ctx, "rex@example.com").Return(auth.User{}, auth.ErrUserNotFound)
		provider.On("CreateUser", ctx, "rex@example.com", "hunter22").Return(auth.User{UID: "uid-1", Email: "rex@example.com"}, nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == "uid-1" && u.Email == "rex@example.com" && u.UserName == "Rex Owner"
		})).Return(&model.User{ID: "uid-1", UserName: "Rex Owner", Email: "rex@example.com"}, nil)

		got, err := svc.Register(ctx, RegisterInput{
			UserName: "Rex Owner",
			Email:    "rex@example.com",
			Password: "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, "uid-1", got.ID)

		users.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("duplicate email causes no writes", func(t *testing.T) {
		users, provider, _, _, svc := newUserService()

		provider.On("GetUserByEmail", ctx, "taken@example.com").Return(auth.User{UID: "existing"}, nil)

		_, err := svc.Register(ctx, RegisterInput{
			UserName: "Someone",
			Email:    "taken@example.com",
			Password: "hunter22",
		})
		assert.ErrorIs(t, err, ErrEmailInUse)

		provider.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("provider lookup failure is upstream", func(t *testing.T) {
		_, provider, _, _, svc := newUserService()

		provider.On("GetUserByEmail", ctx, "rex@example.com").Return(auth.User{}, errors.New("timeout"))

		_, err := svc.Register(ctx, RegisterInput{UserName: "x", Email: "rex@example.com", Password: "p"})
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, _, _, svc := newUserService()

		_, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "p"})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.Register(ctx, RegisterInput{UserName: "x", Password: "p"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		users, provider, store, _, svc := newUserService()

		provider.On("VerifyIDToken", ctx, "token-abc").Return(auth.User{UID: "uid-1"}, nil)
		users.On("FindByID", ctx, "uid-1").Return(&model.User{ID: "uid-1", ProfilePicPath: "user/pic.png"}, nil)
		store.On("PresignGet", ctx, "user/pic.png", mock.Anything).Return("https://signed/pic.png", nil)

		got, err := svc.Login(ctx, "token-abc")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", got.ID)
		assert.Equal(t, "https://signed/pic.png", got.ProfilePicURL)
	})

	t.Run("profile missing", func(t *testing.T) {
		users, provider, _, _, svc := newUserService()

		provider.On("VerifyIDToken", ctx, "token-abc").Return(auth.User{UID: "uid-gone"}, nil)
		users.On("FindByID", ctx, "uid-gone").Return(nil, sql.ErrNoRows)

		_, err := svc.Login(ctx, "token-abc")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		_, _, _, _, svc := newUserService()
		_, err := svc.Login(ctx, " ")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserService_SendPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("mails the provider link", func(t *testing.T) {
		_, provider, _, mail, svc := newUserService()

		provider.On("PasswordResetLink", ctx, "rex@example.com").Return("https://reset.example/abc", nil)
		mail.On("Send", "rex@example.com", "Password Reset Request", mock.MatchedBy(func(body string) bool {
			return body == "To reset your password, click the following link: https://reset.example/abc"
		})).Return(nil)

		err := svc.SendPasswordReset(ctx, "rex@example.com")
		require.NoError(t, err)
		mail.AssertExpectations(t)
	})

	t.Run("mailer failure is upstream", func(t *testing.T) {
		_, provider, _, mail, svc := newUserService()

		provider.On("PasswordResetLink", ctx, "rex@example.com").Return("https://reset.example/abc", nil)
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay down"))

		err := svc.SendPasswordReset(ctx, "rex@example.com")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}
