package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petcareapi/internal/auth"
	"petcareapi/internal/mailer"
	"petcareapi/internal/model"
	"petcareapi/internal/repository"
	"petcareapi/internal/storage"
)

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Status      string `json:"status"`
}

// UserDetails is a profile with the picture path resolved to a signed URL.
type UserDetails struct {
	model.User
	ProfilePicURL string `json:"profilePicUrl"`
}

// UserService defines the account use cases. Credentials live in the identity
// provider; the profile document shares its uid.
type UserService interface {
	// Register creates the provider credential and the profile document.
	// A duplicate email is rejected before anything is written.
	Register(ctx context.Context, in RegisterInput) (*UserDetails, error)

	// Login verifies a provider-issued ID token and loads the profile.
	Login(ctx context.Context, idToken string) (*UserDetails, error)

	Get(ctx context.Context, id string) (*UserDetails, error)

	// Update applies a partial profile update, uploading a replacement
	// profile picture first when one is supplied.
	Update(ctx context.Context, id string, upd model.UserUpdate, picture *FileUpload) (*UserDetails, error)

	// SendPasswordReset asks the provider for a reset link and mails it.
	SendPasswordReset(ctx context.Context, email string) error
}

type userService struct {
	users    repository.UserRepository
	provider auth.Provider
	store    storage.Storage
	mail     mailer.Mailer
}

// NewUserService constructs a new UserService.
func NewUserService(users repository.UserRepository, provider auth.Provider, store storage.Storage, mail mailer.Mailer) UserService {
	return &userService{users: users, provider: provider, store: store, mail: mail}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*UserDetails, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if strings.TrimSpace(in.UserName) == "" {
		return nil, fmt.Errorf("%w: userName is required", ErrValidation)
	}

	// Duplicate check comes first so a taken email causes no writes at all.
	_, err := s.provider.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: lookup email: %v", ErrUpstream, err)
	}

	account, err := s.provider.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: create credential: %v", ErrUpstream, err)
	}

	u := &model.User{
		ID:          account.UID,
		UserName:    in.UserName,
		Email:       in.Email,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		Status:      in.Status,
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.details(ctx, stored), nil
}

func (s *userService) Login(ctx context.Context, idToken string) (*UserDetails, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("%w: idToken is required", ErrValidation)
	}
	account, err := s.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: verify token: %v", ErrUpstream, err)
	}
	return s.Get(ctx, account.UID)
}

func (s *userService) Get(ctx context.Context, id string) (*UserDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.details(ctx, u), nil
}

func (s *userService) Update(ctx context.Context, id string, upd model.UserUpdate, picture *FileUpload) (*UserDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if picture != nil {
		key, err := uploadImage(ctx, s.store, "user", picture)
		if err != nil {
			return nil, err
		}
		upd.ProfilePicPath = &key
	}
	if err := s.users.Update(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *userService) SendPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	link, err := s.provider.PasswordResetLink(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: reset link: %v", ErrUpstream, err)
	}
	body := "To reset your password, click the following link: " + link
	if err := s.mail.Send(email, "Password Reset Request", body); err != nil {
		return fmt.Errorf("%w: send reset mail: %v", ErrUpstream, err)
	}
	return nil
}

func (s *userService) details(ctx context.Context, u *model.User) *UserDetails {
	return &UserDetails{
		User:          *u,
		ProfilePicURL: signedURL(ctx, s.store, u.ProfilePicPath),
	}
}
