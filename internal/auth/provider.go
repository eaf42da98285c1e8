// Package auth talks to the external identity provider. Credentials live in the
// provider; the application only stores profile documents keyed by the
// provider-issued uid.
package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when the provider has no account for the query.
var ErrUserNotFound = errors.New("auth: user not found")

// User is the provider-side view of an account.
type User struct {
	UID   string
	Email string
}

// Provider is the identity provider gateway.
type Provider interface {
	// CreateUser registers an email/password credential and returns the new account.
	CreateUser(ctx context.Context, email, password string) (User, error)
	// GetUserByEmail looks an account up by email. Returns ErrUserNotFound when absent.
	GetUserByEmail(ctx context.Context, email string) (User, error)
	// VerifyIDToken validates a provider-issued ID token and returns the account it belongs to.
	VerifyIDToken(ctx context.Context, idToken string) (User, error)
	// PasswordResetLink asks the provider for a one-time password reset link for the account.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}
