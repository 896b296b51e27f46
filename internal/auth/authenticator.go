package auth

import (
	"context"

	"github.com/mmynk/groovematch/internal/models"
)

// Grant is what a successful sign-in or sign-up hands back.
type Grant struct {
	User  *models.User
	Token string
}

// Backend is the remote side of authentication. The Flow is written against
// this interface only, so a local mock and a real server are interchangeable.
//
// Errors carry apperr kinds: NotFound for an unknown email or token, Conflict
// for a duplicate sign-up, TransientNetwork for transport failures.
type Backend interface {
	// Authenticate signs in by email and opens a new session.
	Authenticate(ctx context.Context, email string) (*Grant, error)

	// Register creates the user and opens a session for it.
	Register(ctx context.Context, in models.NewUser) (*Grant, error)

	// ValidateSession resolves a token to its user.
	ValidateSession(ctx context.Context, token string) (*models.User, error)

	// RevokeSession ends a session.
	RevokeSession(ctx context.Context, token string) error
}
