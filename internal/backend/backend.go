// Package backend implements the remote side of the app twice: Local runs
// against the document store behind simulated network latency, Remote talks to
// the groovematch server over Connect.
package backend

import (
	"context"

	"github.com/mmynk/groovematch/internal/auth"
)

// Backend is everything the client needs from a server. Activity calls are
// authenticated by session token.
type Backend interface {
	auth.Backend

	// ToggleFavorite flips eventID in the caller's favorites and reports
	// whether it is now a favorite.
	ToggleFavorite(ctx context.Context, token, eventID string) (bool, error)

	// SetAttending marks the caller as attending eventID. Repeating it is a no-op.
	SetAttending(ctx context.Context, token, eventID string) error

	// Favorites lists the caller's favorite event ids in insertion order.
	Favorites(ctx context.Context, token string) ([]string, error)

	// Attending lists the events the caller attends in insertion order.
	Attending(ctx context.Context, token string) ([]string, error)
}
