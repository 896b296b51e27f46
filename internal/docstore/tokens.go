package docstore

import (
	"fmt"

	"github.com/google/uuid"
)

// TokenSource issues session tokens. Tokens must be unique with overwhelming
// probability.
type TokenSource interface {
	NewToken(userID string) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(userID string) (string, error)

func (f TokenFunc) NewToken(userID string) (string, error) {
	return f(userID)
}

// UUIDTokens issues UUIDv7 tokens: a millisecond timestamp with a monotonic
// counter, followed by random bits.
func UUIDTokens() TokenSource {
	return TokenFunc(func(string) (string, error) {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("failed to generate session token: %w", err)
		}
		return id.String(), nil
	})
}
