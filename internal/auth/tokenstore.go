package auth

import (
	"context"

	"github.com/mmynk/groovematch/internal/storage"
)

// TokenKey is the KV key holding the signed-in session token on the device.
const TokenKey = "groovematch.session_token"

// TokenStore keeps the current session token in durable storage.
type TokenStore struct {
	kv storage.KV
}

// NewTokenStore wraps kv.
func NewTokenStore(kv storage.KV) *TokenStore {
	return &TokenStore{kv: kv}
}

// Load returns the stored token, or "" when there is none.
func (t *TokenStore) Load(ctx context.Context) (string, error) {
	token, ok, err := t.kv.Get(ctx, TokenKey)
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

// Save replaces the stored token.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	return t.kv.Set(ctx, TokenKey, token)
}

// Clear removes the stored token.
func (t *TokenStore) Clear(ctx context.Context) error {
	return t.kv.Remove(ctx, TokenKey)
}
