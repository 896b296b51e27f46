// Package sealed wraps a storage.KV so every value is encrypted at rest with
// XChaCha20-Poly1305 under a key derived from a passphrase with Argon2id.
//
// The salt is stored in the wrapped KV under SaltKey; the key is derived once
// when the KV is opened and checked against a sealed value under CheckKey, so
// a wrong passphrase fails Open instead of overwriting data later.
package sealed

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/mmynk/groovematch/internal/storage"
)

// SaltKey holds the base64 Argon2id salt in the wrapped KV.
const SaltKey = "groovematch.sealed.salt"

// CheckKey holds a known value sealed under the passphrase's key.
const CheckKey = "groovematch.sealed.check"

const checkValue = "groovematch"

const (
	envelopeVersion = 1
	algorithm       = "xchacha20-poly1305"
)

// ErrDecrypt is returned when a stored value cannot be opened, usually
// because the passphrase is wrong.
var ErrDecrypt = errors.New("sealed: cannot decrypt value (wrong passphrase?)")

var _ storage.KV = (*KV)(nil)

// KDFParams holds Argon2id parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultKDFParams returns the Argon2id parameters used outside tests.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    3,
		Memory:  65536, // 64MB
		Threads: 4,
	}
}

type envelope struct {
	Version    int    `json:"v"`
	Algorithm  string `json:"alg"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ct"`
}

// KV encrypts values on Set and decrypts them on Get. Keys stay in clear.
type KV struct {
	inner storage.KV
	key   []byte
}

// Open derives the encryption key, creating and storing a fresh salt on first
// use. It fails with ErrDecrypt when the passphrase does not match the one
// the KV was first opened with.
func Open(ctx context.Context, inner storage.KV, passphrase []byte, params KDFParams) (*KV, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("sealed: empty passphrase")
	}

	salt, err := loadOrCreateSalt(ctx, inner)
	if err != nil {
		return nil, err
	}

	key := argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Threads, chacha20poly1305.KeySize)
	s := &KV{inner: inner, key: key}
	if err := s.verify(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// verify opens the check value, writing it when the KV has none yet.
func (s *KV) verify(ctx context.Context) error {
	got, ok, err := s.Get(ctx, CheckKey)
	switch {
	case errors.Is(err, ErrDecrypt):
		return fmt.Errorf("passphrase does not match stored data: %w", ErrDecrypt)
	case err != nil:
		return fmt.Errorf("read check value: %w", err)
	case !ok:
		if err := s.Set(ctx, CheckKey, checkValue); err != nil {
			return fmt.Errorf("store check value: %w", err)
		}
		return nil
	case got != checkValue:
		return ErrDecrypt
	}
	return nil
}

func loadOrCreateSalt(ctx context.Context, inner storage.KV) ([]byte, error) {
	encoded, ok, err := inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	if ok {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode salt: %w", err)
		}
		return salt, nil
	}

	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	if err := inner.Set(ctx, SaltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("store salt: %w", err)
	}
	return salt, nil
}

func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return "", false, fmt.Errorf("decode envelope for %q: %w", key, err)
	}
	if env.Version != envelopeVersion || env.Algorithm != algorithm {
		return "", false, fmt.Errorf("unsupported envelope for %q: v%d %s", key, env.Version, env.Algorithm)
	}

	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return "", false, fmt.Errorf("decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return "", false, fmt.Errorf("decode ciphertext: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", false, fmt.Errorf("create cipher: %w", err)
	}
	// The key name is bound as associated data so values cannot be swapped
	// between keys.
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", false, ErrDecrypt
	}
	return string(plaintext), true, nil
}

func (s *KV) Set(ctx context.Context, key, value string) error {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	data, err := json.Marshal(envelope{
		Version:    envelopeVersion,
		Algorithm:  algorithm,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, []byte(value), []byte(key))),
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return s.inner.Set(ctx, key, string(data))
}

func (s *KV) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

func (s *KV) Close() error {
	return s.inner.Close()
}
