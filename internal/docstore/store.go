// Package docstore is the mock persistence store: users, sessions, favorites
// and attendance kept in one document that is written to a storage.KV after
// every mutation.
//
// A Store is built by the composition root and handed to its consumers; there
// is no package-level instance. All mutations go through a single writer lock,
// and each one is applied to a copy of the document, saved, and only then made
// visible.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groovematch/internal/apperr"
	"github.com/mmynk/groovematch/internal/metrics"
	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/internal/storage"
)

// DocumentKey is the well-known KV key holding the serialized document.
const DocumentKey = "groovematch.document"

// Durability decides what a failed save does to the mutation that caused it.
type Durability int

const (
	// BestEffort keeps the mutation in memory and logs the failed save. The
	// store stays available while durable state falls behind; LastSaveError
	// tells callers whether the latest write reached storage.
	BestEffort Durability = iota
	// Strict discards the mutation and returns a PersistenceDegraded error.
	Strict
)

// errUnchanged lets a mutation report that it was a no-op and needs no save.
var errUnchanged = errors.New("docstore: unchanged")

// Store is safe for concurrent use.
type Store struct {
	kv         storage.KV
	key        string
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tokens     TokenSource
	durability Durability
	now        func() time.Time

	loaded atomic.Bool
	mu     sync.RWMutex
	doc    *Document
	// lastSaveErr is nil when the latest save reached storage.
	lastSaveErr error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics reports mutations and failed saves.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithTokenSource replaces the default UUIDv7 session tokens.
func WithTokenSource(ts TokenSource) Option {
	return func(s *Store) { s.tokens = ts }
}

// WithDurability selects BestEffort (default) or Strict saves.
func WithDurability(d Durability) Option {
	return func(s *Store) { s.durability = d }
}

// WithClock overrides time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithKey stores the document under a different KV key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New creates a store over kv. Nothing is read until the first call.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DocumentKey,
		logger: slog.Default(),
		tokens: UUIDTokens(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the document from storage on the first call and is a no-op after
// that. A read or decode failure leaves the store with an empty document; the
// loss is logged, not returned. Only a cancelled ctx makes Load fail, and in
// that case a later call tries again.
func (s *Store) Load(ctx context.Context) error {
	if s.loaded.Load() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded.Load() {
		return nil
	}

	raw, ok, err := s.kv.Get(ctx, s.key)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	doc := newDocument()
	switch {
	case err != nil:
		s.logger.Warn("Document load failed; starting empty",
			"key", s.key,
			"kind", apperr.PersistenceDegraded,
			"error", err,
		)
	case ok:
		var decoded Document
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			s.logger.Warn("Document decode failed; starting empty",
				"key", s.key,
				"kind", apperr.PersistenceDegraded,
				"error", err,
			)
		} else {
			decoded.fill()
			doc = &decoded
		}
	}

	s.doc = doc
	s.loaded.Store(true)
	s.logger.Debug("Document loaded", "users", len(doc.Users), "sessions", len(doc.Sessions))
	return nil
}

// Save writes the whole in-memory document to storage.
func (s *Store) Save(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.write(ctx, s.doc)
}

// LastSaveError returns the error of the most recent mutation's save, or nil
// if it was durable.
func (s *Store) LastSaveError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSaveErr
}

func (s *Store) write(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func (s *Store) view(ctx context.Context, fn func(d *Document) error) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.doc)
}

// mutate applies fn to a copy of the document, saves the copy and swaps it in.
func (s *Store) mutate(ctx context.Context, op string, fn func(d *Document) error) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(next); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}

	if err := s.write(ctx, next); err != nil {
		s.lastSaveErr = err
		s.metrics.SaveFailed()
		if s.durability == Strict {
			s.logger.Error("Document save failed; mutation discarded", "op", op, "error", err)
			return apperr.Wrap(apperr.PersistenceDegraded, "docstore."+op, err)
		}
		s.logger.Warn("Document save failed; keeping in-memory state",
			"op", op,
			"kind", apperr.PersistenceDegraded,
			"error", err,
		)
	} else {
		s.lastSaveErr = nil
	}

	s.doc = next
	s.metrics.StoreMutation(op)
	return nil
}

// FindUserByEmail returns the first user whose email matches ignoring case.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var found *models.User
	err := s.view(ctx, func(d *Document) error {
		found = d.userByEmail(email).Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.New(apperr.NotFound, "docstore.FindUserByEmail", "no user with email %s", strings.TrimSpace(email))
	}
	return found, nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var found *models.User
	err := s.view(ctx, func(d *Document) error {
		found = d.userByID(id).Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.New(apperr.NotFound, "docstore.GetUser", "user not found: %s", id)
	}
	return found, nil
}

// CreateUser adds a user with empty favorites and attendance. It fails with
// Conflict when the email is already registered, ignoring case.
func (s *Store) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, apperr.New(apperr.InvalidArgument, "docstore.CreateUser", "name and email are required")
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Preferences: in.Preferences,
		CreatedAt:   s.now().Unix(),
	}
	user.Preferences.Styles = slices.Clone(in.Preferences.Styles)

	err := s.mutate(ctx, "create_user", func(d *Document) error {
		if d.userByEmail(email) != nil {
			return apperr.New(apperr.Conflict, "docstore.CreateUser", "email already registered: %s", email)
		}
		d.Users = append(d.Users, *user)
		d.Favorites[user.ID] = []string{}
		d.Attending[user.ID] = []string{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", "user_id", user.ID, "email", user.Email)
	return user.Clone(), nil
}

// CreateSession issues a new token for userID. The user must exist.
func (s *Store) CreateSession(ctx context.Context, userID string) (string, error) {
	var token string
	err := s.mutate(ctx, "create_session", func(d *Document) error {
		if d.userByID(userID) == nil {
			return apperr.New(apperr.NotFound, "docstore.CreateSession", "user not found: %s", userID)
		}
		t, err := s.tokens.NewToken(userID)
		if err != nil {
			return err
		}
		if _, taken := d.Sessions[t]; taken {
			return fmt.Errorf("session token collision for user %s", userID)
		}
		d.Sessions[t] = userID
		token = t
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetSession returns the session for token. The user record may have been
// removed since; callers that need the user should look it up.
func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var userID string
	var ok bool
	err := s.view(ctx, func(d *Document) error {
		userID, ok = d.Sessions[token]
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, apperr.New(apperr.NotFound, "docstore.GetSession", "unknown session token")
	}
	return models.Session{Token: token, UserID: userID}, nil
}

// RemoveSession deletes a token.
func (s *Store) RemoveSession(ctx context.Context, token string) error {
	return s.mutate(ctx, "remove_session", func(d *Document) error {
		if _, ok := d.Sessions[token]; !ok {
			return apperr.New(apperr.NotFound, "docstore.RemoveSession", "unknown session token")
		}
		delete(d.Sessions, token)
		return nil
	})
}

// ToggleFavorite removes eventID from the user's favorites if present and
// appends it otherwise. It reports whether the event is now a favorite.
func (s *Store) ToggleFavorite(ctx context.Context, userID, eventID string) (bool, error) {
	if eventID == "" {
		return false, apperr.New(apperr.InvalidArgument, "docstore.ToggleFavorite", "event id is required")
	}

	var favorited bool
	err := s.mutate(ctx, "toggle_favorite", func(d *Document) error {
		if d.userByID(userID) == nil {
			return apperr.New(apperr.NotFound, "docstore.ToggleFavorite", "user not found: %s", userID)
		}
		list := d.Favorites[userID]
		if i := slices.Index(list, eventID); i >= 0 {
			d.Favorites[userID] = slices.Delete(list, i, i+1)
			favorited = false
		} else {
			d.Favorites[userID] = append(list, eventID)
			favorited = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return favorited, nil
}

// SetAttending records that the user attends eventID. There is no way to
// undo it.
func (s *Store) SetAttending(ctx context.Context, userID, eventID string) error {
	if eventID == "" {
		return apperr.New(apperr.InvalidArgument, "docstore.SetAttending", "event id is required")
	}

	return s.mutate(ctx, "set_attending", func(d *Document) error {
		if d.userByID(userID) == nil {
			return apperr.New(apperr.NotFound, "docstore.SetAttending", "user not found: %s", userID)
		}
		if slices.Contains(d.Attending[userID], eventID) {
			return errUnchanged
		}
		d.Attending[userID] = append(d.Attending[userID], eventID)
		return nil
	})
}

// Favorites returns a copy of the user's favorite event ids.
func (s *Store) Favorites(ctx context.Context, userID string) ([]string, error) {
	return s.list(ctx, "docstore.Favorites", userID, func(d *Document) []string { return d.Favorites[userID] })
}

// Attending returns a copy of the user's attended event ids.
func (s *Store) Attending(ctx context.Context, userID string) ([]string, error) {
	return s.list(ctx, "docstore.Attending", userID, func(d *Document) []string { return d.Attending[userID] })
}

func (s *Store) list(ctx context.Context, op, userID string, pick func(d *Document) []string) ([]string, error) {
	var out []string
	err := s.view(ctx, func(d *Document) error {
		if d.userByID(userID) == nil {
			return apperr.New(apperr.NotFound, op, "user not found: %s", userID)
		}
		out = append([]string{}, pick(d)...)
		return nil
	})
	return out, err
}
