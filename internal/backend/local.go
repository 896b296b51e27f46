package backend

import (
	"context"
	"log/slog"

	"github.com/mmynk/groovematch/internal/apperr"
	"github.com/mmynk/groovematch/internal/auth"
	"github.com/mmynk/groovematch/internal/docstore"
	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/internal/netsim"
)

// Ensure Local implements Backend.
var _ Backend = (*Local)(nil)

// ErrorRates are the probabilities of an injected TransientNetwork failure
// per call group. Zero disables injection.
type ErrorRates struct {
	// Auth covers Authenticate, Register, ValidateSession and RevokeSession.
	Auth float64
	// Favorite covers ToggleFavorite.
	Favorite float64
}

// Local serves every call from a docstore.Store, with each call delayed by
// the simulator.
type Local struct {
	store  *docstore.Store
	sim    *netsim.Simulator
	rates  ErrorRates
	logger *slog.Logger
}

// LocalOption configures a Local backend.
type LocalOption func(*Local)

// WithErrorRates opts calls in to injected failures.
func WithErrorRates(r ErrorRates) LocalOption {
	return func(l *Local) { l.rates = r }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) LocalOption {
	return func(l *Local) { l.logger = logger }
}

// NewLocal creates a backend over store. sim must not be nil.
func NewLocal(store *docstore.Store, sim *netsim.Simulator, opts ...LocalOption) *Local {
	l := &Local{
		store:  store,
		sim:    sim,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Store exposes the underlying store.
func (l *Local) Store() *docstore.Store {
	return l.store
}

func (l *Local) Authenticate(ctx context.Context, email string) (*auth.Grant, error) {
	return netsim.Call(ctx, l.sim, func(ctx context.Context) (*auth.Grant, error) {
		user, err := l.store.FindUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return l.grant(ctx, user)
	}, netsim.Named("authenticate"), netsim.WithErrorRate(l.rates.Auth))
}

func (l *Local) Register(ctx context.Context, in models.NewUser) (*auth.Grant, error) {
	return netsim.Call(ctx, l.sim, func(ctx context.Context) (*auth.Grant, error) {
		user, err := l.store.CreateUser(ctx, in)
		if err != nil {
			return nil, err
		}
		return l.grant(ctx, user)
	}, netsim.Named("register"), netsim.WithErrorRate(l.rates.Auth))
}

func (l *Local) grant(ctx context.Context, user *models.User) (*auth.Grant, error) {
	token, err := l.store.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &auth.Grant{User: user, Token: token}, nil
}

func (l *Local) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	return netsim.Call(ctx, l.sim, func(ctx context.Context) (*models.User, error) {
		return l.sessionUser(ctx, token)
	}, netsim.Named("validate_session"), netsim.WithErrorRate(l.rates.Auth))
}

func (l *Local) RevokeSession(ctx context.Context, token string) error {
	return netsim.Do(ctx, l.sim, func(ctx context.Context) error {
		return l.store.RemoveSession(ctx, token)
	}, netsim.Named("revoke_session"), netsim.WithErrorRate(l.rates.Auth))
}

func (l *Local) ToggleFavorite(ctx context.Context, token, eventID string) (bool, error) {
	return netsim.Call(ctx, l.sim, func(ctx context.Context) (bool, error) {
		user, err := l.sessionUser(ctx, token)
		if err != nil {
			return false, err
		}
		return l.store.ToggleFavorite(ctx, user.ID, eventID)
	}, netsim.Named("toggle_favorite"), netsim.WithErrorRate(l.rates.Favorite))
}

func (l *Local) SetAttending(ctx context.Context, token, eventID string) error {
	return netsim.Do(ctx, l.sim, func(ctx context.Context) error {
		user, err := l.sessionUser(ctx, token)
		if err != nil {
			return err
		}
		return l.store.SetAttending(ctx, user.ID, eventID)
	}, netsim.Named("set_attending"))
}

func (l *Local) Favorites(ctx context.Context, token string) ([]string, error) {
	return netsim.Call(ctx, l.sim, func(ctx context.Context) ([]string, error) {
		user, err := l.sessionUser(ctx, token)
		if err != nil {
			return nil, err
		}
		return l.store.Favorites(ctx, user.ID)
	}, netsim.Named("favorites"))
}

func (l *Local) Attending(ctx context.Context, token string) ([]string, error) {
	return netsim.Call(ctx, l.sim, func(ctx context.Context) ([]string, error) {
		user, err := l.sessionUser(ctx, token)
		if err != nil {
			return nil, err
		}
		return l.store.Attending(ctx, user.ID)
	}, netsim.Named("attending"))
}

// sessionUser resolves a token to its user. A session whose user no longer
// exists is reported as NotFound, like an unknown token.
func (l *Local) sessionUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.New(apperr.NotFound, "backend.session", "no session token")
	}
	sess, err := l.store.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := l.store.GetUser(ctx, sess.UserID)
	if err != nil {
		l.logger.Warn("Session refers to a missing user", "user_id", sess.UserID)
		return nil, err
	}
	return user, nil
}
