package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmynk/groovematch/internal/apperr"
	"github.com/mmynk/groovematch/internal/models"
)

// State is where the flow is in the sign-in lifecycle.
type State int

const (
	LoggedOut State = iota
	Loading
	LoggedIn
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// Default demo account used by LoginOrRegisterDemo.
const (
	DefaultDemoName  = "Demo Dancer"
	DefaultDemoEmail = "demo@groovematch.app"
)

// Flow owns the signed-in user and session token for one device.
//
// Transitions (Restore, SignIn, SignUp, SignOut, LoginOrRegisterDemo) run one
// at a time. State, User and Token may be read from any goroutine, including
// while a transition is running.
type Flow struct {
	backend Backend
	tokens  *TokenStore
	logger  *slog.Logger

	demoName  string
	demoEmail string

	// op serializes transitions.
	op sync.Mutex

	mu       sync.RWMutex
	state    State
	user     *models.User
	token    string
	onChange func(State)
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithFlowLogger sets the logger. Defaults to slog.Default().
func WithFlowLogger(l *slog.Logger) FlowOption {
	return func(f *Flow) { f.logger = l }
}

// WithDemoAccount overrides the account used by LoginOrRegisterDemo.
func WithDemoAccount(name, email string) FlowOption {
	return func(f *Flow) {
		f.demoName = name
		f.demoEmail = email
	}
}

// OnChange registers fn to be called after every state change. fn runs on the
// goroutine driving the transition and must not call back into the Flow's
// transition methods.
func OnChange(fn func(State)) FlowOption {
	return func(f *Flow) { f.onChange = fn }
}

// NewFlow creates a logged-out flow.
func NewFlow(backend Backend, tokens *TokenStore, opts ...FlowOption) *Flow {
	f := &Flow{
		backend:   backend,
		tokens:    tokens,
		logger:    slog.Default(),
		demoName:  DefaultDemoName,
		demoEmail: DefaultDemoEmail,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// User returns a copy of the signed-in user, or nil.
func (f *Flow) User() *models.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user.Clone()
}

// Token returns the current session token, or "".
func (f *Flow) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token
}

func (f *Flow) set(state State, user *models.User, token string) {
	f.mu.Lock()
	f.state = state
	f.user = user
	f.token = token
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}

func (f *Flow) setLoading() {
	f.mu.Lock()
	f.state = Loading
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(Loading)
	}
}

// Restore signs back in with the token saved on the device. It returns the
// user, or nil with no error when there is no saved session. An unknown token
// is removed from storage. Any failure leaves the flow logged out.
func (f *Flow) Restore(ctx context.Context) (*models.User, error) {
	f.op.Lock()
	defer f.op.Unlock()

	if f.State() == LoggedIn {
		return f.User(), nil
	}

	f.setLoading()

	token, err := f.tokens.Load(ctx)
	if err != nil {
		f.set(LoggedOut, nil, "")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn("Failed to read session token",
			"kind", apperr.PersistenceDegraded,
			"error", err,
		)
		return nil, nil
	}
	if token == "" {
		f.set(LoggedOut, nil, "")
		return nil, nil
	}

	user, err := f.backend.ValidateSession(ctx, token)
	if ctxErr := ctx.Err(); ctxErr != nil {
		f.set(LoggedOut, nil, "")
		return nil, ctxErr
	}
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			f.logger.Info("Saved session is no longer valid; clearing it")
			f.clearToken(ctx)
		}
		f.set(LoggedOut, nil, "")
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	f.set(LoggedIn, user, token)
	f.logger.Info("Session restored", "user_id", user.ID)
	return user.Clone(), nil
}

// SignIn authenticates by email.
func (f *Flow) SignIn(ctx context.Context, email string) (*models.User, error) {
	f.op.Lock()
	defer f.op.Unlock()
	return f.signIn(ctx, email)
}

func (f *Flow) signIn(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.New(apperr.InvalidArgument, "auth.SignIn", "email is required")
	}

	f.setLoading()
	grant, err := f.backend.Authenticate(ctx, email)
	if err != nil {
		f.set(LoggedOut, nil, "")
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	return f.accept(ctx, grant), nil
}

// SignUp registers a new user and signs in as them.
func (f *Flow) SignUp(ctx context.Context, in models.NewUser) (*models.User, error) {
	f.op.Lock()
	defer f.op.Unlock()
	return f.signUp(ctx, in)
}

func (f *Flow) signUp(ctx context.Context, in models.NewUser) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, apperr.New(apperr.InvalidArgument, "auth.SignUp", "name and email are required")
	}

	f.setLoading()
	grant, err := f.backend.Register(ctx, in)
	if err != nil {
		f.set(LoggedOut, nil, "")
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	return f.accept(ctx, grant), nil
}

// accept persists the granted token and moves to LoggedIn. A token that could
// not be saved only costs the next Restore.
func (f *Flow) accept(ctx context.Context, grant *Grant) *models.User {
	if err := f.tokens.Save(ctx, grant.Token); err != nil {
		f.logger.Warn("Failed to persist session token",
			"kind", apperr.PersistenceDegraded,
			"user_id", grant.User.ID,
			"error", err,
		)
	}
	f.set(LoggedIn, grant.User.Clone(), grant.Token)
	f.logger.Info("Signed in", "user_id", grant.User.ID)
	return grant.User.Clone()
}

// SignOut revokes the session and clears local state. Failures to revoke or
// to clear the saved token are logged; the flow always ends logged out.
func (f *Flow) SignOut(ctx context.Context) {
	f.op.Lock()
	defer f.op.Unlock()

	token := f.Token()
	f.setLoading()

	if token != "" {
		if err := f.backend.RevokeSession(ctx, token); err != nil {
			f.logger.Warn("Failed to revoke session", "kind", apperr.KindOf(err), "error", err)
		}
	}
	f.clearToken(ctx)
	f.set(LoggedOut, nil, "")
	f.logger.Info("Signed out")
}

func (f *Flow) clearToken(ctx context.Context) {
	if err := f.tokens.Clear(ctx); err != nil {
		f.logger.Warn("Failed to clear session token",
			"kind", apperr.PersistenceDegraded,
			"error", err,
		)
	}
}

// LoginOrRegisterDemo signs in as the demo account, creating it when it does
// not exist yet.
func (f *Flow) LoginOrRegisterDemo(ctx context.Context) (*models.User, error) {
	f.op.Lock()
	defer f.op.Unlock()

	user, err := f.signIn(ctx, f.demoEmail)
	if err == nil {
		return user, nil
	}
	if !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}

	f.logger.Info("Demo account missing; registering it", "email", f.demoEmail)
	return f.signUp(ctx, models.NewUser{
		Name:        f.demoName,
		Email:       f.demoEmail,
		Preferences: models.DefaultPreferences(),
	})
}
