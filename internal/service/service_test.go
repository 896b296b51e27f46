package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/groovematch/internal/apperr"
	"github.com/mmynk/groovematch/internal/auth"
	"github.com/mmynk/groovematch/internal/backend"
	"github.com/mmynk/groovematch/internal/docstore"
	"github.com/mmynk/groovematch/internal/metrics"
	"github.com/mmynk/groovematch/internal/middleware"
	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/internal/netsim"
	"github.com/mmynk/groovematch/internal/storage/memory"
	"github.com/mmynk/groovematch/pkg/api"
)

// setupTestServer serves both services over an in-memory store and returns a
// Remote backend pointed at it.
func setupTestServer(t *testing.T, jwtManager *auth.JWTManager) (*backend.Remote, *httptest.Server, func()) {
	t.Helper()

	var opts []docstore.Option
	if jwtManager != nil {
		opts = append(opts, docstore.WithTokenSource(jwtManager))
	}
	store := docstore.New(memory.New(), opts...)

	sim := netsim.New()
	sim.MinLatency, sim.MaxLatency = 0, 0
	local := backend.NewLocal(store, sim)

	m := metrics.New()
	logging := middleware.LoggingInterceptor(nil, m)

	mux := http.NewServeMux()
	mux.Handle(NewAuthServiceHandler(NewAuthService(local, nil),
		connect.WithInterceptors(logging),
	))
	mux.Handle(NewActivityServiceHandler(NewActivityService(local, nil),
		connect.WithInterceptors(logging, middleware.RequireSession(jwtManager)),
	))

	server := httptest.NewServer(mux)
	remote := backend.NewRemote(server.Client(), server.URL)

	cleanup := func() {
		server.Close()
	}
	return remote, server, cleanup
}

func TestRegisterAndAuthenticate(t *testing.T) {
	remote, _, cleanup := setupTestServer(t, nil)
	defer cleanup()
	ctx := context.Background()

	grant, err := remote.Register(ctx, models.NewUser{
		Name:        "Ana",
		Email:       "ana@x.com",
		Preferences: models.Preferences{Styles: []string{"kizomba"}, RadiusKm: 10},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if grant.Token == "" {
		t.Fatal("expected a session token")
	}
	if grant.User.Name != "Ana" || grant.User.Email != "ana@x.com" {
		t.Errorf("unexpected user: %+v", grant.User)
	}
	if len(grant.User.Preferences.Styles) != 1 || grant.User.Preferences.Styles[0] != "kizomba" {
		t.Errorf("expected styles to round-trip, got %v", grant.User.Preferences.Styles)
	}
	if grant.User.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := remote.Register(ctx, models.NewUser{Name: "Ana 2", Email: "ANA@x.com"})
		if !apperr.IsKind(err, apperr.Conflict) {
			t.Errorf("expected Conflict, got %v", err)
		}
	})

	t.Run("sign in returns a fresh session", func(t *testing.T) {
		again, err := remote.Authenticate(ctx, "ana@x.com")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if again.User.ID != grant.User.ID {
			t.Errorf("expected user %s, got %s", grant.User.ID, again.User.ID)
		}
		if again.Token == grant.Token {
			t.Error("expected a distinct token per session")
		}
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := remote.Authenticate(ctx, "nobody@x.com")
		if !apperr.IsKind(err, apperr.NotFound) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		_, err := remote.Register(ctx, models.NewUser{Email: "x@x.com"})
		if !apperr.IsKind(err, apperr.InvalidArgument) {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	remote, _, cleanup := setupTestServer(t, nil)
	defer cleanup()
	ctx := context.Background()

	grant, err := remote.Register(ctx, models.NewUser{Name: "Ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := remote.ValidateSession(ctx, grant.Token)
	if err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	if user.ID != grant.User.ID {
		t.Errorf("expected user %s, got %s", grant.User.ID, user.ID)
	}

	if err := remote.RevokeSession(ctx, grant.Token); err != nil {
		t.Fatalf("RevokeSession failed: %v", err)
	}

	if _, err := remote.ValidateSession(ctx, grant.Token); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("expected NotFound after revoke, got %v", err)
	}
	if err := remote.RevokeSession(ctx, grant.Token); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("expected NotFound for second revoke, got %v", err)
	}
}

func TestActivity(t *testing.T) {
	remote, _, cleanup := setupTestServer(t, nil)
	defer cleanup()
	ctx := context.Background()

	grant, err := remote.Register(ctx, models.NewUser{Name: "Ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	token := grant.Token

	t.Run("toggle twice leaves favorites empty", func(t *testing.T) {
		on, err := remote.ToggleFavorite(ctx, token, "e1")
		if err != nil || !on {
			t.Fatalf("first toggle = %v, %v; want true", on, err)
		}
		on, err = remote.ToggleFavorite(ctx, token, "e1")
		if err != nil || on {
			t.Fatalf("second toggle = %v, %v; want false", on, err)
		}
		faves, err := remote.Favorites(ctx, token)
		if err != nil {
			t.Fatalf("Favorites failed: %v", err)
		}
		if len(faves) != 0 {
			t.Errorf("expected no favorites, got %v", faves)
		}
	})

	t.Run("attending is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := remote.SetAttending(ctx, token, "e2"); err != nil {
				t.Fatalf("SetAttending failed: %v", err)
			}
		}
		got, err := remote.Attending(ctx, token)
		if err != nil {
			t.Fatalf("Attending failed: %v", err)
		}
		if len(got) != 1 || got[0] != "e2" {
			t.Errorf("expected [e2], got %v", got)
		}
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		_, err := remote.ToggleFavorite(ctx, "bogus", "e1")
		if !apperr.IsKind(err, apperr.NotFound) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})
}

func TestActivityRequiresBearer(t *testing.T) {
	_, server, cleanup := setupTestServer(t, nil)
	defer cleanup()

	client := api.NewActivityClient(server.Client(), server.URL)
	_, err := client.ListFavorites.CallUnary(context.Background(), connect.NewRequest(&api.ListEventsRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated, got %v", err)
	}
}

func TestSignedTokens(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret-key-for-testing-only", time.Hour)
	remote, server, cleanup := setupTestServer(t, jwtManager)
	defer cleanup()
	ctx := context.Background()

	grant, err := remote.Register(ctx, models.NewUser{Name: "Ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	claims, err := jwtManager.Validate(grant.Token)
	if err != nil {
		t.Fatalf("expected a signed token: %v", err)
	}
	if claims.UserID != grant.User.ID {
		t.Errorf("expected claims for %s, got %s", grant.User.ID, claims.UserID)
	}

	if _, err := remote.ToggleFavorite(ctx, grant.Token, "e1"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}

	forged := auth.NewJWTManager("some-other-secret", time.Hour)
	token, err := forged.NewToken(grant.User.ID)
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	client := api.NewActivityClient(server.Client(), server.URL)
	req := api.WithBearer(connect.NewRequest(&api.ListEventsRequest{}), token)
	if _, err := client.ListFavorites.CallUnary(ctx, req); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated for forged token, got %v", err)
	}
}

func TestFlowOverRemote(t *testing.T) {
	remote, _, cleanup := setupTestServer(t, nil)
	defer cleanup()
	ctx := context.Background()

	flow := auth.NewFlow(remote, auth.NewTokenStore(memory.New()))

	if _, err := flow.SignUp(ctx, models.NewUser{Name: "Ana", Email: "ana@x.com"}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	flow.SignOut(ctx)

	user, err := flow.SignIn(ctx, "ana@x.com")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if user.Name != "Ana" {
		t.Errorf("expected Ana, got %q", user.Name)
	}

	if _, err := flow.SignIn(ctx, "nobody@x.com"); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
