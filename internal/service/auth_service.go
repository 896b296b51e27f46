package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groovematch/internal/apperr"
	"github.com/mmynk/groovematch/internal/auth"
	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	backend auth.Backend
	logger  *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(backend auth.Backend, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		backend: backend,
		logger:  logger,
	}
}

// Authenticate signs in by email and opens a session.
func (s *AuthService) Authenticate(ctx context.Context, req *connect.Request[api.AuthenticateRequest]) (*connect.Response[api.AuthenticateResponse], error) {
	s.logger.Info("Authenticate request", "email", req.Msg.Email)

	if req.Msg.Email == "" {
		return nil, api.ToConnectError(apperr.New(apperr.InvalidArgument, "Authenticate", "email is required"))
	}

	grant, err := s.backend.Authenticate(ctx, req.Msg.Email)
	if err != nil {
		s.logger.Warn("Authentication failed", "email", req.Msg.Email, "kind", apperr.KindOf(err))
		return nil, api.ToConnectError(err)
	}

	s.logger.Info("User signed in", "user_id", grant.User.ID)
	return connect.NewResponse(&api.AuthenticateResponse{
		User:  api.UserToWire(grant.User),
		Token: grant.Token,
	}), nil
}

// Register creates a new user account and opens a session.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Name == "" {
		return nil, api.ToConnectError(apperr.New(apperr.InvalidArgument, "Register", "name and email are required"))
	}

	grant, err := s.backend.Register(ctx, models.NewUser{
		Name:  req.Msg.Name,
		Email: req.Msg.Email,
		Preferences: models.Preferences{
			Styles:   req.Msg.Styles,
			RadiusKm: req.Msg.RadiusKm,
		},
	})
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "kind", apperr.KindOf(err), "error", err)
		return nil, api.ToConnectError(err)
	}

	s.logger.Info("User registered successfully", "user_id", grant.User.ID, "email", grant.User.Email)
	return connect.NewResponse(&api.RegisterResponse{
		User:  api.UserToWire(grant.User),
		Token: grant.Token,
	}), nil
}

// ValidateSession resolves a session token to its user.
func (s *AuthService) ValidateSession(ctx context.Context, req *connect.Request[api.ValidateSessionRequest]) (*connect.Response[api.ValidateSessionResponse], error) {
	user, err := s.backend.ValidateSession(ctx, req.Msg.Token)
	if err != nil {
		return nil, api.ToConnectError(err)
	}
	return connect.NewResponse(&api.ValidateSessionResponse{User: api.UserToWire(user)}), nil
}

// RevokeSession ends a session.
func (s *AuthService) RevokeSession(ctx context.Context, req *connect.Request[api.RevokeSessionRequest]) (*connect.Response[api.RevokeSessionResponse], error) {
	if err := s.backend.RevokeSession(ctx, req.Msg.Token); err != nil {
		return nil, api.ToConnectError(err)
	}
	s.logger.Info("Session revoked")
	return connect.NewResponse(&api.RevokeSessionResponse{}), nil
}
