package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groovematch/internal/auth"
	"github.com/mmynk/groovematch/internal/backend"
	"github.com/mmynk/groovematch/internal/middleware"
	"github.com/mmynk/groovematch/pkg/api"
)

// ActivityService implements favorites and attendance. Every procedure runs
// behind middleware.RequireSession.
type ActivityService struct {
	backend backend.Backend
	logger  *slog.Logger
}

// NewActivityService creates a new activity service.
func NewActivityService(b backend.Backend, logger *slog.Logger) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{
		backend: b,
		logger:  logger,
	}
}

func sessionToken(ctx context.Context) (string, error) {
	token := middleware.GetToken(ctx)
	if token == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return token, nil
}

// ToggleFavorite flips an event in the caller's favorites.
func (s *ActivityService) ToggleFavorite(ctx context.Context, req *connect.Request[api.ToggleFavoriteRequest]) (*connect.Response[api.ToggleFavoriteResponse], error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	favorited, err := s.backend.ToggleFavorite(ctx, token, req.Msg.EventId)
	if err != nil {
		return nil, api.ToConnectError(err)
	}

	s.logger.Info("Favorite toggled",
		"user_id", middleware.GetUserID(ctx),
		"event_id", req.Msg.EventId,
		"favorited", favorited,
	)
	return connect.NewResponse(&api.ToggleFavoriteResponse{Favorited: favorited}), nil
}

// SetAttending marks the caller as attending an event.
func (s *ActivityService) SetAttending(ctx context.Context, req *connect.Request[api.SetAttendingRequest]) (*connect.Response[api.SetAttendingResponse], error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.backend.SetAttending(ctx, token, req.Msg.EventId); err != nil {
		return nil, api.ToConnectError(err)
	}
	return connect.NewResponse(&api.SetAttendingResponse{}), nil
}

// ListFavorites returns the caller's favorite event ids.
func (s *ActivityService) ListFavorites(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.backend.Favorites(ctx, token)
	if err != nil {
		return nil, api.ToConnectError(err)
	}
	return connect.NewResponse(&api.ListEventsResponse{EventIds: ids}), nil
}

// ListAttending returns the events the caller attends.
func (s *ActivityService) ListAttending(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.backend.Attending(ctx, token)
	if err != nil {
		return nil, api.ToConnectError(err)
	}
	return connect.NewResponse(&api.ListEventsResponse{EventIds: ids}), nil
}
