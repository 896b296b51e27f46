package backend

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/groovematch/internal/auth"
	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/pkg/api"
)

// Ensure Remote implements Backend.
var _ Backend = (*Remote)(nil)

// Remote calls a groovematch server. Transport failures surface as
// TransientNetwork errors.
type Remote struct {
	auth     *api.AuthClient
	activity *api.ActivityClient
}

// NewRemote creates a client for the server at baseURL. A nil httpClient
// uses http.DefaultClient.
func NewRemote(httpClient *http.Client, baseURL string, opts ...connect.ClientOption) *Remote {
	hc := api.DefaultHTTPClient(httpClient)
	return &Remote{
		auth:     api.NewAuthClient(hc, baseURL, opts...),
		activity: api.NewActivityClient(hc, baseURL, opts...),
	}
}

func (r *Remote) Authenticate(ctx context.Context, email string) (*auth.Grant, error) {
	resp, err := r.auth.Authenticate.CallUnary(ctx, connect.NewRequest(&api.AuthenticateRequest{Email: email}))
	if err != nil {
		return nil, api.FromConnectError("backend.Authenticate", err)
	}
	return &auth.Grant{User: api.UserFromWire(resp.Msg.User), Token: resp.Msg.Token}, nil
}

func (r *Remote) Register(ctx context.Context, in models.NewUser) (*auth.Grant, error) {
	resp, err := r.auth.Register.CallUnary(ctx, connect.NewRequest(&api.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Styles:   in.Preferences.Styles,
		RadiusKm: in.Preferences.RadiusKm,
	}))
	if err != nil {
		return nil, api.FromConnectError("backend.Register", err)
	}
	return &auth.Grant{User: api.UserFromWire(resp.Msg.User), Token: resp.Msg.Token}, nil
}

func (r *Remote) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	resp, err := r.auth.ValidateSession.CallUnary(ctx, connect.NewRequest(&api.ValidateSessionRequest{Token: token}))
	if err != nil {
		return nil, api.FromConnectError("backend.ValidateSession", err)
	}
	return api.UserFromWire(resp.Msg.User), nil
}

func (r *Remote) RevokeSession(ctx context.Context, token string) error {
	_, err := r.auth.RevokeSession.CallUnary(ctx, connect.NewRequest(&api.RevokeSessionRequest{Token: token}))
	return api.FromConnectError("backend.RevokeSession", err)
}

func (r *Remote) ToggleFavorite(ctx context.Context, token, eventID string) (bool, error) {
	req := api.WithBearer(connect.NewRequest(&api.ToggleFavoriteRequest{EventId: eventID}), token)
	resp, err := r.activity.ToggleFavorite.CallUnary(ctx, req)
	if err != nil {
		return false, api.FromConnectError("backend.ToggleFavorite", err)
	}
	return resp.Msg.Favorited, nil
}

func (r *Remote) SetAttending(ctx context.Context, token, eventID string) error {
	req := api.WithBearer(connect.NewRequest(&api.SetAttendingRequest{EventId: eventID}), token)
	_, err := r.activity.SetAttending.CallUnary(ctx, req)
	return api.FromConnectError("backend.SetAttending", err)
}

func (r *Remote) Favorites(ctx context.Context, token string) ([]string, error) {
	req := api.WithBearer(connect.NewRequest(&api.ListEventsRequest{}), token)
	resp, err := r.activity.ListFavorites.CallUnary(ctx, req)
	if err != nil {
		return nil, api.FromConnectError("backend.Favorites", err)
	}
	return nonNil(resp.Msg.EventIds), nil
}

func (r *Remote) Attending(ctx context.Context, token string) ([]string, error) {
	req := api.WithBearer(connect.NewRequest(&api.ListEventsRequest{}), token)
	resp, err := r.activity.ListAttending.CallUnary(ctx, req)
	if err != nil {
		return nil, api.FromConnectError("backend.Attending", err)
	}
	return nonNil(resp.Msg.EventIds), nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
