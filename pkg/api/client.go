package api

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// AuthClient calls the AuthService procedures.
type AuthClient struct {
	Authenticate    *connect.Client[AuthenticateRequest, AuthenticateResponse]
	Register        *connect.Client[RegisterRequest, RegisterResponse]
	ValidateSession *connect.Client[ValidateSessionRequest, ValidateSessionResponse]
	RevokeSession   *connect.Client[RevokeSessionRequest, RevokeSessionResponse]
}

// NewAuthClient builds an AuthService client for baseURL.
func NewAuthClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &AuthClient{
		Authenticate:    connect.NewClient[AuthenticateRequest, AuthenticateResponse](httpClient, baseURL+AuthenticateProcedure, opts...),
		Register:        connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+RegisterProcedure, opts...),
		ValidateSession: connect.NewClient[ValidateSessionRequest, ValidateSessionResponse](httpClient, baseURL+ValidateSessionProcedure, opts...),
		RevokeSession:   connect.NewClient[RevokeSessionRequest, RevokeSessionResponse](httpClient, baseURL+RevokeSessionProcedure, opts...),
	}
}

// ActivityClient calls the ActivityService procedures.
type ActivityClient struct {
	ToggleFavorite *connect.Client[ToggleFavoriteRequest, ToggleFavoriteResponse]
	SetAttending   *connect.Client[SetAttendingRequest, SetAttendingResponse]
	ListFavorites  *connect.Client[ListEventsRequest, ListEventsResponse]
	ListAttending  *connect.Client[ListEventsRequest, ListEventsResponse]
}

// NewActivityClient builds an ActivityService client for baseURL.
func NewActivityClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ActivityClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &ActivityClient{
		ToggleFavorite: connect.NewClient[ToggleFavoriteRequest, ToggleFavoriteResponse](httpClient, baseURL+ToggleFavoriteProcedure, opts...),
		SetAttending:   connect.NewClient[SetAttendingRequest, SetAttendingResponse](httpClient, baseURL+SetAttendingProcedure, opts...),
		ListFavorites:  connect.NewClient[ListEventsRequest, ListEventsResponse](httpClient, baseURL+ListFavoritesProcedure, opts...),
		ListAttending:  connect.NewClient[ListEventsRequest, ListEventsResponse](httpClient, baseURL+ListAttendingProcedure, opts...),
	}
}

// WithBearer sets the Authorization header on a request.
func WithBearer[T any](req *connect.Request[T], token string) *connect.Request[T] {
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

// DefaultHTTPClient is used when callers pass nil.
func DefaultHTTPClient(c *http.Client) connect.HTTPClient {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
