package api

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/groovematch/internal/models"
)

const (
	AuthServiceName     = "groovematch.v1.AuthService"
	ActivityServiceName = "groovematch.v1.ActivityService"

	AuthenticateProcedure    = "/" + AuthServiceName + "/Authenticate"
	RegisterProcedure        = "/" + AuthServiceName + "/Register"
	ValidateSessionProcedure = "/" + AuthServiceName + "/ValidateSession"
	RevokeSessionProcedure   = "/" + AuthServiceName + "/RevokeSession"

	ToggleFavoriteProcedure = "/" + ActivityServiceName + "/ToggleFavorite"
	SetAttendingProcedure   = "/" + ActivityServiceName + "/SetAttending"
	ListFavoritesProcedure  = "/" + ActivityServiceName + "/ListFavorites"
	ListAttendingProcedure  = "/" + ActivityServiceName + "/ListAttending"
)

// User is the wire form of models.User.
type User struct {
	Id        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Styles    []string               `json:"styles,omitempty"`
	RadiusKm  float64                `json:"radius_km,omitempty"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
}

// UserToWire converts a domain user.
func UserToWire(u *models.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		Id:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Styles:    u.Preferences.Styles,
		RadiusKm:  u.Preferences.RadiusKm,
		CreatedAt: timestamppb.New(time.Unix(u.CreatedAt, 0)),
	}
}

// UserFromWire converts back to a domain user.
func UserFromWire(u *User) *models.User {
	if u == nil {
		return nil
	}
	out := &models.User{
		ID:    u.Id,
		Name:  u.Name,
		Email: u.Email,
		Preferences: models.Preferences{
			Styles:   u.Styles,
			RadiusKm: u.RadiusKm,
		},
	}
	if u.CreatedAt != nil {
		out.CreatedAt = u.CreatedAt.AsTime().Unix()
	}
	return out
}

type AuthenticateRequest struct {
	Email string `json:"email"`
}

type AuthenticateResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type RegisterRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Styles   []string `json:"styles,omitempty"`
	RadiusKm float64  `json:"radius_km,omitempty"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type ValidateSessionRequest struct {
	Token string `json:"token"`
}

type ValidateSessionResponse struct {
	User *User `json:"user"`
}

type RevokeSessionRequest struct {
	Token string `json:"token"`
}

type RevokeSessionResponse struct{}

// Activity requests carry the session in the Authorization header.

type ToggleFavoriteRequest struct {
	EventId string `json:"event_id"`
}

type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

type SetAttendingRequest struct {
	EventId string `json:"event_id"`
}

type SetAttendingResponse struct{}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	EventIds []string `json:"event_ids"`
}
