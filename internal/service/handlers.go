package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/groovematch/pkg/api"
)

// NewAuthServiceHandler builds an HTTP handler for AuthService. It returns
// the path to mount it on.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(api.AuthenticateProcedure, connect.NewUnaryHandler(api.AuthenticateProcedure, svc.Authenticate, opts...))
	mux.Handle(api.RegisterProcedure, connect.NewUnaryHandler(api.RegisterProcedure, svc.Register, opts...))
	mux.Handle(api.ValidateSessionProcedure, connect.NewUnaryHandler(api.ValidateSessionProcedure, svc.ValidateSession, opts...))
	mux.Handle(api.RevokeSessionProcedure, connect.NewUnaryHandler(api.RevokeSessionProcedure, svc.RevokeSession, opts...))
	return "/" + api.AuthServiceName + "/", mux
}

// NewActivityServiceHandler builds an HTTP handler for ActivityService. It
// returns the path to mount it on.
func NewActivityServiceHandler(svc *ActivityService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(api.ToggleFavoriteProcedure, connect.NewUnaryHandler(api.ToggleFavoriteProcedure, svc.ToggleFavorite, opts...))
	mux.Handle(api.SetAttendingProcedure, connect.NewUnaryHandler(api.SetAttendingProcedure, svc.SetAttending, opts...))
	mux.Handle(api.ListFavoritesProcedure, connect.NewUnaryHandler(api.ListFavoritesProcedure, svc.ListFavorites, opts...))
	mux.Handle(api.ListAttendingProcedure, connect.NewUnaryHandler(api.ListAttendingProcedure, svc.ListAttending, opts...))
	return "/" + api.ActivityServiceName + "/", mux
}
