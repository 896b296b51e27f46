package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groovematch/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// TokenKey is the context key for storing the bearer session token.
	TokenKey contextKey = "session_token"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found. It is only set when tokens are signed.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetToken extracts the session token from the context.
// Returns empty string if not found.
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}

// bearerToken parses "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireSession returns a middleware that requires a bearer session token.
// When jwtManager is non-nil the token must also carry a valid signature, and
// its user ID is added to the context. Whether the session is still open is
// decided by the handler's store lookup.
func RequireSession(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			if jwtManager != nil {
				claims, err := jwtManager.Validate(token)
				if err != nil {
					return nil, connect.NewError(connect.CodeUnauthenticated, err)
				}
				ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			}

			ctx = context.WithValue(ctx, TokenKey, token)
			return next(ctx, req)
		}
	}
}
