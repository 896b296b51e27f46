package models

// Session binds an opaque bearer token to a user.
// A user may hold any number of sessions at once.
type Session struct {
	Token  string
	UserID string
}
