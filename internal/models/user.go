package models

import "strings"

// User represents a registered dancer.
//
// Identity fields and preferences are fixed at sign-up; there is no update
// path for them.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address.
	// Unique across users, compared case-insensitively.
	Email string `json:"email"`

	// Preferences holds the styles and search radius chosen at sign-up.
	Preferences Preferences `json:"preferences"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `json:"created_at"`
}

// Preferences are the discovery settings picked once at sign-up.
type Preferences struct {
	// Styles are dance style tags, e.g. "salsa", "bachata".
	Styles []string `json:"styles"`

	// RadiusKm is the search radius for nearby events.
	RadiusKm float64 `json:"radius_km"`
}

// DefaultPreferences is used when sign-up does not supply any.
func DefaultPreferences() Preferences {
	return Preferences{
		Styles:   []string{"salsa", "bachata"},
		RadiusKm: 25,
	}
}

// NewUser is the input for creating a user.
type NewUser struct {
	Name        string
	Email       string
	Preferences Preferences
}

// NormalizeEmail is the form emails are compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Preferences.Styles = append([]string(nil), u.Preferences.Styles...)
	return &c
}
