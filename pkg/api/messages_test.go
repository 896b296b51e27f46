package api

import (
	"testing"

	"github.com/mmynk/groovematch/internal/models"
)

func TestUserWireConversion(t *testing.T) {
	in := &models.User{
		ID:          "u1",
		Name:        "Ana",
		Email:       "ana@x.com",
		Preferences: models.Preferences{Styles: []string{"kizomba"}, RadiusKm: 12.5},
		CreatedAt:   1760558400,
	}

	out := UserFromWire(UserToWire(in))

	if out.ID != in.ID || out.Name != in.Name || out.Email != in.Email {
		t.Errorf("identity fields = %+v, want %+v", out, in)
	}
	if out.CreatedAt != in.CreatedAt {
		t.Errorf("CreatedAt = %d, want %d", out.CreatedAt, in.CreatedAt)
	}
	if out.Preferences.RadiusKm != 12.5 || len(out.Preferences.Styles) != 1 {
		t.Errorf("Preferences = %+v", out.Preferences)
	}
	if UserToWire(nil) != nil || UserFromWire(nil) != nil {
		t.Error("nil users must convert to nil")
	}
}
