package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain error", errors.New("boom"), Internal},
		{"not found", New(NotFound, "docstore.GetSession", "no session"), NotFound},
		{"wrapped conflict", fmt.Errorf("sign up: %w", New(Conflict, "", "email taken")), Conflict},
		{"wrap helper", Wrap(TransientNetwork, "netsim", errors.New("dropped")), TransientNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSentinel(t *testing.T) {
	err := fmt.Errorf("restore: %w", New(NotFound, "docstore.GetSession", "unknown token"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrConflict) {
		t.Error("did not expect errors.Is(err, ErrConflict)")
	}
	if IsKind(nil, NotFound) {
		t.Error("nil error must not match any kind")
	}
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(PersistenceDegraded, "docstore.save", errors.New("disk full"))
	if got, want := err.Error(), "docstore.save: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if Wrap(Internal, "op", nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}
