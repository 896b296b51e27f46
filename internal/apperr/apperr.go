// Package apperr defines the error kinds shared by the store, the backends and
// the auth flow. Callers branch on Kind, never on message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by how callers are expected to recover from it.
type Kind int

const (
	// Internal is any failure that does not fit another kind.
	Internal Kind = iota
	// NotFound covers email lookup misses and unknown session tokens.
	NotFound
	// Conflict is returned when a sign-up reuses an existing email.
	Conflict
	// TransientNetwork is an injected or real transport failure. Not retried.
	TransientNetwork
	// PersistenceDegraded marks a durable read or write that did not happen.
	PersistenceDegraded
	// InvalidArgument is returned for empty or malformed input.
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case TransientNetwork:
		return "transient_network"
	case PersistenceDegraded:
		return "persistence_degraded"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// Error carries a Kind alongside the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error of the same Kind with no
// message, so errors.Is(err, apperr.ErrNotFound) works across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound            = &Error{Kind: NotFound}
	ErrConflict            = &Error{Kind: Conflict}
	ErrTransientNetwork    = &Error{Kind: TransientNetwork}
	ErrPersistenceDegraded = &Error{Kind: PersistenceDegraded}
	ErrInvalidArgument     = &Error{Kind: InvalidArgument}
)

// New returns an error of the given kind.
func New(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to err. A nil err stays nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
