package api

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/groovematch/internal/apperr"
)

// ToConnectError maps a domain error onto a Connect error for the wire.
func ToConnectError(err error) error {
	if err == nil {
		return nil
	}
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce
	}
	return connect.NewError(codeForKind(apperr.KindOf(err)), err)
}

func codeForKind(k apperr.Kind) connect.Code {
	switch k {
	case apperr.NotFound:
		return connect.CodeNotFound
	case apperr.Conflict:
		return connect.CodeAlreadyExists
	case apperr.TransientNetwork:
		return connect.CodeUnavailable
	case apperr.PersistenceDegraded:
		return connect.CodeDataLoss
	case apperr.InvalidArgument:
		return connect.CodeInvalidArgument
	default:
		return connect.CodeInternal
	}
}

// FromConnectError maps an error returned by a client call back to a domain
// error kind. An unauthenticated session is reported as NotFound, the same
// as an unknown token in the local store.
func FromConnectError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var ce *connect.Error
	if !errors.As(err, &ce) {
		return apperr.Wrap(apperr.TransientNetwork, op, err)
	}

	var kind apperr.Kind
	switch ce.Code() {
	case connect.CodeNotFound, connect.CodeUnauthenticated:
		kind = apperr.NotFound
	case connect.CodeAlreadyExists:
		kind = apperr.Conflict
	case connect.CodeUnavailable, connect.CodeDeadlineExceeded, connect.CodeCanceled:
		kind = apperr.TransientNetwork
	case connect.CodeDataLoss:
		kind = apperr.PersistenceDegraded
	case connect.CodeInvalidArgument:
		kind = apperr.InvalidArgument
	default:
		kind = apperr.Internal
	}
	return &apperr.Error{Kind: kind, Op: op, Msg: ce.Message()}
}
