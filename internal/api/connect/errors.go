package connect

import (
	"context"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"

	"github.com/osa030/unqfy/internal/app/catalog"
	"github.com/osa030/unqfy/internal/app/unqfy"
)

// toConnectError maps a use case error to a Connect error carrying the matching code.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}

	var code connect.Code
	switch {
	case errors.Is(err, catalog.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, catalog.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, catalog.ErrConflict):
		code = connect.CodeAlreadyExists
	case errors.Is(err, unqfy.ErrUnavailable):
		code = connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		code = connect.CodeInternal
	}
	return connect.NewError(code, errors.New(err.Error()))
}
