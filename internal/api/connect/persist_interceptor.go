package connect

import (
	"context"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Saver persists the catalog.
type Saver interface {
	Save(ctx context.Context) error
}

// NewPersistInterceptor creates an interceptor that saves the catalog after
// every successful call to a mutating procedure. Failed calls are not saved.
func NewPersistInterceptor(saver Saver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)
			if err != nil {
				return resp, err
			}

			procedure := req.Spec().Procedure
			if !mutatingProcedures[procedure] {
				return resp, nil
			}

			if err := saver.Save(context.WithoutCancel(ctx)); err != nil {
				zlog.Error().Err(err).Msgf("failed to save catalog after %s", procedure)
				return nil, connect.NewError(connect.CodeInternal,
					errors.New("change applied but catalog could not be saved"))
			}
			return resp, nil
		}
	}
}
