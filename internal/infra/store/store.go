// Package store persists catalog snapshots between process runs.
package store

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/osa030/unqfy/internal/app/catalog"
	"github.com/osa030/unqfy/internal/infra/config"
)

// ErrNoState is returned by Load when nothing was saved under the name.
var ErrNoState = errors.New("no saved state")

// Store saves and loads whole catalog snapshots keyed by name.
type Store interface {
	Save(ctx context.Context, name string, s *catalog.Snapshot) error
	Load(ctx context.Context, name string) (*catalog.Snapshot, error)
	Close() error
}

// New creates the store selected by the storage configuration.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Path)
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, errors.Newf("unsupported storage driver: %s", cfg.Driver)
	}
}
