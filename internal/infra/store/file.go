package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/app/catalog"
)

// FileStore keeps one JSON document per state name inside a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name)+".json")
}

// Save writes the snapshot atomically: a temp file in the same directory is renamed over the target.
func (s *FileStore) Save(ctx context.Context, name string, snap *catalog.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(name)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return errors.Wrap(err, "failed to replace state file")
	}

	zlog.Debug().Msgf("saved catalog: path=%s artists=%d playlists=%d", s.path(name), len(snap.Artists), len(snap.Playlists))
	return nil
}

// Load reads the snapshot saved under name.
func (s *FileStore) Load(ctx context.Context, name string) (*catalog.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, errors.Wrap(err, "failed to read state file")
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot")
	}
	return &snap, nil
}

// Close is a no-op for file stores.
func (s *FileStore) Close() error {
	return nil
}
