// Package enrich provides external metadata lookups for the catalog.
package enrich

import (
	"context"

	"github.com/osa030/unqfy/internal/domain/artist"
)

// AlbumSource looks up the albums an artist released.
type AlbumSource interface {
	// Name returns the source name (used in config).
	Name() string
	// FetchAlbums returns the releases of the artist named artistName.
	FetchAlbums(ctx context.Context, artistName string) ([]artist.Release, error)
}

// LyricsSource looks up the lyrics of a track.
type LyricsSource interface {
	FetchLyrics(ctx context.Context, trackName string) (string, error)
}
