package enrich

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/domain/artist"
)

// ErrNoSources is returned by an empty chain.
var ErrNoSources = errors.New("no album sources configured")

// SourceChain tries album sources in order. The first source returning
// at least one release wins.
type SourceChain struct {
	sources []AlbumSource
}

// NewSourceChain creates a new source chain.
func NewSourceChain(sources ...AlbumSource) *SourceChain {
	return &SourceChain{
		sources: sources,
	}
}

// FetchAlbums queries the sources in order.
// Returns an empty result when every source answered with nothing, and an error
// when every source failed.
func (c *SourceChain) FetchAlbums(ctx context.Context, artistName string) ([]artist.Release, error) {
	if len(c.sources) == 0 {
		return nil, ErrNoSources
	}

	var errs error
	failures := 0
	for i, src := range c.sources {
		zlog.Debug().Msgf("trying album source: index=%d total=%d source=%s artist=%s",
			i+1, len(c.sources), src.Name(), artistName)

		releases, err := src.FetchAlbums(ctx, artistName)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrap(ctx.Err(), "album lookup abandoned")
			}
			zlog.Warn().Msgf("album source failed, trying next: source=%s error=%v", src.Name(), err)
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "source %s", src.Name()))
			failures++
			continue
		}

		if len(releases) == 0 {
			zlog.Debug().Msgf("album source returned no releases: source=%s", src.Name())
			continue
		}

		zlog.Info().Msgf("album source returned releases: source=%s artist=%s count=%d",
			src.Name(), artistName, len(releases))
		return releases, nil
	}

	if failures == len(c.sources) {
		return nil, errors.Wrap(errs, "all album sources failed")
	}
	return []artist.Release{}, nil
}

// Name returns the chain name.
func (c *SourceChain) Name() string {
	return "source_chain"
}

// Len returns the number of sources in the chain.
func (c *SourceChain) Len() int {
	return len(c.sources)
}
