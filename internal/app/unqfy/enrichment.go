package unqfy

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/domain/artist"
)

// PopulateAlbumsForArtist fetches the artist's albums from the album source and adds
// the ones the artist does not have yet. The catalog is only touched after the lookup
// succeeds; a failed or abandoned lookup leaves it unchanged.
func (s *Service) PopulateAlbumsForArtist(ctx context.Context, artistName string) ([]*artist.Album, error) {
	a, err := s.GetArtistByName(artistName)
	if err != nil {
		return nil, err
	}
	if s.albums == nil {
		return nil, errors.Wrap(ErrUnavailable, "no album source configured")
	}

	releases, err := s.albums.FetchAlbums(ctx, artistName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch albums for %q", artistName)
	}

	added := make([]*artist.Album, 0, len(releases))
	s.repo.Mutate(func() {
		existing := make(map[string]bool, len(a.Albums))
		for _, al := range a.Albums {
			existing[al.Name] = true
		}
		for _, r := range releases {
			if existing[r.Name] {
				continue
			}
			existing[r.Name] = true
			album := artist.NewAlbum(r.Name, r.Year())
			a.AddAlbum(album)
			added = append(added, album)
		}
	})

	zlog.Info().Msgf("albums populated: artist=%s fetched=%d added=%d", artistName, len(releases), len(added))
	return added, nil
}

// GetLyricsForTrack returns the lyrics of the first track named trackName, fetching
// and caching them on the track when not cached yet. Failures are not cached.
func (s *Service) GetLyricsForTrack(ctx context.Context, trackName string) (string, error) {
	t, err := s.GetTrackByName(trackName)
	if err != nil {
		return "", err
	}

	var cached string
	s.repo.View(func() {
		cached = t.Lyrics
	})
	if cached != "" {
		return cached, nil
	}

	if s.lyrics == nil {
		return "", errors.Wrap(ErrUnavailable, "no lyrics source configured")
	}

	lyrics, err := s.lyrics.FetchLyrics(ctx, trackName)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch lyrics for %q", trackName)
	}

	s.repo.Mutate(func() {
		t.Lyrics = lyrics
	})
	zlog.Info().Msgf("lyrics cached: track=%s id=%s", t.Name, t.ID)
	return lyrics, nil
}
