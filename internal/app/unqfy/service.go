// Package unqfy provides the catalog use cases.
package unqfy

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/app/builder"
	"github.com/osa030/unqfy/internal/app/catalog"
	"github.com/osa030/unqfy/internal/app/enrich"
	"github.com/osa030/unqfy/internal/domain/artist"
	"github.com/osa030/unqfy/internal/domain/playlist"
	"github.com/osa030/unqfy/internal/domain/track"
	"github.com/osa030/unqfy/internal/infra/store"
)

// ErrUnavailable is returned when an enrichment collaborator is not configured.
var ErrUnavailable = errors.New("collaborator not configured")

// AddArtistParams are the inputs of AddArtist.
type AddArtistParams struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country"`
}

// AddAlbumParams are the inputs of AddAlbum.
type AddAlbumParams struct {
	Name string `json:"name" validate:"required"`
	Year int    `json:"year" validate:"gte=0"`
}

// AddTrackParams are the inputs of AddTrack.
type AddTrackParams struct {
	Name     string `json:"name" validate:"required"`
	Duration int    `json:"duration" validate:"gt=0"`
	Genre    string `json:"genre"`
}

// Dependencies are the optional collaborators of the service.
type Dependencies struct {
	Albums    enrich.AlbumSource  // nil disables PopulateAlbumsForArtist
	Lyrics    enrich.LyricsSource // nil disables lyric lookups
	Store     store.Store         // nil disables Save
	StateName string
}

// Service orchestrates the repository, the playlist builder and the collaborators.
type Service struct {
	repo      *catalog.Repository
	albums    enrich.AlbumSource
	lyrics    enrich.LyricsSource
	store     store.Store
	stateName string
	validate  *validator.Validate
}

// NewService creates a service over repo.
func NewService(repo *catalog.Repository, deps Dependencies) *Service {
	if repo == nil {
		repo = catalog.NewRepository()
	}
	return &Service{
		repo:      repo,
		albums:    deps.Albums,
		lyrics:    deps.Lyrics,
		store:     deps.Store,
		stateName: deps.StateName,
		validate:  validator.New(),
	}
}

// Open restores the catalog saved under deps.StateName, or starts empty if nothing was saved.
func Open(ctx context.Context, deps Dependencies) (*Service, error) {
	if deps.Store == nil {
		return NewService(nil, deps), nil
	}

	snap, err := deps.Store.Load(ctx, deps.StateName)
	if err != nil {
		if errors.Is(err, store.ErrNoState) {
			zlog.Info().Msgf("no saved catalog, starting empty: state=%s", deps.StateName)
			return NewService(nil, deps), nil
		}
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	repo := catalog.Restore(snap)
	zlog.Info().Msgf("catalog loaded: state=%s artists=%d playlists=%d",
		deps.StateName, len(snap.Artists), len(snap.Playlists))
	return NewService(repo, deps), nil
}

// Repository returns the underlying repository.
func (s *Service) Repository() *catalog.Repository {
	return s.repo
}

// Save persists the whole catalog.
func (s *Service) Save(ctx context.Context) error {
	if s.store == nil {
		return errors.Wrap(ErrUnavailable, "no store configured")
	}
	if err := s.store.Save(ctx, s.stateName, s.repo.Snapshot()); err != nil {
		return errors.Wrap(err, "failed to save catalog")
	}
	return nil
}

// check validates params, marking failures as validation errors.
func (s *Service) check(what string, params any) error {
	if err := s.validate.Struct(params); err != nil {
		return errors.Mark(errors.Wrapf(err, "invalid %s", what), catalog.ErrValidation)
	}
	return nil
}

// AddArtist creates an artist and assigns it an ID.
func (s *Service) AddArtist(params AddArtistParams) (*artist.Artist, error) {
	if err := s.check("artist", params); err != nil {
		return nil, err
	}

	a := artist.New(params.Name, params.Country)
	s.repo.AddArtist(a)
	zlog.Info().Msgf("artist added: id=%d name=%s", a.ID, a.Name)
	return a, nil
}

// AddAlbum appends an album to the first artist named artistName.
func (s *Service) AddAlbum(artistName string, params AddAlbumParams) (*artist.Album, error) {
	a, err := s.GetArtistByName(artistName)
	if err != nil {
		return nil, err
	}
	if err := s.check("album", params); err != nil {
		return nil, err
	}

	album := artist.NewAlbum(params.Name, params.Year)
	s.repo.Mutate(func() {
		a.AddAlbum(album)
	})
	zlog.Info().Msgf("album added: artist=%s album=%s", a.Name, album.Name)
	return album, nil
}

// AddTrack appends a track to the first album named albumName, across all artists.
func (s *Service) AddTrack(albumName string, params AddTrackParams) (*track.Track, error) {
	album, err := s.GetAlbumByName(albumName)
	if err != nil {
		return nil, err
	}
	if err := s.check("track", params); err != nil {
		return nil, err
	}

	t := track.New(params.Name, params.Duration, params.Genre)
	s.repo.Mutate(func() {
		album.AddTrack(t)
	})
	zlog.Info().Msgf("track added: album=%s track=%s id=%s", album.Name, t.Name, t.ID)
	return t, nil
}

// GetArtists returns every artist.
func (s *Service) GetArtists() []*artist.Artist {
	return s.repo.Artists()
}

// GetAlbums returns every album.
func (s *Service) GetAlbums() []*artist.Album {
	return s.repo.Albums()
}

// GetTracks returns every track.
func (s *Service) GetTracks() []*track.Track {
	return s.repo.Tracks()
}

// GetPlaylists returns every playlist.
func (s *Service) GetPlaylists() []*playlist.Playlist {
	return s.repo.Playlists()
}

// GetArtistByName returns the first artist named name.
func (s *Service) GetArtistByName(name string) (*artist.Artist, error) {
	for _, a := range s.repo.Artists() {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, catalog.NotFoundf("artist %q not found", name)
}

// GetArtistByID returns the artist with the given ID.
func (s *Service) GetArtistByID(id int) (*artist.Artist, error) {
	a, ok := s.repo.FindArtistByID(id)
	if !ok {
		return nil, catalog.NotFoundf("artist %d not found", id)
	}
	return a, nil
}

// GetAlbumByName returns the first album named name.
func (s *Service) GetAlbumByName(name string) (*artist.Album, error) {
	for _, al := range s.repo.Albums() {
		if al.Name == name {
			return al, nil
		}
	}
	return nil, catalog.NotFoundf("album %q not found", name)
}

// GetTrackByName returns the first track named name.
func (s *Service) GetTrackByName(name string) (*track.Track, error) {
	for _, t := range s.repo.Tracks() {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, catalog.NotFoundf("track %q not found", name)
}

// GetPlaylistByName returns the first playlist named name.
func (s *Service) GetPlaylistByName(name string) (*playlist.Playlist, error) {
	for _, p := range s.repo.Playlists() {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, catalog.NotFoundf("playlist %q not found", name)
}

// GetTracksMatchingGenres returns every track whose genre is one of genres.
func (s *Service) GetTracksMatchingGenres(genres []string) []*track.Track {
	return s.repo.FilterTracksBy(catalog.FieldGenre, genres)
}

// GetTracksMatchingArtist returns the tracks of the first artist named artistName.
func (s *Service) GetTracksMatchingArtist(artistName string) ([]*track.Track, error) {
	a, err := s.GetArtistByName(artistName)
	if err != nil {
		return nil, err
	}

	var tracks []*track.Track
	s.repo.View(func() {
		tracks = a.Tracks()
	})
	return tracks, nil
}

// AddPlaylist builds a playlist from the tracks matching genres that fit maxDuration.
// An empty candidate set yields an empty playlist.
func (s *Service) AddPlaylist(name string, genres []string, maxDuration int) *playlist.Playlist {
	candidates := s.GetTracksMatchingGenres(genres)
	p := builder.Build(name, candidates, maxDuration)
	s.repo.AddPlaylist(p)

	zlog.Info().Msgf("playlist added: name=%s genres=%v tracks=%d duration=%d/%d",
		p.Name, genres, len(p.Tracks), p.Duration(), maxDuration)
	return p
}

// RemoveArtist removes the artist with the given ID together with its albums and tracks.
func (s *Service) RemoveArtist(id int) error {
	if !s.repo.RemoveArtist(id) {
		return catalog.NotFoundf("artist %d not found", id)
	}
	zlog.Info().Msgf("artist removed: id=%d", id)
	return nil
}
