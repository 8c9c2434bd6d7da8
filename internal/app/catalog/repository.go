// Package catalog provides the repository owning every artist, album, track and playlist.
package catalog

import (
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/domain/artist"
	"github.com/osa030/unqfy/internal/domain/playlist"
	"github.com/osa030/unqfy/internal/domain/track"
)

// TrackField names a track attribute that can be filtered on.
type TrackField int

const (
	FieldGenre TrackField = iota
	FieldName
)

// String returns the field name.
func (f TrackField) String() string {
	switch f {
	case FieldGenre:
		return "genre"
	case FieldName:
		return "name"
	default:
		return "unknown"
	}
}

// value returns the attribute of t selected by f.
func (f TrackField) value(t *track.Track) (string, bool) {
	switch f {
	case FieldGenre:
		return t.Genre, true
	case FieldName:
		return t.Name, true
	default:
		return "", false
	}
}

// Repository holds the catalog with thread-safe access.
// The ID counter is owned by the instance, never reset and never reused.
type Repository struct {
	mu        sync.RWMutex
	artists   []*artist.Artist
	playlists []*playlist.Playlist
	nextID    int
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		artists:   make([]*artist.Artist, 0),
		playlists: make([]*playlist.Playlist, 0),
	}
}

// AddArtist assigns a fresh ID to a and appends it. Duplicate names are allowed.
func (r *Repository) AddArtist(a *artist.Artist) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	r.artists = append(r.artists, a)
}

// FindArtistByID returns the artist with the given ID.
func (r *Repository) FindArtistByID(id int) (*artist.Artist, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.artists {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// RemoveArtist removes the artist with its albums and tracks, and prunes the removed
// tracks from every playlist. Returns false if no artist has the ID.
func (r *Repository) RemoveArtist(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, a := range r.artists {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	removed := r.artists[idx]
	r.artists = append(r.artists[:idx:idx], r.artists[idx+1:]...)

	orphaned := make(map[string]bool)
	for _, t := range removed.Tracks() {
		orphaned[t.ID] = true
	}
	if len(orphaned) > 0 {
		for _, p := range r.playlists {
			if n := p.RemoveTracks(orphaned); n > 0 {
				zlog.Debug().Msgf("pruned tracks from playlist: playlist=%s count=%d", p.Name, n)
			}
		}
	}
	return true
}

// Artists returns all artists in insertion order.
func (r *Repository) Artists() []*artist.Artist {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artists := make([]*artist.Artist, len(r.artists))
	copy(artists, r.artists)
	return artists
}

// Albums returns every album, artist-then-album order.
func (r *Repository) Albums() []*artist.Album {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.albums()
}

func (r *Repository) albums() []*artist.Album {
	albums := make([]*artist.Album, 0)
	for _, a := range r.artists {
		albums = append(albums, a.Albums...)
	}
	return albums
}

// Tracks returns every track, album-then-track order.
func (r *Repository) Tracks() []*track.Track {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracks()
}

func (r *Repository) tracks() []*track.Track {
	tracks := make([]*track.Track, 0)
	for _, al := range r.albums() {
		tracks = append(tracks, al.Tracks...)
	}
	return tracks
}

// FilterTracksBy returns every track whose field value is one of values, in catalog order.
func (r *Repository) FilterTracksBy(field TrackField, values []string) []*track.Track {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*track.Track, 0)
	for _, t := range r.tracks() {
		v, ok := field.value(t)
		if ok && allowed[v] {
			matched = append(matched, t)
		}
	}
	return matched
}

// AlbumsForArtist returns the albums of every artist named name.
func (r *Repository) AlbumsForArtist(name string) []*artist.Album {
	r.mu.RLock()
	defer r.mu.RUnlock()

	albums := make([]*artist.Album, 0)
	for _, a := range r.artists {
		if a.Name == name {
			albums = append(albums, a.Albums...)
		}
	}
	return albums
}

// AddPlaylist stores a playlist.
func (r *Repository) AddPlaylist(p *playlist.Playlist) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playlists = append(r.playlists, p)
}

// Playlists returns all playlists in insertion order.
func (r *Repository) Playlists() []*playlist.Playlist {
	r.mu.RLock()
	defer r.mu.RUnlock()

	playlists := make([]*playlist.Playlist, len(r.playlists))
	copy(playlists, r.playlists)
	return playlists
}

// NextID returns the ID the next added artist will receive.
func (r *Repository) NextID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nextID
}

// View runs fn while holding the read lock. Use it to read entities returned by
// the repository while other callers may mutate them.
func (r *Repository) View(fn func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn()
}

// Mutate runs fn while holding the write lock. Use it for in-place changes to
// entities returned by the repository (appending albums or tracks, caching lyrics).
func (r *Repository) Mutate(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn()
}
