// Package artist provides the Artist and Album domain entities.
package artist

import "github.com/osa030/unqfy/internal/domain/track"

// Artist represents a performer. Owns its albums exclusively.
type Artist struct {
	ID      int      // Repository-assigned identifier
	Name    string   // Artist name (not unique)
	Country string   // Country of origin
	Albums  []*Album // Albums in insertion order
}

// Album represents a release owned by exactly one artist.
type Album struct {
	Name   string         // Album name, lookup key across the catalog
	Year   int            // Release year
	Tracks []*track.Track // Tracks in insertion order
}

// New creates an artist without identity. The repository assigns the ID.
func New(name, country string) *Artist {
	return &Artist{
		Name:    name,
		Country: country,
		Albums:  make([]*Album, 0),
	}
}

// NewAlbum creates an empty album.
func NewAlbum(name string, year int) *Album {
	return &Album{
		Name:   name,
		Year:   year,
		Tracks: make([]*track.Track, 0),
	}
}

// AddAlbum appends an album to the artist.
func (a *Artist) AddAlbum(album *Album) {
	a.Albums = append(a.Albums, album)
}

// Tracks returns every track of every album, album-then-track order.
func (a *Artist) Tracks() []*track.Track {
	tracks := make([]*track.Track, 0)
	for _, album := range a.Albums {
		tracks = append(tracks, album.Tracks...)
	}
	return tracks
}

// AddTrack appends a track to the album.
func (al *Album) AddTrack(t *track.Track) {
	al.Tracks = append(al.Tracks, t)
}
