// Package track provides the Track domain entity.
package track

import "github.com/google/uuid"

// Track represents a single song owned by an album.
type Track struct {
	ID       string // Stable identifier (UUID), used by playlists and persistence
	Name     string // Track name
	Duration int    // Duration in seconds
	Genre    string // Single genre
	Lyrics   string // Cached lyrics, empty until fetched
}

// New creates a track with a fresh stable ID.
func New(name string, duration int, genre string) *Track {
	return &Track{
		ID:       uuid.New().String(),
		Name:     name,
		Duration: duration,
		Genre:    genre,
	}
}

// HasLyrics reports whether lyrics were already cached for the track.
func (t *Track) HasLyrics() bool {
	return t.Lyrics != ""
}

// TotalDuration returns the summed duration of the given tracks in seconds.
func TotalDuration(tracks []*Track) int {
	total := 0
	for _, t := range tracks {
		total += t.Duration
	}
	return total
}
