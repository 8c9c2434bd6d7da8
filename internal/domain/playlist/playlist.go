// Package playlist provides the Playlist domain entity.
package playlist

import "github.com/osa030/unqfy/internal/domain/track"

// Playlist represents a generated selection of catalog tracks.
// Tracks are shared with the catalog and never mutated through the playlist.
type Playlist struct {
	Name        string         // Playlist name
	MaxDuration int            // Duration budget in seconds
	Tracks      []*track.Track // Selected tracks, in selection order
}

// New creates an empty playlist.
func New(name string, maxDuration int) *Playlist {
	return &Playlist{
		Name:        name,
		MaxDuration: maxDuration,
		Tracks:      make([]*track.Track, 0),
	}
}

// TrackIDs returns all track IDs in the playlist.
func (p *Playlist) TrackIDs() []string {
	ids := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// Duration returns the total duration of all tracks in seconds.
func (p *Playlist) Duration() int {
	return track.TotalDuration(p.Tracks)
}

// HasTrack reports whether the given track is part of the playlist.
func (p *Playlist) HasTrack(t *track.Track) bool {
	for _, pt := range p.Tracks {
		if pt.ID == t.ID {
			return true
		}
	}
	return false
}

// RemoveTracks drops every track whose ID is in ids. Returns the number removed.
func (p *Playlist) RemoveTracks(ids map[string]bool) int {
	kept := p.Tracks[:0]
	removed := 0
	for _, t := range p.Tracks {
		if ids[t.ID] {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	p.Tracks = kept
	return removed
}
