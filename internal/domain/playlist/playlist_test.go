package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/unqfy/internal/domain/track"
)

func TestPlaylist_TrackIDs(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []*track.Track
		expected []string
	}{
		{
			name:     "empty playlist",
			tracks:   []*track.Track{},
			expected: []string{},
		},
		{
			name:     "single track",
			tracks:   []*track.Track{{ID: "track-1"}},
			expected: []string{"track-1"},
		},
		{
			name: "multiple tracks",
			tracks: []*track.Track{
				{ID: "track-1"},
				{ID: "track-2"},
				{ID: "track-3"},
			},
			expected: []string{"track-1", "track-2", "track-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Name: "p", Tracks: tt.tracks}
			assert.Equal(t, tt.expected, p.TrackIDs())
		})
	}
}

func TestPlaylist_Duration(t *testing.T) {
	p := New("Road trip", 1000)
	assert.Equal(t, 0, p.Duration())

	p.Tracks = append(p.Tracks,
		&track.Track{ID: "track-1", Duration: 135},
		&track.Track{ID: "track-2", Duration: 225},
	)
	assert.Equal(t, 360, p.Duration())
}

func TestPlaylist_HasTrack(t *testing.T) {
	in := &track.Track{ID: "in"}
	out := &track.Track{ID: "out"}
	p := &Playlist{Name: "p", Tracks: []*track.Track{in}}

	assert.True(t, p.HasTrack(in))
	assert.False(t, p.HasTrack(out))
}

func TestPlaylist_RemoveTracks(t *testing.T) {
	t1 := &track.Track{ID: "t1", Duration: 100}
	t2 := &track.Track{ID: "t2", Duration: 100}
	t3 := &track.Track{ID: "t3", Duration: 100}
	p := &Playlist{Name: "p", Tracks: []*track.Track{t1, t2, t3}}

	removed := p.RemoveTracks(map[string]bool{"t2": true, "missing": true})

	assert.Equal(t, 1, removed)
	assert.Equal(t, []*track.Track{t1, t3}, p.Tracks)
	assert.Equal(t, 200, p.Duration())
}
