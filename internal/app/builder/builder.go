// Package builder selects playlist tracks under a duration budget.
package builder

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/domain/playlist"
	"github.com/osa030/unqfy/internal/domain/track"
)

// Select walks candidates once, in order, and keeps every track that still fits
// in maxDuration given the tracks kept so far. Earlier tracks win; nothing is
// reordered or revisited.
func Select(candidates []*track.Track, maxDuration int) []*track.Track {
	selected := make([]*track.Track, 0)
	if maxDuration <= 0 {
		return selected
	}

	accumulated := 0
	for _, t := range candidates {
		if accumulated+t.Duration <= maxDuration {
			selected = append(selected, t)
			accumulated += t.Duration
		}
	}
	return selected
}

// Build creates a playlist named name from the candidates that fit maxDuration.
func Build(name string, candidates []*track.Track, maxDuration int) *playlist.Playlist {
	p := playlist.New(name, maxDuration)
	p.Tracks = append(p.Tracks, Select(candidates, maxDuration)...)

	zlog.Debug().Msgf("built playlist: name=%s candidates=%d selected=%d duration=%d max=%d",
		name, len(candidates), len(p.Tracks), p.Duration(), maxDuration)
	return p
}
