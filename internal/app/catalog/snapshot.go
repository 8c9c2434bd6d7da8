package catalog

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/domain/artist"
	"github.com/osa030/unqfy/internal/domain/playlist"
	"github.com/osa030/unqfy/internal/domain/track"
)

// Snapshot is the serializable form of a repository.
// Playlists reference tracks by ID so shared tracks survive a round trip as shared.
type Snapshot struct {
	NextID    int              `json:"next_id"`
	Artists   []ArtistRecord   `json:"artists"`
	Playlists []PlaylistRecord `json:"playlists"`
}

// ArtistRecord is the serializable form of an artist.
type ArtistRecord struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Country string        `json:"country"`
	Albums  []AlbumRecord `json:"albums"`
}

// AlbumRecord is the serializable form of an album.
type AlbumRecord struct {
	Name   string        `json:"name"`
	Year   int           `json:"year"`
	Tracks []TrackRecord `json:"tracks"`
}

// TrackRecord is the serializable form of a track.
type TrackRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Genre    string `json:"genre"`
	Lyrics   string `json:"lyrics,omitempty"`
}

// PlaylistRecord is the serializable form of a playlist.
type PlaylistRecord struct {
	Name        string   `json:"name"`
	MaxDuration int      `json:"max_duration"`
	TrackIDs    []string `json:"track_ids"`
}

// Snapshot captures the full repository state.
func (r *Repository) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := &Snapshot{
		NextID:    r.nextID,
		Artists:   make([]ArtistRecord, 0, len(r.artists)),
		Playlists: make([]PlaylistRecord, 0, len(r.playlists)),
	}
	for _, a := range r.artists {
		ar := ArtistRecord{
			ID:      a.ID,
			Name:    a.Name,
			Country: a.Country,
			Albums:  make([]AlbumRecord, 0, len(a.Albums)),
		}
		for _, al := range a.Albums {
			alr := AlbumRecord{
				Name:   al.Name,
				Year:   al.Year,
				Tracks: make([]TrackRecord, 0, len(al.Tracks)),
			}
			for _, t := range al.Tracks {
				alr.Tracks = append(alr.Tracks, TrackRecord{
					ID:       t.ID,
					Name:     t.Name,
					Duration: t.Duration,
					Genre:    t.Genre,
					Lyrics:   t.Lyrics,
				})
			}
			ar.Albums = append(ar.Albums, alr)
		}
		s.Artists = append(s.Artists, ar)
	}
	for _, p := range r.playlists {
		s.Playlists = append(s.Playlists, PlaylistRecord{
			Name:        p.Name,
			MaxDuration: p.MaxDuration,
			TrackIDs:    p.TrackIDs(),
		})
	}
	return s
}

// Restore rebuilds a repository from a snapshot. Playlist entries are resolved to the
// restored track instances; IDs that no longer resolve are dropped.
func Restore(s *Snapshot) *Repository {
	r := NewRepository()
	if s == nil {
		return r
	}

	r.nextID = s.NextID
	byID := make(map[string]*track.Track)

	for _, ar := range s.Artists {
		a := artist.New(ar.Name, ar.Country)
		a.ID = ar.ID
		for _, alr := range ar.Albums {
			al := artist.NewAlbum(alr.Name, alr.Year)
			for _, tr := range alr.Tracks {
				t := &track.Track{
					ID:       tr.ID,
					Name:     tr.Name,
					Duration: tr.Duration,
					Genre:    tr.Genre,
					Lyrics:   tr.Lyrics,
				}
				al.AddTrack(t)
				byID[t.ID] = t
			}
			a.AddAlbum(al)
		}
		r.artists = append(r.artists, a)
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}

	for _, pr := range s.Playlists {
		p := playlist.New(pr.Name, pr.MaxDuration)
		for _, id := range pr.TrackIDs {
			t, ok := byID[id]
			if !ok {
				zlog.Warn().Msgf("dropping unresolved playlist track: playlist=%s track_id=%s", pr.Name, id)
				continue
			}
			p.Tracks = append(p.Tracks, t)
		}
		r.playlists = append(r.playlists, p)
	}

	return r
}
