package connect

import (
	"github.com/osa030/unqfy/internal/domain/artist"
	"github.com/osa030/unqfy/internal/domain/playlist"
	"github.com/osa030/unqfy/internal/domain/track"
)

// ArtistMessage is the wire form of an artist.
type ArtistMessage struct {
	ID      int            `json:"id"`
	Name    string         `json:"name"`
	Country string         `json:"country"`
	Albums  []AlbumMessage `json:"albums"`
}

// AlbumMessage is the wire form of an album.
type AlbumMessage struct {
	Name   string         `json:"name"`
	Year   int            `json:"year"`
	Tracks []TrackMessage `json:"tracks"`
}

// TrackMessage is the wire form of a track.
type TrackMessage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Duration  int    `json:"duration"`
	Genre     string `json:"genre"`
	HasLyrics bool   `json:"has_lyrics"`
}

// PlaylistMessage is the wire form of a playlist.
type PlaylistMessage struct {
	Name        string         `json:"name"`
	MaxDuration int            `json:"max_duration"`
	Duration    int            `json:"duration"`
	Tracks      []TrackMessage `json:"tracks"`
}

type AddArtistRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type AddAlbumRequest struct {
	Artist string `json:"artist"`
	Name   string `json:"name"`
	Year   int    `json:"year"`
}

type AddTrackRequest struct {
	Album    string `json:"album"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Genre    string `json:"genre"`
}

// GetArtistRequest selects an artist by ID when set, otherwise by name.
type GetArtistRequest struct {
	ID   *int   `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type ListArtistsRequest struct{}

type ListArtistsResponse struct {
	Artists []ArtistMessage `json:"artists"`
}

type GetAlbumRequest struct {
	Name string `json:"name"`
}

type GetTrackRequest struct {
	Name string `json:"name"`
}

// ListTracksRequest filters by artist when Artist is set, otherwise by genres.
type ListTracksRequest struct {
	Artist string   `json:"artist,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

type ListTracksResponse struct {
	Tracks []TrackMessage `json:"tracks"`
}

type AddPlaylistRequest struct {
	Name        string   `json:"name"`
	Genres      []string `json:"genres"`
	MaxDuration int      `json:"max_duration"`
}

type GetPlaylistRequest struct {
	Name string `json:"name"`
}

type RemoveArtistRequest struct {
	ID int `json:"id"`
}

type RemoveArtistResponse struct{}

type PopulateAlbumsRequest struct {
	Artist string `json:"artist"`
}

type PopulateAlbumsResponse struct {
	Albums []AlbumMessage `json:"albums"`
}

type GetLyricsRequest struct {
	Track string `json:"track"`
}

type GetLyricsResponse struct {
	Track  string `json:"track"`
	Lyrics string `json:"lyrics"`
}

func toTrackMessage(t *track.Track) TrackMessage {
	return TrackMessage{
		ID:        t.ID,
		Name:      t.Name,
		Duration:  t.Duration,
		Genre:     t.Genre,
		HasLyrics: t.HasLyrics(),
	}
}

func toTrackMessages(tracks []*track.Track) []TrackMessage {
	out := make([]TrackMessage, len(tracks))
	for i, t := range tracks {
		out[i] = toTrackMessage(t)
	}
	return out
}

func toAlbumMessage(al *artist.Album) AlbumMessage {
	return AlbumMessage{
		Name:   al.Name,
		Year:   al.Year,
		Tracks: toTrackMessages(al.Tracks),
	}
}

func toAlbumMessages(albums []*artist.Album) []AlbumMessage {
	out := make([]AlbumMessage, len(albums))
	for i, al := range albums {
		out[i] = toAlbumMessage(al)
	}
	return out
}

func toArtistMessage(a *artist.Artist) ArtistMessage {
	return ArtistMessage{
		ID:      a.ID,
		Name:    a.Name,
		Country: a.Country,
		Albums:  toAlbumMessages(a.Albums),
	}
}

func toPlaylistMessage(p *playlist.Playlist) PlaylistMessage {
	return PlaylistMessage{
		Name:        p.Name,
		MaxDuration: p.MaxDuration,
		Duration:    p.Duration(),
		Tracks:      toTrackMessages(p.Tracks),
	}
}
