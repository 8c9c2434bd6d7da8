package connect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/osa030/unqfy/internal/app/catalog"
	"github.com/osa030/unqfy/internal/app/unqfy"
	"github.com/osa030/unqfy/internal/domain/artist"
)

// CatalogServiceName is the fully-qualified name of the catalog service.
const CatalogServiceName = "unqfy.v1.CatalogService"

// Procedure paths of the catalog service.
const (
	AddArtistProcedure      = "/" + CatalogServiceName + "/AddArtist"
	AddAlbumProcedure       = "/" + CatalogServiceName + "/AddAlbum"
	AddTrackProcedure       = "/" + CatalogServiceName + "/AddTrack"
	GetArtistProcedure      = "/" + CatalogServiceName + "/GetArtist"
	ListArtistsProcedure    = "/" + CatalogServiceName + "/ListArtists"
	GetAlbumProcedure       = "/" + CatalogServiceName + "/GetAlbum"
	GetTrackProcedure       = "/" + CatalogServiceName + "/GetTrack"
	ListTracksProcedure     = "/" + CatalogServiceName + "/ListTracks"
	AddPlaylistProcedure    = "/" + CatalogServiceName + "/AddPlaylist"
	GetPlaylistProcedure    = "/" + CatalogServiceName + "/GetPlaylist"
	RemoveArtistProcedure   = "/" + CatalogServiceName + "/RemoveArtist"
	PopulateAlbumsProcedure = "/" + CatalogServiceName + "/PopulateAlbums"
	GetLyricsProcedure      = "/" + CatalogServiceName + "/GetLyrics"
)

// mutatingProcedures change catalog state and are followed by a save.
var mutatingProcedures = map[string]bool{
	AddArtistProcedure:      true,
	AddAlbumProcedure:       true,
	AddTrackProcedure:       true,
	AddPlaylistProcedure:    true,
	RemoveArtistProcedure:   true,
	PopulateAlbumsProcedure: true,
	GetLyricsProcedure:      true,
}

// CatalogService implements the catalog RPC on top of the UNQfy use cases.
type CatalogService struct {
	svc *unqfy.Service
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(svc *unqfy.Service) *CatalogService {
	return &CatalogService{svc: svc}
}

// Register mounts every procedure on mux. The JSON codec is always installed.
func (s *CatalogService) Register(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux.Handle(AddArtistProcedure, connect.NewUnaryHandler(AddArtistProcedure, s.AddArtist, opts...))
	mux.Handle(AddAlbumProcedure, connect.NewUnaryHandler(AddAlbumProcedure, s.AddAlbum, opts...))
	mux.Handle(AddTrackProcedure, connect.NewUnaryHandler(AddTrackProcedure, s.AddTrack, opts...))
	mux.Handle(GetArtistProcedure, connect.NewUnaryHandler(GetArtistProcedure, s.GetArtist, opts...))
	mux.Handle(ListArtistsProcedure, connect.NewUnaryHandler(ListArtistsProcedure, s.ListArtists, opts...))
	mux.Handle(GetAlbumProcedure, connect.NewUnaryHandler(GetAlbumProcedure, s.GetAlbum, opts...))
	mux.Handle(GetTrackProcedure, connect.NewUnaryHandler(GetTrackProcedure, s.GetTrack, opts...))
	mux.Handle(ListTracksProcedure, connect.NewUnaryHandler(ListTracksProcedure, s.ListTracks, opts...))
	mux.Handle(AddPlaylistProcedure, connect.NewUnaryHandler(AddPlaylistProcedure, s.AddPlaylist, opts...))
	mux.Handle(GetPlaylistProcedure, connect.NewUnaryHandler(GetPlaylistProcedure, s.GetPlaylist, opts...))
	mux.Handle(RemoveArtistProcedure, connect.NewUnaryHandler(RemoveArtistProcedure, s.RemoveArtist, opts...))
	mux.Handle(PopulateAlbumsProcedure, connect.NewUnaryHandler(PopulateAlbumsProcedure, s.PopulateAlbums, opts...))
	mux.Handle(GetLyricsProcedure, connect.NewUnaryHandler(GetLyricsProcedure, s.GetLyrics, opts...))
}

// view converts entities under the repository read lock.
func (s *CatalogService) view(fn func()) {
	s.svc.Repository().View(fn)
}

// AddArtist registers a new artist.
func (s *CatalogService) AddArtist(
	ctx context.Context,
	req *connect.Request[AddArtistRequest],
) (*connect.Response[ArtistMessage], error) {
	a, err := s.svc.AddArtist(unqfy.AddArtistParams{
		Name:    req.Msg.Name,
		Country: req.Msg.Country,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	var msg ArtistMessage
	s.view(func() { msg = toArtistMessage(a) })
	return connect.NewResponse(&msg), nil
}

// AddAlbum adds an album to an existing artist.
func (s *CatalogService) AddAlbum(
	ctx context.Context,
	req *connect.Request[AddAlbumRequest],
) (*connect.Response[AlbumMessage], error) {
	al, err := s.svc.AddAlbum(req.Msg.Artist, unqfy.AddAlbumParams{
		Name: req.Msg.Name,
		Year: req.Msg.Year,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	var msg AlbumMessage
	s.view(func() { msg = toAlbumMessage(al) })
	return connect.NewResponse(&msg), nil
}

// AddTrack adds a track to an existing album.
func (s *CatalogService) AddTrack(
	ctx context.Context,
	req *connect.Request[AddTrackRequest],
) (*connect.Response[TrackMessage], error) {
	t, err := s.svc.AddTrack(req.Msg.Album, unqfy.AddTrackParams{
		Name:     req.Msg.Name,
		Duration: req.Msg.Duration,
		Genre:    req.Msg.Genre,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	var msg TrackMessage
	s.view(func() { msg = toTrackMessage(t) })
	return connect.NewResponse(&msg), nil
}

// GetArtist looks an artist up by ID or name.
func (s *CatalogService) GetArtist(
	ctx context.Context,
	req *connect.Request[GetArtistRequest],
) (*connect.Response[ArtistMessage], error) {
	var (
		a   *artist.Artist
		err error
	)
	switch {
	case req.Msg.ID != nil:
		a, err = s.svc.GetArtistByID(*req.Msg.ID)
	case req.Msg.Name != "":
		a, err = s.svc.GetArtistByName(req.Msg.Name)
	default:
		err = catalog.Validationf("artist id or name is required")
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	var msg ArtistMessage
	s.view(func() { msg = toArtistMessage(a) })
	return connect.NewResponse(&msg), nil
}

// ListArtists returns every artist in insertion order.
func (s *CatalogService) ListArtists(
	ctx context.Context,
	req *connect.Request[ListArtistsRequest],
) (*connect.Response[ListArtistsResponse], error) {
	artists := s.svc.GetArtists()

	resp := &ListArtistsResponse{Artists: make([]ArtistMessage, len(artists))}
	s.view(func() {
		for i, a := range artists {
			resp.Artists[i] = toArtistMessage(a)
		}
	})
	return connect.NewResponse(resp), nil
}

// GetAlbum looks an album up by name.
func (s *CatalogService) GetAlbum(
	ctx context.Context,
	req *connect.Request[GetAlbumRequest],
) (*connect.Response[AlbumMessage], error) {
	al, err := s.svc.GetAlbumByName(req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}

	var msg AlbumMessage
	s.view(func() { msg = toAlbumMessage(al) })
	return connect.NewResponse(&msg), nil
}

// GetTrack looks a track up by name.
func (s *CatalogService) GetTrack(
	ctx context.Context,
	req *connect.Request[GetTrackRequest],
) (*connect.Response[TrackMessage], error) {
	t, err := s.svc.GetTrackByName(req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}

	var msg TrackMessage
	s.view(func() { msg = toTrackMessage(t) })
	return connect.NewResponse(&msg), nil
}

// ListTracks returns the tracks of an artist, or the tracks matching genres.
func (s *CatalogService) ListTracks(
	ctx context.Context,
	req *connect.Request[ListTracksRequest],
) (*connect.Response[ListTracksResponse], error) {
	resp := &ListTracksResponse{}

	if req.Msg.Artist != "" {
		tracks, err := s.svc.GetTracksMatchingArtist(req.Msg.Artist)
		if err != nil {
			return nil, toConnectError(err)
		}
		s.view(func() { resp.Tracks = toTrackMessages(tracks) })
		return connect.NewResponse(resp), nil
	}

	tracks := s.svc.GetTracksMatchingGenres(req.Msg.Genres)
	s.view(func() { resp.Tracks = toTrackMessages(tracks) })
	return connect.NewResponse(resp), nil
}

// AddPlaylist builds and stores a playlist from genre-matching tracks.
func (s *CatalogService) AddPlaylist(
	ctx context.Context,
	req *connect.Request[AddPlaylistRequest],
) (*connect.Response[PlaylistMessage], error) {
	p := s.svc.AddPlaylist(req.Msg.Name, req.Msg.Genres, req.Msg.MaxDuration)

	var msg PlaylistMessage
	s.view(func() { msg = toPlaylistMessage(p) })
	return connect.NewResponse(&msg), nil
}

// GetPlaylist looks a playlist up by name.
func (s *CatalogService) GetPlaylist(
	ctx context.Context,
	req *connect.Request[GetPlaylistRequest],
) (*connect.Response[PlaylistMessage], error) {
	p, err := s.svc.GetPlaylistByName(req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}

	var msg PlaylistMessage
	s.view(func() { msg = toPlaylistMessage(p) })
	return connect.NewResponse(&msg), nil
}

// RemoveArtist deletes an artist and everything it owns.
func (s *CatalogService) RemoveArtist(
	ctx context.Context,
	req *connect.Request[RemoveArtistRequest],
) (*connect.Response[RemoveArtistResponse], error) {
	if err := s.svc.RemoveArtist(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&RemoveArtistResponse{}), nil
}

// PopulateAlbums fetches an artist's albums from the configured sources.
func (s *CatalogService) PopulateAlbums(
	ctx context.Context,
	req *connect.Request[PopulateAlbumsRequest],
) (*connect.Response[PopulateAlbumsResponse], error) {
	albums, err := s.svc.PopulateAlbumsForArtist(ctx, req.Msg.Artist)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &PopulateAlbumsResponse{}
	s.view(func() { resp.Albums = toAlbumMessages(albums) })
	return connect.NewResponse(resp), nil
}

// GetLyrics returns a track's lyrics, fetching them on first request.
func (s *CatalogService) GetLyrics(
	ctx context.Context,
	req *connect.Request[GetLyricsRequest],
) (*connect.Response[GetLyricsResponse], error) {
	lyrics, err := s.svc.GetLyricsForTrack(ctx, req.Msg.Track)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetLyricsResponse{
		Track:  req.Msg.Track,
		Lyrics: lyrics,
	}), nil
}
