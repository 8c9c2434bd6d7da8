package connect

import (
	"context"

	"connectrpc.com/connect"
)

// CatalogClient calls a remote catalog service.
type CatalogClient struct {
	addArtist      *connect.Client[AddArtistRequest, ArtistMessage]
	addAlbum       *connect.Client[AddAlbumRequest, AlbumMessage]
	addTrack       *connect.Client[AddTrackRequest, TrackMessage]
	getArtist      *connect.Client[GetArtistRequest, ArtistMessage]
	listArtists    *connect.Client[ListArtistsRequest, ListArtistsResponse]
	getAlbum       *connect.Client[GetAlbumRequest, AlbumMessage]
	getTrack       *connect.Client[GetTrackRequest, TrackMessage]
	listTracks     *connect.Client[ListTracksRequest, ListTracksResponse]
	addPlaylist    *connect.Client[AddPlaylistRequest, PlaylistMessage]
	getPlaylist    *connect.Client[GetPlaylistRequest, PlaylistMessage]
	removeArtist   *connect.Client[RemoveArtistRequest, RemoveArtistResponse]
	populateAlbums *connect.Client[PopulateAlbumsRequest, PopulateAlbumsResponse]
	getLyrics      *connect.Client[GetLyricsRequest, GetLyricsResponse]
}

// NewCatalogClient creates a client for the service at baseURL.
func NewCatalogClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CatalogClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &CatalogClient{
		addArtist:      connect.NewClient[AddArtistRequest, ArtistMessage](httpClient, baseURL+AddArtistProcedure, opts...),
		addAlbum:       connect.NewClient[AddAlbumRequest, AlbumMessage](httpClient, baseURL+AddAlbumProcedure, opts...),
		addTrack:       connect.NewClient[AddTrackRequest, TrackMessage](httpClient, baseURL+AddTrackProcedure, opts...),
		getArtist:      connect.NewClient[GetArtistRequest, ArtistMessage](httpClient, baseURL+GetArtistProcedure, opts...),
		listArtists:    connect.NewClient[ListArtistsRequest, ListArtistsResponse](httpClient, baseURL+ListArtistsProcedure, opts...),
		getAlbum:       connect.NewClient[GetAlbumRequest, AlbumMessage](httpClient, baseURL+GetAlbumProcedure, opts...),
		getTrack:       connect.NewClient[GetTrackRequest, TrackMessage](httpClient, baseURL+GetTrackProcedure, opts...),
		listTracks:     connect.NewClient[ListTracksRequest, ListTracksResponse](httpClient, baseURL+ListTracksProcedure, opts...),
		addPlaylist:    connect.NewClient[AddPlaylistRequest, PlaylistMessage](httpClient, baseURL+AddPlaylistProcedure, opts...),
		getPlaylist:    connect.NewClient[GetPlaylistRequest, PlaylistMessage](httpClient, baseURL+GetPlaylistProcedure, opts...),
		removeArtist:   connect.NewClient[RemoveArtistRequest, RemoveArtistResponse](httpClient, baseURL+RemoveArtistProcedure, opts...),
		populateAlbums: connect.NewClient[PopulateAlbumsRequest, PopulateAlbumsResponse](httpClient, baseURL+PopulateAlbumsProcedure, opts...),
		getLyrics:      connect.NewClient[GetLyricsRequest, GetLyricsResponse](httpClient, baseURL+GetLyricsProcedure, opts...),
	}
}

func call[Req, Res any](ctx context.Context, c *connect.Client[Req, Res], msg *Req) (*Res, error) {
	resp, err := c.CallUnary(ctx, connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *CatalogClient) AddArtist(ctx context.Context, req *AddArtistRequest) (*ArtistMessage, error) {
	return call(ctx, c.addArtist, req)
}

func (c *CatalogClient) AddAlbum(ctx context.Context, req *AddAlbumRequest) (*AlbumMessage, error) {
	return call(ctx, c.addAlbum, req)
}

func (c *CatalogClient) AddTrack(ctx context.Context, req *AddTrackRequest) (*TrackMessage, error) {
	return call(ctx, c.addTrack, req)
}

func (c *CatalogClient) GetArtist(ctx context.Context, req *GetArtistRequest) (*ArtistMessage, error) {
	return call(ctx, c.getArtist, req)
}

func (c *CatalogClient) ListArtists(ctx context.Context) (*ListArtistsResponse, error) {
	return call(ctx, c.listArtists, &ListArtistsRequest{})
}

func (c *CatalogClient) GetAlbum(ctx context.Context, req *GetAlbumRequest) (*AlbumMessage, error) {
	return call(ctx, c.getAlbum, req)
}

func (c *CatalogClient) GetTrack(ctx context.Context, req *GetTrackRequest) (*TrackMessage, error) {
	return call(ctx, c.getTrack, req)
}

func (c *CatalogClient) ListTracks(ctx context.Context, req *ListTracksRequest) (*ListTracksResponse, error) {
	return call(ctx, c.listTracks, req)
}

func (c *CatalogClient) AddPlaylist(ctx context.Context, req *AddPlaylistRequest) (*PlaylistMessage, error) {
	return call(ctx, c.addPlaylist, req)
}

func (c *CatalogClient) GetPlaylist(ctx context.Context, req *GetPlaylistRequest) (*PlaylistMessage, error) {
	return call(ctx, c.getPlaylist, req)
}

func (c *CatalogClient) RemoveArtist(ctx context.Context, req *RemoveArtistRequest) error {
	_, err := call(ctx, c.removeArtist, req)
	return err
}

func (c *CatalogClient) PopulateAlbums(ctx context.Context, req *PopulateAlbumsRequest) (*PopulateAlbumsResponse, error) {
	return call(ctx, c.populateAlbums, req)
}

func (c *CatalogClient) GetLyrics(ctx context.Context, req *GetLyricsRequest) (*GetLyricsResponse, error) {
	return call(ctx, c.getLyrics, req)
}
