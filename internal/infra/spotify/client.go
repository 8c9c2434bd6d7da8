// Package spotify provides a client for the Spotify API.
package spotify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/osa030/unqfy/internal/domain/artist"
)

// Client is a Spotify API client.
type Client struct {
	client     *spotify.Client
	market     string
	limit      int
	maxRetries int
	retryDelay time.Duration
}

// Config represents Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	Market       string
	Limit        int
}

// New creates a new Spotify client authenticated with the client credentials flow.
// Tokens are fetched lazily on the first request.
func New(cfg Config) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return newClient(cc.Client(context.Background()), cfg)
}

func newClient(httpClient *http.Client, cfg Config, opts ...spotify.ClientOption) *Client {
	market := cfg.Market
	if market == "" {
		market = "AR"
	}
	limit := cfg.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	return &Client{
		client:     spotify.New(httpClient, opts...),
		market:     market,
		limit:      limit,
		maxRetries: 3,
		retryDelay: time.Second,
	}
}

// Name returns the source name.
func (c *Client) Name() string {
	return "spotify"
}

// FetchAlbums finds the best matching artist and returns its albums.
func (c *Client) FetchAlbums(ctx context.Context, artistName string) ([]artist.Release, error) {
	if artistName == "" {
		return nil, errors.New("artist name is required")
	}

	var found *spotify.FullArtist
	err := c.retry(ctx, func() error {
		r, err := c.client.Search(ctx, artistName, spotify.SearchTypeArtist, spotify.Limit(1))
		if err != nil {
			return err
		}
		if r.Artists != nil && len(r.Artists.Artists) > 0 {
			found = &r.Artists.Artists[0]
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search artist")
	}
	if found == nil {
		return nil, errors.Newf("artist %q not found on spotify", artistName)
	}
	zlog.Debug().Msgf("resolved spotify artist: name=%s id=%s", found.Name, found.ID)

	var page *spotify.SimpleAlbumPage
	err = c.retry(ctx, func() error {
		p, err := c.client.GetArtistAlbums(ctx, found.ID,
			[]spotify.AlbumType{spotify.AlbumTypeAlbum},
			spotify.Limit(c.limit),
			spotify.Market(c.market),
		)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get artist albums")
	}

	return convertAlbums(page.Albums), nil
}

// convertAlbums converts Spotify albums to releases, keeping the first of each name.
// Spotify lists every edition of an album separately.
func convertAlbums(albums []spotify.SimpleAlbum) []artist.Release {
	seen := make(map[string]bool)
	releases := make([]artist.Release, 0, len(albums))
	for _, a := range albums {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		releases = append(releases, artist.Release{
			Name:        a.Name,
			ReleaseDate: a.ReleaseDate,
		})
	}
	return releases
}

// retry retries an operation with linear backoff.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			return err
		}

		if i < c.maxRetries-1 {
			select {
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "retry abandoned")
			case <-time.After(c.retryDelay * time.Duration(i+1)):
			}
		}
	}
	return errors.Wrap(lastErr, "max retries exceeded")
}

// isRetryable checks if an error is retryable.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se spotify.Error
	if errors.As(err, &se) {
		return se.Status == http.StatusTooManyRequests || se.Status >= 500
	}
	// Rate limit errors and server errors are retryable
	errStr := err.Error()
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504")
}
