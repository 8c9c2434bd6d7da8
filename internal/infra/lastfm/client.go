// Package lastfm provides a client for the Last.fm API.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/domain/artist"
)

// Client is a Last.fm API client.
type Client struct {
	apiKey     string
	baseURL    string
	limit      int
	httpClient *http.Client

	// Cache for artist top albums, keyed by lowercased artist name
	albumCache map[string][]artist.Release
	cacheMu    sync.RWMutex
}

// Config represents Last.fm client configuration.
type Config struct {
	APIKey string
	Limit  int
}

// GetTopAlbumsResponse represents the response from artist.getTopAlbums API.
type GetTopAlbumsResponse struct {
	TopAlbums struct {
		Album []struct {
			Name string `json:"name"`
		} `json:"album"`
	} `json:"topalbums"`
}

// LastFMError represents an error response from Last.fm API.
type LastFMError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// New creates a new Last.fm client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("last.fm API key is required")
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    "https://ws.audioscrobbler.com/2.0/",
		limit:      limit,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		albumCache: make(map[string][]artist.Release),
	}, nil
}

// Name returns the source name.
func (c *Client) Name() string {
	return "lastfm"
}

// FetchAlbums retrieves the top albums of an artist from Last.fm.
// Last.fm does not report release dates, so every release has an empty date.
// Reference: https://www.last.fm/api/show/artist.getTopAlbums
func (c *Client) FetchAlbums(ctx context.Context, artistName string) ([]artist.Release, error) {
	if artistName == "" {
		return nil, errors.New("artist name is required")
	}

	cacheKey := strings.ToLower(artistName)
	c.cacheMu.RLock()
	if releases, ok := c.albumCache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		zlog.Debug().Msgf("using cached albums for artist: %s", artistName)
		return releases, nil
	}
	c.cacheMu.RUnlock()

	params := url.Values{}
	params.Set("method", "artist.getTopAlbums")
	params.Set("api_key", c.apiKey)
	params.Set("artist", artistName)
	params.Set("limit", fmt.Sprintf("%d", c.limit))
	params.Set("format", "json")
	params.Set("autocorrect", "1")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var response GetTopAlbumsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to parse response")
	}

	releases := make([]artist.Release, 0, len(response.TopAlbums.Album))
	for _, a := range response.TopAlbums.Album {
		// Last.fm reports loose tracks under the "(null)" album.
		if a.Name == "" || a.Name == "(null)" {
			continue
		}
		releases = append(releases, artist.Release{Name: a.Name})
	}

	c.cacheMu.Lock()
	c.albumCache[cacheKey] = releases
	c.cacheMu.Unlock()
	zlog.Debug().Msgf("cached albums for artist: %s (count: %d)", artistName, len(releases))

	return releases, nil
}

// get performs a GET request and returns the body, mapping Last.fm error payloads to errors.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	var apiError LastFMError
	if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error != 0 {
		return nil, errors.Errorf("last.fm API error %d: %s", apiError.Error, apiError.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("last.fm API returned status %d", resp.StatusCode)
	}

	return body, nil
}
