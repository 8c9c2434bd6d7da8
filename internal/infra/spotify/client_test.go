package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"

	"github.com/osa030/unqfy/internal/domain/artist"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := newClient(server.Client(), Config{Market: "AR"}, spotify.WithBaseURL(server.URL+"/"))
	c.retryDelay = time.Millisecond
	return c
}

func TestFetchAlbums(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "The Who", r.URL.Query().Get("q"))
			assert.Equal(t, "artist", r.URL.Query().Get("type"))
			fmt.Fprint(w, `{"artists": {"items": [{"id": "who-id", "name": "The Who"}]}}`)
		case "/artists/who-id/albums":
			assert.Equal(t, "AR", r.URL.Query().Get("market"))
			fmt.Fprint(w, `{"items": [
				{"id": "1", "name": "Who's Next", "release_date": "1971-08-14"},
				{"id": "2", "name": "Who's Next", "release_date": "2003-01-01"},
				{"id": "3", "name": "Face Dances", "release_date": "1981"}
			]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	releases, err := c.FetchAlbums(context.Background(), "The Who")
	require.NoError(t, err)
	assert.Equal(t, []artist.Release{
		{Name: "Who's Next", ReleaseDate: "1971-08-14"},
		{Name: "Face Dances", ReleaseDate: "1981"},
	}, releases)
}

func TestFetchAlbums_ArtistNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"artists": {"items": []}}`)
	})

	_, err := c.FetchAlbums(context.Background(), "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFetchAlbums_EmptyName(t *testing.T) {
	c := newClient(http.DefaultClient, Config{})
	_, err := c.FetchAlbums(context.Background(), "")
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{ClientID: "id", ClientSecret: "secret"})
	assert.Equal(t, "spotify", c.Name())
	assert.Equal(t, "AR", c.market)
	assert.Equal(t, 20, c.limit)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "rate limit error with 429",
			err:      errors.New("Error 429: rate limit exceeded"),
			expected: true,
		},
		{
			name:     "server error 503",
			err:      errors.New("503 Service Unavailable"),
			expected: true,
		},
		{
			name:     "spotify error too many requests",
			err:      spotify.Error{Message: "slow down", Status: http.StatusTooManyRequests},
			expected: true,
		},
		{
			name:     "spotify error bad gateway",
			err:      spotify.Error{Message: "bad gateway", Status: http.StatusBadGateway},
			expected: true,
		},
		{
			name:     "spotify error not found",
			err:      spotify.Error{Message: "missing", Status: http.StatusNotFound},
			expected: false,
		},
		{
			name:     "client error 400",
			err:      errors.New("400 Bad Request"),
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetryable(tt.err))
		})
	}
}

func TestConvertAlbums(t *testing.T) {
	releases := convertAlbums([]spotify.SimpleAlbum{
		{Name: "Tommy", ReleaseDate: "1969"},
		{Name: " tommy ", ReleaseDate: "1975"},
		{Name: "", ReleaseDate: "1970"},
		{Name: "Quadrophenia", ReleaseDate: "1973-10-26"},
	})

	assert.Equal(t, []artist.Release{
		{Name: "Tommy", ReleaseDate: "1969"},
		{Name: "Quadrophenia", ReleaseDate: "1973-10-26"},
	}, releases)
}
