package lastfm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/unqfy/internal/domain/artist"
)

func TestFetchAlbums(t *testing.T) {
	var calls int32
	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "artist.getTopAlbums", r.URL.Query().Get("method"))
		assert.Equal(t, "The Who", r.URL.Query().Get("artist"))
		assert.Equal(t, "test_key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		response := `{
			"topalbums": {
				"album": [
					{"name": "Who's Next", "playcount": 100, "artist": {"name": "The Who"}},
					{"name": "(null)", "playcount": 80, "artist": {"name": "The Who"}},
					{"name": "Tommy", "playcount": 70, "artist": {"name": "The Who"}}
				]
			}
		}`
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, response)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "test_key", Limit: 5})
	require.NoError(t, err)
	client.baseURL = server.URL + "/"

	ctx := context.Background()
	releases, err := client.FetchAlbums(ctx, "The Who")
	require.NoError(t, err)
	assert.Equal(t, []artist.Release{{Name: "Who's Next"}, {Name: "Tommy"}}, releases)

	// Test Caching
	cached, err := client.FetchAlbums(ctx, "the who")
	require.NoError(t, err)
	assert.Equal(t, releases, cached)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchAlbums_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error": 6, "message": "The artist you supplied could not be found"}`)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "test_key"})
	require.NoError(t, err)
	client.baseURL = server.URL + "/"

	_, err = client.FetchAlbums(context.Background(), "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last.fm API error 6")
}

func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	c, err := New(Config{APIKey: "k", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, c.limit)
	assert.Equal(t, "lastfm", c.Name())
}
