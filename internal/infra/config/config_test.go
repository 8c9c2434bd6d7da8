package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.Path)
	assert.Equal(t, "estado", cfg.Storage.StateName)
	assert.Equal(t, 2.0, cfg.Enrichment.Lyrics.RateLimit)
	assert.Equal(t, 10, cfg.Enrichment.Lyrics.TimeoutSec)
	assert.Empty(t, cfg.Enrichment.AlbumSources)
	assert.False(t, cfg.LyricsEnabled())
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			yaml: `
server:
  addr: ":9000"
storage:
  driver: sqlite
  path: /tmp/unqfy
enrichment:
  album_sources:
    - type: spotify
      settings:
        client_id: id
        client_secret: secret
    - type: lastfm
      settings:
        api_key: key
  lyrics:
    api_key: mxm
`,
			wantErr: false,
		},
		{
			name: "unknown storage driver",
			yaml: `
storage:
  driver: postgres
`,
			wantErr: true,
			errMsg:  "Driver",
		},
		{
			name: "unknown album source",
			yaml: `
enrichment:
  album_sources:
    - type: discogs
`,
			wantErr: true,
			errMsg:  "Type",
		},
		{
			name: "lyrics timeout out of range",
			yaml: `
enrichment:
  lyrics:
    timeout_sec: 500
`,
			wantErr: true,
			errMsg:  "TimeoutSec",
		},
		{
			name:    "malformed yaml",
			yaml:    "server: [",
			wantErr: true,
			errMsg:  "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")
	t.Setenv("LASTFM_API_KEY", "env-lastfm")
	t.Setenv("MUSIXMATCH_API_KEY", "env-mxm")

	cfg, err := Parse([]byte(`
enrichment:
  album_sources:
    - type: spotify
    - type: lastfm
      settings:
        api_key: file-key
`))
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.Enrichment.AlbumSources[0].Settings["client_id"])
	assert.Equal(t, "env-secret", cfg.Enrichment.AlbumSources[0].Settings["client_secret"])
	assert.Equal(t, "env-lastfm", cfg.Enrichment.AlbumSources[1].Settings["api_key"])
	assert.Equal(t, "env-mxm", cfg.Enrichment.Lyrics.APIKey)
	assert.True(t, cfg.LyricsEnabled())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  state_name: catalog\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.Storage.StateName)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.NoError(t, cfg.Validate())
}
