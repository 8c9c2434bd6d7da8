package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/unqfy/internal/infra/config"
)

func TestNewSourceChainFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		sources []config.SourceConfig
		wantLen int
		wantErr bool
	}{
		{
			name:    "no sources",
			sources: nil,
			wantLen: 0,
		},
		{
			name: "spotify and lastfm",
			sources: []config.SourceConfig{
				{Type: "spotify", Settings: map[string]any{"client_id": "id", "client_secret": "secret"}},
				{Type: "lastfm", Settings: map[string]any{"api_key": "key", "limit": "10"}},
			},
			wantLen: 2,
		},
		{
			name: "spotify missing secret",
			sources: []config.SourceConfig{
				{Type: "spotify", Settings: map[string]any{"client_id": "id"}},
			},
			wantErr: true,
		},
		{
			name: "spotify invalid market",
			sources: []config.SourceConfig{
				{Type: "spotify", Settings: map[string]any{"client_id": "id", "client_secret": "s", "market": "ARG"}},
			},
			wantErr: true,
		},
		{
			name: "lastfm missing key",
			sources: []config.SourceConfig{
				{Type: "lastfm", Settings: map[string]any{}},
			},
			wantErr: true,
		},
		{
			name: "unknown type",
			sources: []config.SourceConfig{
				{Type: "discogs"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Enrichment.AlbumSources = tt.sources

			chain, err := NewSourceChainFromConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, chain.Len())
		})
	}
}

func TestDecodeSettings_Defaults(t *testing.T) {
	var s SpotifySettings
	err := decodeSettings(map[string]any{"client_id": "id", "client_secret": "secret"}, &s)
	require.NoError(t, err)

	assert.Equal(t, "AR", s.Market)
	assert.Equal(t, 20, s.Limit)
}

func TestNewLyricsSourceFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Enrichment.Lyrics.APIKey = ""

	src, err := NewLyricsSourceFromConfig(cfg)
	require.NoError(t, err)
	assert.Nil(t, src)

	cfg.Enrichment.Lyrics.APIKey = "mxm"
	src, err = NewLyricsSourceFromConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, src)
}
