package enrich

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/unqfy/internal/infra/config"
	"github.com/osa030/unqfy/internal/infra/lastfm"
	"github.com/osa030/unqfy/internal/infra/musixmatch"
	"github.com/osa030/unqfy/internal/infra/spotify"
)

// SpotifySettings represents the settings of the spotify album source.
type SpotifySettings struct {
	ClientID     string `mapstructure:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`
	Market       string `mapstructure:"market" default:"AR" validate:"omitempty,len=2"`
	Limit        int    `mapstructure:"limit" default:"20" validate:"gte=1,lte=50"`
}

// LastFMSettings represents the settings of the lastfm album source.
type LastFMSettings struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
	Limit  int    `mapstructure:"limit" default:"20" validate:"gte=1,lte=100"`
}

// decodeSettings decodes, defaults and validates source settings into out.
func decodeSettings(settings map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	validate := validator.New()
	if err := validate.Struct(out); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}

// NewSourceChainFromConfig creates an album source chain from configuration.
// An empty chain is valid; lookups through it fail with ErrNoSources.
func NewSourceChainFromConfig(cfg *config.Config) (*SourceChain, error) {
	var sources []AlbumSource

	for i, scfg := range cfg.Enrichment.AlbumSources {
		var src AlbumSource
		zlog.Debug().Msgf("creating album source: index=%d type=%s", i+1, scfg.Type)

		switch scfg.Type {
		case "spotify":
			var s SpotifySettings
			if err := decodeSettings(scfg.Settings, &s); err != nil {
				return nil, errors.Wrapf(err, "invalid settings (source index %d, type %s)", i, scfg.Type)
			}
			src = spotify.New(spotify.Config{
				ClientID:     s.ClientID,
				ClientSecret: s.ClientSecret,
				Market:       s.Market,
				Limit:        s.Limit,
			})

		case "lastfm":
			var s LastFMSettings
			if err := decodeSettings(scfg.Settings, &s); err != nil {
				return nil, errors.Wrapf(err, "invalid settings (source index %d, type %s)", i, scfg.Type)
			}
			c, err := lastfm.New(lastfm.Config{APIKey: s.APIKey, Limit: s.Limit})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to create source (index %d, type %s)", i, scfg.Type)
			}
			src = c

		default:
			return nil, errors.Newf("unsupported album source type: %s (source index %d)", scfg.Type, i)
		}

		sources = append(sources, src)
		zlog.Info().Msgf("registered album source: index=%d type=%s", i+1, scfg.Type)
	}

	return NewSourceChain(sources...), nil
}

// NewLyricsSourceFromConfig creates the lyrics source, or nil when none is configured.
func NewLyricsSourceFromConfig(cfg *config.Config) (LyricsSource, error) {
	if !cfg.LyricsEnabled() {
		zlog.Info().Msg("lyrics source not configured")
		return nil, nil
	}

	c, err := musixmatch.New(musixmatch.Config{
		APIKey:    cfg.Enrichment.Lyrics.APIKey,
		RateLimit: cfg.Enrichment.Lyrics.RateLimit,
		Timeout:   time.Duration(cfg.Enrichment.Lyrics.TimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create lyrics source")
	}
	return c, nil
}
