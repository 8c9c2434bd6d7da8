// Package musixmatch provides a lyrics client for the Musixmatch API.
package musixmatch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ErrNoLyrics is returned when the track or its lyrics are unknown to Musixmatch.
var ErrNoLyrics = errors.New("lyrics not found")

// Client is a Musixmatch API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config represents Musixmatch client configuration.
type Config struct {
	APIKey    string
	RateLimit float64 // requests per second
	Timeout   time.Duration
}

// envelope is the common response wrapper. Body is an empty array on errors.
type envelope struct {
	Message struct {
		Header struct {
			StatusCode int `json:"status_code"`
		} `json:"header"`
		Body json.RawMessage `json:"body"`
	} `json:"message"`
}

type trackSearchBody struct {
	TrackList []struct {
		Track struct {
			TrackID   int    `json:"track_id"`
			TrackName string `json:"track_name"`
		} `json:"track"`
	} `json:"track_list"`
}

type lyricsBody struct {
	Lyrics struct {
		LyricsBody string `json:"lyrics_body"`
	} `json:"lyrics"`
}

// New creates a new Musixmatch client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("musixmatch API key is required")
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 2
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    "https://api.musixmatch.com/ws/1.1/",
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(limit), 1),
	}, nil
}

// FetchLyrics searches the track by name and returns the lyrics of the best match.
func (c *Client) FetchLyrics(ctx context.Context, trackName string) (string, error) {
	if trackName == "" {
		return "", errors.New("track name is required")
	}

	params := url.Values{}
	params.Set("q_track", trackName)
	params.Set("page_size", "1")
	params.Set("s_track_rating", "desc")

	var search trackSearchBody
	if err := c.call(ctx, "track.search", params, &search); err != nil {
		return "", errors.Wrap(err, "failed to search track")
	}
	if len(search.TrackList) == 0 {
		return "", errors.Wrapf(ErrNoLyrics, "no track matches %q", trackName)
	}

	trackID := search.TrackList[0].Track.TrackID
	zlog.Debug().Msgf("resolved musixmatch track: name=%s id=%d", trackName, trackID)

	params = url.Values{}
	params.Set("track_id", strconv.Itoa(trackID))

	var lyrics lyricsBody
	if err := c.call(ctx, "track.lyrics.get", params, &lyrics); err != nil {
		return "", errors.Wrap(err, "failed to get lyrics")
	}
	if lyrics.Lyrics.LyricsBody == "" {
		return "", errors.Wrapf(ErrNoLyrics, "track %q has no lyrics", trackName)
	}

	return lyrics.Lyrics.LyricsBody, nil
}

// call performs a rate-limited GET on method and decodes the envelope body into out.
func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter wait failed")
	}

	params.Set("apikey", c.apiKey)
	params.Set("format", "json")
	reqURL := c.baseURL + method + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}

	switch code := env.Message.Header.StatusCode; code {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNoLyrics
	default:
		return errors.Errorf("musixmatch API error %d", code)
	}

	if err := json.Unmarshal(env.Message.Body, out); err != nil {
		return errors.Wrap(err, "failed to parse response body")
	}
	return nil
}
