package enrich

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/unqfy/internal/domain/artist"
)

type fakeSource struct {
	name     string
	releases []artist.Release
	err      error
	calls    int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchAlbums(ctx context.Context, artistName string) ([]artist.Release, error) {
	f.calls++
	return f.releases, f.err
}

func TestSourceChain_FetchAlbums(t *testing.T) {
	tommy := []artist.Release{{Name: "Tommy", ReleaseDate: "1969"}}
	next := []artist.Release{{Name: "Who's Next"}}

	tests := []struct {
		name      string
		sources   []*fakeSource
		expected  []artist.Release
		wantErr   bool
		wantCalls []int
	}{
		{
			name: "first source wins",
			sources: []*fakeSource{
				{name: "a", releases: tommy},
				{name: "b", releases: next},
			},
			expected:  tommy,
			wantCalls: []int{1, 0},
		},
		{
			name: "falls through failure",
			sources: []*fakeSource{
				{name: "a", err: errors.New("boom")},
				{name: "b", releases: next},
			},
			expected:  next,
			wantCalls: []int{1, 1},
		},
		{
			name: "falls through empty result",
			sources: []*fakeSource{
				{name: "a"},
				{name: "b", releases: next},
			},
			expected:  next,
			wantCalls: []int{1, 1},
		},
		{
			name: "all empty",
			sources: []*fakeSource{
				{name: "a"},
				{name: "b", err: errors.New("boom")},
			},
			expected:  []artist.Release{},
			wantCalls: []int{1, 1},
		},
		{
			name: "all failed",
			sources: []*fakeSource{
				{name: "a", err: errors.New("boom")},
				{name: "b", err: errors.New("bang")},
			},
			wantErr:   true,
			wantCalls: []int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := make([]AlbumSource, len(tt.sources))
			for i, s := range tt.sources {
				sources[i] = s
			}
			chain := NewSourceChain(sources...)

			releases, err := chain.FetchAlbums(context.Background(), "The Who")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "all album sources failed")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, releases)
			}
			for i, s := range tt.sources {
				assert.Equal(t, tt.wantCalls[i], s.calls, "source %s", s.name)
			}
		})
	}
}

func TestSourceChain_Empty(t *testing.T) {
	chain := NewSourceChain()

	_, err := chain.FetchAlbums(context.Background(), "The Who")
	assert.True(t, errors.Is(err, ErrNoSources))
	assert.Equal(t, 0, chain.Len())
}

func TestSourceChain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	second := &fakeSource{name: "b", releases: []artist.Release{{Name: "x"}}}
	chain := NewSourceChain(&fakeSource{name: "a", err: errors.New("cancelled")}, second)

	_, err := chain.FetchAlbums(ctx, "The Who")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, second.calls)
}
