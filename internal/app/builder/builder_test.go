package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/unqfy/internal/domain/track"
)

func tracksWithDurations(durations ...int) []*track.Track {
	tracks := make([]*track.Track, len(durations))
	for i, d := range durations {
		tracks[i] = &track.Track{ID: string(rune('a' + i)), Duration: d}
	}
	return tracks
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		durations   []int
		maxDuration int
		expected    []int // indexes into durations
	}{
		{
			name:        "empty candidates",
			durations:   nil,
			maxDuration: 300,
			expected:    []int{},
		},
		{
			name:        "zero budget",
			durations:   []int{10, 20},
			maxDuration: 0,
			expected:    []int{},
		},
		{
			name:        "negative budget",
			durations:   []int{10},
			maxDuration: -5,
			expected:    []int{},
		},
		{
			name:        "first fit skips the overflowing track",
			durations:   []int{200, 150, 100},
			maxDuration: 300,
			expected:    []int{0, 2},
		},
		{
			name:        "exact fit is included",
			durations:   []int{100, 200},
			maxDuration: 300,
			expected:    []int{0, 1},
		},
		{
			name:        "long track excluded, scan continues",
			durations:   []int{500, 50, 60},
			maxDuration: 120,
			expected:    []int{1, 2},
		},
		{
			name:        "greedy, not optimal",
			durations:   []int{60, 100, 100},
			maxDuration: 200,
			expected:    []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := tracksWithDurations(tt.durations...)
			expected := make([]*track.Track, 0, len(tt.expected))
			for _, i := range tt.expected {
				expected = append(expected, candidates[i])
			}

			assert.Equal(t, expected, Select(candidates, tt.maxDuration))
		})
	}
}

func TestSelect_GreedyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(19))

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(20)
		durations := make([]int, n)
		for i := range durations {
			durations[i] = rng.Intn(300) + 1
		}
		maxDuration := rng.Intn(1200) - 100
		candidates := tracksWithDurations(durations...)

		selected := Select(candidates, maxDuration)

		// Bounded by the budget.
		assert.LessOrEqual(t, track.TotalDuration(selected), max(maxDuration, 0))

		// Subsequence of the input, relative order preserved, and every skipped
		// track would have overflowed at its position.
		j := 0
		acc := 0
		for _, c := range candidates {
			if j < len(selected) && selected[j] == c {
				acc += c.Duration
				j++
				continue
			}
			if maxDuration > 0 {
				assert.Greater(t, acc+c.Duration, maxDuration)
			}
		}
		assert.Equal(t, len(selected), j, "selection is not an ordered subsequence")
	}
}

func TestBuild(t *testing.T) {
	candidates := tracksWithDurations(200, 150, 100)

	p := Build("P", candidates, 300)

	assert.Equal(t, "P", p.Name)
	assert.Equal(t, 300, p.MaxDuration)
	assert.Equal(t, 300, p.Duration())
	assert.Equal(t, []*track.Track{candidates[0], candidates[2]}, p.Tracks)
}
