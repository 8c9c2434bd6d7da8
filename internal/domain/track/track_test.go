package track

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tr := New("Baba O'Riley", 300, "rock")

	assert.Equal(t, "Baba O'Riley", tr.Name)
	assert.Equal(t, 300, tr.Duration)
	assert.Equal(t, "rock", tr.Genre)
	assert.False(t, tr.HasLyrics())

	_, err := uuid.Parse(tr.ID)
	require.NoError(t, err)
}

func TestNew_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tr := New("same", 1, "pop")
		assert.False(t, seen[tr.ID], "duplicate id %s", tr.ID)
		seen[tr.ID] = true
	}
}

func TestTotalDuration(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []*Track
		expected int
	}{
		{
			name:     "no tracks",
			tracks:   nil,
			expected: 0,
		},
		{
			name:     "single track",
			tracks:   []*Track{{Duration: 180}},
			expected: 180,
		},
		{
			name:     "multiple tracks",
			tracks:   []*Track{{Duration: 120}, {Duration: 210}, {Duration: 240}},
			expected: 570,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalDuration(tt.tracks))
		})
	}
}
