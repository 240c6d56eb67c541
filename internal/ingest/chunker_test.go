package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/studyrag/internal/fault"
)

func TestChunkTextWindows(t *testing.T) {
	text := strings.Repeat("a", 3000)

	chunks, err := ChunkText(text, 1200, 200)
	require.NoError(t, err)

	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 1200)
	assert.Len(t, chunks[1], 1200)
	assert.Len(t, chunks[2], 1000)
}

func TestChunkTextCoversEveryCharacter(t *testing.T) {
	cases := []struct {
		name    string
		length  int
		size    int
		overlap int
	}{
		{"even", 5000, 1200, 200},
		{"short tail", 1201, 1200, 200},
		{"single window", 100, 1200, 200},
		{"no overlap", 3000, 500, 0},
		{"heavy overlap", 1000, 100, 90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := strings.Repeat("x", tc.length)
			chunks, err := ChunkText(text, tc.size, tc.overlap)
			require.NoError(t, err)

			covered := 0
			step := tc.size - tc.overlap
			for i, c := range chunks {
				assert.LessOrEqual(t, len(c), tc.size)
				start := i * step
				end := start + len(c)
				// windows advance by step, so contiguous coverage means
				// each start is at or before the previous end
				assert.LessOrEqual(t, start, covered)
				if end > covered {
					covered = end
				}
			}
			assert.Equal(t, tc.length, covered, "every character index must land in a window")
		})
	}
}

func TestChunkTextNormalizesWhitespace(t *testing.T) {
	chunks, err := ChunkText("  alpha \n\n beta\t\tgamma  ", 100, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "alpha beta gamma", chunks[0])
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunks, err := ChunkText("", 1200, 200)
	assert.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = ChunkText("   \n\t ", 1200, 200)
	assert.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkTextRejectsBadParameters(t *testing.T) {
	_, err := ChunkText("some text", 100, 100)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindConfig))

	_, err = ChunkText("some text", 100, 150)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindConfig))

	_, err = ChunkText("some text", 0, 0)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindConfig))

	_, err = ChunkText("some text", 100, -1)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindConfig))
}
