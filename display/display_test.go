package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniscraper/puzzle"
)

func testRecord(t *testing.T) *puzzle.Record {
	t.Helper()
	frags := []puzzle.CellFragment{
		{}, {"1", "", "", "A"},
		{"2", "", "", "B"}, {"", "C"},
	}
	grid, err := puzzle.Classify(frags, 2, 2)
	require.NoError(t, err)

	sections := puzzle.PartitionClues([]puzzle.Clue{
		{Number: "1", Text: "Letter one"},
		{Number: "2", Text: "Letters"},
		{Number: "1", Text: "Down we go"},
	})
	return puzzle.NewRecord(time.Date(2020, time.October, 25, 0, 0, 0, 0, time.UTC), sections, grid)
}

func TestRender(t *testing.T) {
	now := time.Date(2020, time.October, 25, 9, 32, 2, 0, time.UTC)
	out := Render(testRecord(t), now)

	assert.Contains(t, out, "The Mini Crossword")
	assert.Contains(t, out, "Across")
	assert.Contains(t, out, "Down")
	assert.Contains(t, out, "Letter one")
	assert.Contains(t, out, "Down we go")
	assert.Contains(t, out, "Sunday, October 25, 2020")
	assert.Contains(t, out, "09:32:02")
	assert.Contains(t, out, "█")
	for _, letter := range []string{"A", "B", "C"} {
		assert.Contains(t, out, letter)
	}
}

func TestRenderGrid_Shape(t *testing.T) {
	grid := renderGrid(testRecord(t).Grid)
	lines := strings.Split(grid, "\n")

	// Two text lines per cell row.
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "█████"))
	assert.Contains(t, lines[0], "1")
	assert.Contains(t, lines[3], "C")
}
