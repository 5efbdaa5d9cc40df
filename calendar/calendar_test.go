package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniscraper/puzzle"
)

func record(t *testing.T, day int) *puzzle.Record {
	t.Helper()
	grid, err := puzzle.Classify([]puzzle.CellFragment{{}, {"1", "", "", "A"}, {"", "B"}, {"", "C"}}, 2, 2)
	require.NoError(t, err)
	sections := puzzle.PartitionClues([]puzzle.Clue{
		{Number: "1", Text: "First"},
		{Number: "1", Text: "Second"},
	})
	return puzzle.NewRecord(time.Date(2020, time.October, day, 0, 0, 0, 0, time.UTC), sections, grid)
}

func TestExportAndRead(t *testing.T) {
	var buf bytes.Buffer
	stamp := time.Date(2020, time.October, 27, 8, 0, 0, 0, time.UTC)
	require.NoError(t, Export(&buf, []*puzzle.Record{record(t, 25), record(t, 26)}, stamp))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "UID:miniscraper-20201025")

	entries, err := Read(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "miniscraper-20201025", entries[0].UID)
	assert.Equal(t, time.Date(2020, time.October, 25, 0, 0, 0, 0, time.UTC), entries[0].Date)
	assert.Equal(t, "Mini Crossword 20-10-25", entries[0].Summary)
	assert.Equal(t, 26, entries[1].Date.Day())
}

func TestDescription(t *testing.T) {
	d := description(record(t, 25))

	assert.Contains(t, d, "Across\n1 First\n")
	assert.Contains(t, d, "Down\n1 Second\n")
	assert.Contains(t, d, "Solution\n#A\nBC\n")
}

func TestRead_Invalid(t *testing.T) {
	_, err := Read(strings.NewReader("not a calendar"))
	assert.Error(t, err)
}
