package scraper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"miniscraper/config"
	"miniscraper/puzzle"
)

const fixture = "testdata/mini.html"

func defaultSelectors(t *testing.T) config.Selectors {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	var cfg config.Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg.Selectors
}

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	return string(data)
}

func TestExtract_Fixture(t *testing.T) {
	page, err := NewExtractor(defaultSelectors(t), nil).Extract(readFixture(t))
	require.NoError(t, err)

	require.Len(t, page.Cells, 25)
	assert.Empty(t, page.Cells[0])
	assert.Equal(t, puzzle.CellFragment{"1", "", "", "S"}, page.Cells[1])
	assert.Equal(t, puzzle.CellFragment{"", "R"}, page.Cells[6])
	assert.Empty(t, page.Cells[24])

	require.Len(t, page.Clues, 9)
	assert.Equal(t, puzzle.Clue{Number: "1", Text: "Where to buy things"}, page.Clues[0])
	assert.Equal(t, puzzle.Clue{Number: "1", Text: "Boot"}, page.Clues[5])
	assert.Equal(t, puzzle.Clue{Number: "4", Text: "Pie maker's fruit"}, page.Clues[8])
}

func TestExtract_MissingBoard(t *testing.T) {
	_, err := NewExtractor(defaultSelectors(t), nil).Extract("<html><body><p>nothing</p></body></html>")
	assert.ErrorIs(t, err, puzzle.ErrStructureMismatch)
}

func TestExtract_NoClues(t *testing.T) {
	html := `<div id="xwd-board"><svg><g role="table"><g></g></g></svg></div>`
	_, err := NewExtractor(defaultSelectors(t), nil).Extract(html)
	assert.ErrorIs(t, err, puzzle.ErrTruncatedInput)
}

func TestExtract_UnlabeledClueIsMismatch(t *testing.T) {
	html := `<div id="xwd-board"><svg><g role="table"></g></svg></div>
<ol><li class="Clue-li--x"><span class="Clue-label--z">1</span><span class="Clue-text--y">kept</span></li>
<li class="Clue-li--x"><span class="Clue-text--y">orphan</span></li></ol>`

	page, err := NewExtractor(defaultSelectors(t), nil).Extract(html)
	require.Error(t, err)
	assert.Nil(t, page)
	assert.ErrorIs(t, err, puzzle.ErrStructureMismatch)
	assert.Contains(t, err.Error(), "orphan")
}

func TestScrapePuzzle_Fixture(t *testing.T) {
	s := &Scraper{
		Fetcher:   FileFetcher{Path: fixture},
		Extractor: NewExtractor(defaultSelectors(t), nil),
		Rows:      5,
		Cols:      5,
	}
	date := time.Date(2020, time.October, 25, 0, 0, 0, 0, time.UTC)

	rec, err := s.ScrapePuzzle(context.Background(), date)
	require.NoError(t, err)

	assert.Equal(t, date, rec.Date)
	assert.False(t, rec.Grid.Entries[0][0].Available)
	assert.Equal(t, puzzle.Cell{Available: true, Label: 6, Letter: "A"}, rec.Grid.Entries[2][0])
	assert.Len(t, rec.Across, 5)
	assert.Len(t, rec.Down, 4)
	assert.Equal(t, "Boot", rec.Down[0].Text)
}

func TestScrapePuzzle_StructureChange(t *testing.T) {
	html := strings.Replace(readFixture(t), `<text class="Cell-hidden"></text><text class="Cell-letter" x="50" y="95">R</text>`,
		`<text class="Cell-letter" x="50" y="95">R</text>`, 1)
	path := filepath.Join(t.TempDir(), "changed.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))

	s := &Scraper{
		Fetcher:   FileFetcher{Path: path},
		Extractor: NewExtractor(defaultSelectors(t), nil),
		Rows:      5,
		Cols:      5,
	}
	_, err := s.ScrapePuzzle(context.Background(), time.Now())
	require.Error(t, err)

	var me *puzzle.MismatchError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 6, me.Index)
	assert.Equal(t, 1, me.Observed)
}

func TestScrapePuzzle_WarnsOnSingleSection(t *testing.T) {
	html := strings.Replace(readFixture(t), `<span class="Clue-label--2IdMY">1</span><span class="Clue-text--3lZl7">Boot</span>`,
		`<span class="Clue-label--2IdMY">9</span><span class="Clue-text--3lZl7">Boot</span>`, 1)
	path := filepath.Join(t.TempDir(), "single.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))

	core, logs := observer.New(zapcore.WarnLevel)
	s := &Scraper{
		Fetcher:   FileFetcher{Path: path},
		Extractor: NewExtractor(defaultSelectors(t), nil),
		Rows:      5,
		Cols:      5,
		Log:       zap.New(core),
	}
	rec, err := s.ScrapePuzzle(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Len(t, rec.Across, 9)
	assert.Empty(t, rec.Down)
	assert.Equal(t, 1, logs.FilterMessage("Clue list has a single section").Len())
}

func TestFileFetcher_Missing(t *testing.T) {
	_, err := FileFetcher{Path: filepath.Join(t.TempDir(), "none.html")}.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileFetcher_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileFetcher{Path: fixture}.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBrowserFetcher_CancelledBeforeLaunch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &BrowserFetcher{URL: "http://127.0.0.1:0", Headless: true, Log: zap.NewNop()}
	start := time.Now()
	_, err := f.Fetch(ctx)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}
