package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"miniscraper/config"
	"miniscraper/puzzle"
)

// Extractor pulls cell and clue fragments out of page markup.
type Extractor struct {
	sel config.Selectors
	log *zap.Logger
}

// NewExtractor returns an extractor using sel to locate the board and clues.
func NewExtractor(sel config.Selectors, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{sel: sel, log: log}
}

// Extract parses pageHTML. The token lists are returned as found; deciding
// what a list of a given length means is left to puzzle.Classify.
func (e *Extractor) Extract(pageHTML string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	board := doc.Find(e.sel.Board).First()
	if board.Length() == 0 {
		return nil, fmt.Errorf("%w: board %q not found", puzzle.ErrStructureMismatch, e.sel.Board)
	}

	page := &Page{}
	board.Find(e.sel.Cell).Each(func(i int, s *goquery.Selection) {
		tokens := s.Find(e.sel.Token).Map(func(_ int, t *goquery.Selection) string {
			return strings.TrimSpace(t.Text())
		})
		page.Cells = append(page.Cells, puzzle.CellFragment(tokens))
	})
	e.log.Debug("Extracted board", zap.Int("cells", len(page.Cells)))

	var clueErr error
	doc.Find(e.sel.ClueItem).EachWithBreak(func(i int, s *goquery.Selection) bool {
		label := strings.TrimSpace(s.Find(e.sel.ClueLabel).First().Text())
		text := strings.TrimSpace(s.Find(e.sel.ClueText).First().Text())
		if label == "" {
			clueErr = fmt.Errorf("%w: clue %d (%q) has no label matching %q", puzzle.ErrStructureMismatch, i, text, e.sel.ClueLabel)
			return false
		}
		page.Clues = append(page.Clues, puzzle.Clue{Number: label, Text: text})
		return true
	})
	if clueErr != nil {
		return nil, clueErr
	}
	if len(page.Clues) == 0 {
		return nil, fmt.Errorf("%w: no clues matched %q", puzzle.ErrTruncatedInput, e.sel.ClueItem)
	}
	e.log.Debug("Extracted clues", zap.Int("clues", len(page.Clues)))

	return page, nil
}
