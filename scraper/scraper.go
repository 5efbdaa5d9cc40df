package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"miniscraper/puzzle"
	"miniscraper/steps"
)

// Scraper turns a fetched page into a puzzle record.
type Scraper struct {
	Fetcher   Fetcher
	Extractor *Extractor
	Rows      int
	Cols      int
	Log       *zap.Logger
	Steps     *steps.Reporter
}

// ScrapePuzzle fetches the page, classifies the board and partitions the clues.
// Any structure error aborts the run before a record exists, so nothing partial
// can reach the bank.
func (s *Scraper) ScrapePuzzle(ctx context.Context, date time.Time) (*puzzle.Record, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	html, err := s.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching puzzle page: %w", err)
	}

	page, err := s.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	s.Steps.Step("Scraping grid...", zap.Int("fragments", len(page.Cells)))
	grid, err := puzzle.Classify(page.Cells, s.Rows, s.Cols)
	if err != nil {
		return nil, fmt.Errorf("classifying grid: %w", err)
	}

	s.Steps.Step("Scraping clues...", zap.Int("clues", len(page.Clues)))
	sections := puzzle.PartitionClues(page.Clues)
	if warn := sections.Warning(); warn != nil {
		log.Warn("Clue list has a single section", zap.Error(warn), zap.Int("clues", len(page.Clues)))
	}
	log.Debug("Partitioned clues",
		zap.String("anchor", sections.Anchor),
		zap.Int("across", len(sections.Across)),
		zap.Int("down", len(sections.Down)))

	s.Steps.Step("Web-scraping is completed.")
	return puzzle.NewRecord(date, sections, grid), nil
}
