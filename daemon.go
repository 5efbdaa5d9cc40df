package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"miniscraper/bank"
	"miniscraper/puzzle"
)

// daemon scrapes the day's puzzle once per calendar day, checking every
// interval and retrying transient failures.
type daemon struct {
	log       *zap.Logger
	bankPath  string
	interval  time.Duration
	retries   int
	retryWait time.Duration
	scrape    func(ctx context.Context, date time.Time) error
	now       func() time.Time
}

func (d *daemon) run(ctx context.Context) error {
	for {
		if err := d.tick(ctx); err != nil && ctx.Err() == nil {
			d.log.Error("Daily scrape failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(d.interval):
		}
	}
}

// tick scrapes today's puzzle unless the bank already has it. A structure
// mismatch is not retried.
func (d *daemon) tick(ctx context.Context) error {
	date, _ := puzzleDate("", d.now())

	stored, err := bank.Contains(d.bankPath, date)
	if err != nil {
		return err
	}
	if stored {
		d.log.Debug("Puzzle already stored", zap.String("date", date.Format(puzzle.DateLayout)))
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= d.retries; attempt++ {
		lastErr = d.scrape(ctx, date)
		if lastErr == nil {
			d.log.Info("Daily scrape succeeded", zap.String("date", date.Format(puzzle.DateLayout)), zap.Int("attempt", attempt))
			return nil
		}
		if errors.Is(lastErr, puzzle.ErrStructureMismatch) || ctx.Err() != nil {
			return lastErr
		}

		d.log.Warn("Scrape attempt failed", zap.Int("attempt", attempt), zap.Error(lastErr))
		if attempt < d.retries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.retryWait):
			}
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", d.retries, lastErr)
}
