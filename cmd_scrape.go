package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"miniscraper/bank"
	"miniscraper/display"
	"miniscraper/puzzle"
	"miniscraper/scraper"
	"miniscraper/steps"
)

func newScrapeCmd(a *app) *cobra.Command {
	var (
		htmlPath  string
		dateFlag  string
		ask       bool
		noDisplay bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape today's puzzle, show it and append it to the bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stepMode := a.cfg.Step
			if ask {
				var err error
				if stepMode, err = steps.AskMode(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			st := steps.New(a.log, stepMode, a.cfg.StepDelay)

			date, err := puzzleDate(dateFlag, time.Now())
			if err != nil {
				return err
			}

			var out io.Writer
			if !noDisplay {
				out = cmd.OutOrStdout()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
			defer cancel()
			_, err = a.scrapeAndStore(ctx, a.fetcher(htmlPath, st), st, date, out)
			return err
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "read a saved page instead of opening the browser")
	cmd.Flags().StringVar(&dateFlag, "date", "", "puzzle date as YY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&ask, "ask", false, "prompt for single-stepping mode")
	cmd.Flags().BoolVar(&noDisplay, "no-display", false, "do not print the puzzle")
	cmd.Flags().Bool("step", false, "single-stepping mode")
	_ = a.v.BindPFlag("step", cmd.Flags().Lookup("step"))

	return cmd
}

// fetcher reads htmlPath when set and drives the browser otherwise.
func (a *app) fetcher(htmlPath string, st *steps.Reporter) scraper.Fetcher {
	if htmlPath != "" {
		return scraper.FileFetcher{Path: htmlPath}
	}
	return scraper.NewBrowserFetcher(a.cfg, a.log, st)
}

// scrapeAndStore runs one scrape for date, prints the puzzle to out when out is
// not nil, and appends it to the bank. A failed scrape stores nothing.
func (a *app) scrapeAndStore(ctx context.Context, fetcher scraper.Fetcher, st *steps.Reporter, date time.Time, out io.Writer) (*puzzle.Record, error) {
	s := &scraper.Scraper{
		Fetcher:   fetcher,
		Extractor: scraper.NewExtractor(a.cfg.Selectors, a.log),
		Rows:      a.cfg.Rows,
		Cols:      a.cfg.Cols,
		Log:       a.log,
		Steps:     st,
	}

	rec, err := s.ScrapePuzzle(ctx, date)
	if err != nil {
		a.log.Error("Scrape failed, nothing stored", zap.Error(err))
		return nil, err
	}

	if out != nil {
		st.Step("Printing the web contents...")
		fmt.Fprintln(out, display.Render(rec, time.Now()))
	}

	st.Step("Storing today's puzzle...", zap.String("bank", a.cfg.BankPath))
	if err := bank.Append(a.cfg.BankPath, rec); err != nil {
		return nil, err
	}
	a.log.Info("Puzzle stored",
		zap.String("date", rec.Date.Format(puzzle.DateLayout)),
		zap.Int("across", len(rec.Across)),
		zap.Int("down", len(rec.Down)),
		zap.String("bank", a.cfg.BankPath))
	st.Step("Done.")
	return rec, nil
}

// puzzleDate parses a YY-MM-DD flag, or takes the calendar day of now.
func puzzleDate(flag string, now time.Time) (time.Time, error) {
	if flag == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(puzzle.DateLayout, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YY-MM-DD: %w", flag, err)
	}
	return date, nil
}
