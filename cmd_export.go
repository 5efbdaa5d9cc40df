package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"miniscraper/bank"
	"miniscraper/calendar"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bank as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := bank.ReadAll(a.cfg.BankPath, a.cfg.Rows, a.cfg.Cols)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := calendar.Export(f, records, time.Now().UTC()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			a.log.Info("Calendar exported", zap.String("file", out), zap.Int("events", len(records)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "puzzlebank.ics", "output file")
	return cmd
}
