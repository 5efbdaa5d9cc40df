package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"miniscraper/bank"
	"miniscraper/display"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the most recent puzzle in the bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := bank.ReadLast(a.cfg.BankPath, a.cfg.Rows, a.cfg.Cols)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.Render(rec, time.Now()))
			return nil
		},
	}
}
