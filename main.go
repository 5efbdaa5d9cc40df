package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"miniscraper/config"
	"miniscraper/puzzle"
)

// Exit statuses.
const (
	exitFailure           = 1
	exitStructureMismatch = 2
)

// app carries what every subcommand needs once the root has run.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "miniscraper",
		Short: "Scrape the daily mini crossword into a flat puzzle bank",
		Long: `miniscraper opens the daily mini crossword, reveals the solution, reads the
grid and clues from the page, shows them, and appends the puzzle as one line
to the puzzle bank (puzzlebank.txt).

The bank can be shown, exported as an iCalendar feed, published to GitHub or
served over HTTP. The daemon command scrapes once a day on its own.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log == nil {
				zcfg := zap.NewProductionConfig()
				if a.verbose {
					zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := zcfg.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.log = logger
			}

			cfg, err := config.LoadConfig(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log.Debug("Configuration loaded", zap.String("file", a.v.ConfigFileUsed()), zap.String("bank", cfg.BankPath))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./config.json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().String("bank", "", "puzzle bank file (default: puzzlebank.txt)")
	_ = a.v.BindPFlag("bank_path", root.PersistentFlags().Lookup("bank"))

	root.AddCommand(
		newScrapeCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newPublishCmd(a),
		newDaemonCmd(a),
		newServeCmd(a),
	)
	return root
}

func exitCode(err error) int {
	if errors.Is(err, puzzle.ErrStructureMismatch) {
		return exitStructureMismatch
	}
	return exitFailure
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
