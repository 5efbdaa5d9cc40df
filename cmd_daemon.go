package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"miniscraper/site"
	"miniscraper/steps"
)

func newDaemonCmd(a *app) *cobra.Command {
	var (
		htmlPath string
		serve    bool
	)

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Scrape the puzzle once a day, optionally serving the bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st := steps.New(a.log, false, 0)
			fetcher := a.fetcher(htmlPath, st)
			d := &daemon{
				log:       a.log,
				bankPath:  a.cfg.BankPath,
				interval:  a.cfg.Daemon.Interval,
				retries:   a.cfg.Daemon.Retries,
				retryWait: a.cfg.Daemon.RetryWait,
				scrape: func(ctx context.Context, date time.Time) error {
					ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
					defer cancel()
					_, err := a.scrapeAndStore(ctx, fetcher, st, date, nil)
					return err
				},
				now: time.Now,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return d.run(gctx) })
			if serve {
				srv := site.New(a.cfg.BankPath, a.cfg.Rows, a.cfg.Cols, a.log)
				g.Go(func() error {
					return srv.ListenAndServe(gctx, a.cfg.Serve.Addr, a.cfg.Serve.Cert, a.cfg.Serve.Key)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "read a saved page instead of opening the browser")
	cmd.Flags().BoolVar(&serve, "serve", false, "also serve the bank over HTTP")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest puzzle, the calendar feed and the bank over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := site.New(a.cfg.BankPath, a.cfg.Rows, a.cfg.Cols, a.log)
			return srv.ListenAndServe(ctx, a.cfg.Serve.Addr, a.cfg.Serve.Cert, a.cfg.Serve.Key)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default: :8100)")
	_ = a.v.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
