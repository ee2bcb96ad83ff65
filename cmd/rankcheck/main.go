package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/standings/internal/rankcheck"
	"github.com/okian/standings/pkg/logger"
	"github.com/spf13/cobra"
)

// Default configuration constants.
const (
	defaultBatches   = 100
	defaultBatchSize = 1000
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultRPS       = 50
	defaultTimeout   = 30 * time.Second
	defaultRunLimit  = 10 * time.Minute
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &rankcheck.Config{}
	var logFormat string

	cmd := &cobra.Command{
		Use:           "rankcheck",
		Short:         "Submit random leaderboards to a standings server and verify their ranks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithFormat(logFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if cfg.Verbose {
				_ = logger.SetLevelString("debug")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, defaultRunLimit)
			defer cancel()

			if _, err := rankcheck.Run(ctx, cfg); err != nil {
				logger.Get().Error(ctx, "rank check failed", logger.Error(err))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	flags.IntVar(&cfg.Batches, "batches", defaultBatches, "Number of leaderboards to submit")
	flags.IntVar(&cfg.BatchSize, "size", defaultBatchSize, "Results per leaderboard")
	flags.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
	flags.Float64Var(&cfg.RPS, "rps", defaultRPS, "Request rate limit, 0 for unlimited")
	flags.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	flags.StringVar(&cfg.Direction, "direction", "desc", "Ranking direction: desc or asc")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flags.StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	return cmd
}
