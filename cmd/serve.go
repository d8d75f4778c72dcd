// Package cmd — serve command.
// Runs the daemon: an immediate first scraping run, the cron schedule
// for subsequent runs, and the read API.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonaslq/vattenkraft-scraper/config"
	"github.com/jonaslq/vattenkraft-scraper/core/discover"
	"github.com/jonaslq/vattenkraft-scraper/core/fetch"
	"github.com/jonaslq/vattenkraft-scraper/core/ocr"
	"github.com/jonaslq/vattenkraft-scraper/core/pipeline"
	"github.com/jonaslq/vattenkraft-scraper/server"
	"github.com/jonaslq/vattenkraft-scraper/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scraper daemon and the read API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	snapshots := store.New()
	p := newPipeline(cfg, snapshots)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSpec(), func() {
		if err := p.Run(ctx); err != nil {
			slog.Error("scheduled scraping run failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling scraper: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.RunOnStart {
		go func() {
			if err := p.Run(ctx); err != nil {
				slog.Error("initial scraping run failed", "error", err)
			}
		}()
	}

	slog.Info("server running", "addr", cfg.ListenAddr(), "schedule", cfg.CronSpec())
	return server.New(cfg, snapshots).Run(ctx)
}

// newPipeline wires the pipeline stages from configuration.
func newPipeline(cfg config.Config, snapshots *store.Store) *pipeline.Pipeline {
	fetcher := fetch.NewWithOptions(cfg.RequestTimeout, cfg.UserAgent)
	discoverer := discover.New(fetcher, cfg.ListingURL, cfg.BaseURL)
	return pipeline.New(fetcher, discoverer, snapshots, func() (pipeline.Engine, error) {
		return ocr.New()
	})
}

// setupLogging installs the process-wide slog handler; DEBUG_MODE turns
// on the per-field diagnostics.
func setupLogging(cfg config.Config) {
	level := slog.LevelInfo
	if cfg.DebugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
