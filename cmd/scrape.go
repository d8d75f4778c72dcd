// Package cmd — scrape command.
// Performs one scraping run and writes the resulting snapshot, which is
// handy for debugging an extraction without standing up the daemon.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonaslq/vattenkraft-scraper/config"
	"github.com/jonaslq/vattenkraft-scraper/core/output"
	"github.com/jonaslq/vattenkraft-scraper/store"
)

var flagOutputDir string

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scraping pass and print or write the snapshot",
	Args:  cobra.NoArgs,
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write the snapshot JSON under this directory instead of stdout")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	snapshots := store.New()
	if err := newPipeline(cfg, snapshots).Run(context.Background()); err != nil {
		return err
	}
	snapshot := snapshots.Get()

	if flagOutputDir == "" {
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling snapshot: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteSnapshot(cfg.ListingURL, snapshot)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}
