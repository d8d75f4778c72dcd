// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vattenkraft",
	Short: "vattenkraft — scrape Vattenfall's Swedish hydropower stations",
	Long: `vattenkraft periodically scrapes the Vattenfall power plant pages,
recovers the image-rendered water readings via OCR, and publishes the
aggregated snapshot over a small read API.

Usage:
  vattenkraft serve
  vattenkraft scrape [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
