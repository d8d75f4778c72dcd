// Package output writes a Snapshot to disk for one-shot runs.
// The filename is derived from the listing host (e.g.,
// powerplants_vattenfall_com.json).
package output

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jonaslq/vattenkraft-scraper/core"
)

// Writer writes snapshot JSON to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteSnapshot writes the snapshot as indented JSON, naming the file
// after the host of sourceURL.
func (w *Writer) WriteSnapshot(sourceURL string, snapshot core.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}

	path := filepath.Join(w.OutputDir, filenameFromURL(sourceURL)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// filenameFromURL converts a URL's host into a flat filename.
// Example: https://powerplants.vattenfall.com/ → powerplants_vattenfall_com
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return sanitize(rawURL)
	}
	return sanitize(parsed.Host)
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			out = append(out, ch)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
