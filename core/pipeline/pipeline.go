// Package pipeline orchestrates one scraping run: discover the station
// list, fan out per-station extraction over a shared OCR engine, merge
// the survivors and publish the Snapshot.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonaslq/vattenkraft-scraper/core"
	"github.com/jonaslq/vattenkraft-scraper/core/discover"
	"github.com/jonaslq/vattenkraft-scraper/core/station"
	"github.com/jonaslq/vattenkraft-scraper/store"
)

// Engine is the OCR engine a run acquires at start and releases once
// every in-flight recognition has completed.
type Engine interface {
	core.Recognizer
	Close() error
}

// Pipeline runs the discover → extract → publish cycle.
type Pipeline struct {
	fetcher    core.Fetcher
	discoverer *discover.Discoverer
	snapshots  *store.Store
	newEngine  func() (Engine, error)
	running    atomic.Bool
}

// New creates a Pipeline. newEngine is invoked once per run so each run
// owns a fresh OCR engine instance.
func New(fetcher core.Fetcher, discoverer *discover.Discoverer, snapshots *store.Store, newEngine func() (Engine, error)) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		discoverer: discoverer,
		snapshots:  snapshots,
		newEngine:  newEngine,
	}
}

// Run executes one full scraping run and publishes the result. A run
// scheduled while a previous one is still active is skipped, so at most
// one OCR engine instance exists per Pipeline at a time. Discovery
// failures count as zero stations; per-station failures are isolated
// and only drop that station from the published Snapshot.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		slog.Info("previous scraping run still active, skipping")
		return nil
	}
	defer p.running.Store(false)

	start := time.Now()

	refs, err := p.discoverer.Stations(ctx)
	if err != nil {
		slog.Error("station discovery failed", "error", err)
		refs = nil
	}
	slog.Info("started scraping", "stations", len(refs))

	engine, err := p.newEngine()
	if err != nil {
		return fmt.Errorf("starting OCR engine: %w", err)
	}

	// Fetches and DOM work run concurrently per station; the engine
	// serializes the OCR calls internally. Results stay indexed so the
	// Snapshot keeps discovery order.
	results := make([]*core.StationResult, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.scrapeStation(ctx, ref, engine)
		}()
	}
	wg.Wait()

	if err := engine.Close(); err != nil {
		slog.Debug("closing OCR engine", "error", err)
	}

	snapshot := make(core.Snapshot, 0, len(refs))
	for _, result := range results {
		if result != nil {
			snapshot = append(snapshot, *result)
		}
	}
	p.snapshots.Set(snapshot)

	slog.Info("scraping finished",
		"stations", len(snapshot),
		"seconds", fmt.Sprintf("%.2f", time.Since(start).Seconds()))
	return nil
}

// scrapeStation fetches and extracts one station. Failures are logged
// and yield nil; they never affect sibling extractions. That includes
// panics out of the extraction path (the OCR engine is cgo-backed), so
// one misbehaving station cannot take down the run.
func (p *Pipeline) scrapeStation(ctx context.Context, ref core.StationRef, rec core.Recognizer) (result *core.StationResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("station extraction panicked", "url", ref.URL, "panic", r)
			result = nil
		}
	}()

	fetched, err := p.fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		slog.Debug("failed to scrape station", "url", ref.URL, "error", err)
		return nil
	}

	result, err = station.Extract(fetched.HTML, rec)
	if err != nil {
		slog.Debug("failed to extract station", "url", ref.URL, "error", err)
		return nil
	}

	// The listing label is the canonical display name; the page title
	// may differ cosmetically.
	result.Fakta.Namn = ref.Name
	return result
}
