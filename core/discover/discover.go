// Package discover locates the station inventory that the listing page
// embeds as a JavaScript object-literal array inside a <script> element,
// normalizes it into valid JSON, and projects the hydropower stations
// worth scraping into StationRefs.
package discover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonaslq/vattenkraft-scraper/core"
)

// blobMarker identifies the inline script block carrying the inventory.
const blobMarker = "docs: ["

// ErrNoEmbeddedData reports that no script block contained the inventory.
var ErrNoEmbeddedData = errors.New("no embedded station data found in listing page")

// docsRegex captures the object-literal array between the opening
// "docs: [" delimiter and the closing "], i18n:" delimiter.
var docsRegex = regexp.MustCompile(`(?s)docs:\s*\[\s*(.*?)\s*\],\s*i18n:`)

// bareKeyRegex matches unquoted object keys ("label:", "sm_field_status:").
var bareKeyRegex = regexp.MustCompile(`(\w+):`)

// stationDoc is one record of the embedded inventory. The tag fields are
// small lists, so filtering is membership, not equality.
type stationDoc struct {
	Label      string   `json:"label"`
	Status     []string `json:"sm_field_status"`
	Countries  []string `json:"sm_vid_Countries"`
	Types      []string `json:"sm_vid_Types"`
	SourcePath string   `json:"ss_field_source_path"`
}

// Discoverer finds the stations to scrape from the listing page.
type Discoverer struct {
	fetcher    core.Fetcher
	listingURL string
	baseURL    string
}

// New creates a Discoverer fetching listingURL and resolving station
// detail pages against baseURL.
func New(fetcher core.Fetcher, listingURL, baseURL string) *Discoverer {
	return &Discoverer{fetcher: fetcher, listingURL: listingURL, baseURL: baseURL}
}

// Stations fetches the listing page and returns one StationRef per
// hydropower station that is in operation in Sweden. A missing or
// unparsable inventory yields an error; callers treat that as zero
// stations discovered for the run.
func (d *Discoverer) Stations(ctx context.Context) ([]core.StationRef, error) {
	result, err := d.fetcher.Fetch(ctx, d.listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching listing page: %w", err)
	}
	return d.FromHTML(result.HTML)
}

// FromHTML extracts StationRefs from an already fetched listing document.
func (d *Discoverer) FromHTML(html string) ([]core.StationRef, error) {
	blob, err := extractBlob(html)
	if err != nil {
		return nil, err
	}

	var docs []stationDoc
	if err := json.Unmarshal([]byte(normalizeBlob(blob)), &docs); err != nil {
		return nil, fmt.Errorf("parsing embedded station data: %w", err)
	}

	refs := make([]core.StationRef, 0, len(docs))
	for _, doc := range docs {
		if !hasTag(doc.Status, "inoperation") ||
			!hasTag(doc.Countries, "Sweden") ||
			!hasTag(doc.Types, "Hydro") {
			continue
		}
		refs = append(refs, core.StationRef{
			Name: doc.Label,
			URL:  joinURL(d.baseURL, doc.SourcePath),
		})
	}

	slog.Debug("filtered embedded station inventory", "total", len(docs), "kept", len(refs))
	return refs, nil
}

// extractBlob scans every script element for the inventory marker and
// returns the raw object-literal text between the known delimiters.
func extractBlob(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing listing HTML: %w", err)
	}

	var blob string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		script := s.Text()
		if !strings.Contains(script, blobMarker) {
			return true
		}
		if m := docsRegex.FindStringSubmatch(script); m != nil {
			blob = strings.TrimSpace(m[1])
			return false
		}
		return true
	})

	if blob == "" {
		return "", ErrNoEmbeddedData
	}
	return blob, nil
}

// normalizeBlob rewrites the JavaScript object-literal text into valid
// JSON: quote bare keys, switch single quotes to double quotes, and wrap
// the whole thing as an array. Kept as one pure function so it can be
// swapped for a relaxed-syntax parser without touching callers.
func normalizeBlob(blob string) string {
	normalized := bareKeyRegex.ReplaceAllString(blob, `"$1":`)
	normalized = strings.ReplaceAll(normalized, "'", `"`)
	return "[" + normalized + "]"
}

// hasTag reports membership of want in a tag list.
func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

// joinURL concatenates the site base URL with a record's source path.
func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
