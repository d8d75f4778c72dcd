// Package core defines the data model and stage interfaces for the
// vattenkraft scraping pipeline. Each stage is a small, testable interface.
package core

import "context"

// StationRef identifies one hydropower station discovered on the listing
// page. It is immutable once created.
type StationRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Facts holds the descriptive data read from a station's "aside
// information" region. Numeric fields are pointers so that an absent or
// unparsable value serializes as a missing key rather than a zero.
type Facts struct {
	Namn            string   `json:"namn,omitempty"`
	Land            string   `json:"land,omitempty"`
	ElektriskEffekt *float64 `json:"elektriskEffekt,omitempty"`
	Vattendrag      string   `json:"vattendrag,omitempty"`
	Fallhojd        *float64 `json:"fallhojd,omitempty"`
	Vattenforing    *float64 `json:"vattenforing,omitempty"`
	Turbintyp       string   `json:"turbintyp,omitempty"`
	Agarandel       *float64 `json:"agarandel,omitempty"`
	DriftStatus     *bool    `json:"driftStatus,omitempty"`
}

// WaterInfo holds the time-varying hydrological readings. The source
// renders these as inline images, so every value passes through OCR.
// SenasteUppdatering is an RFC 3339 timestamp when the OCR text parsed,
// otherwise the raw recognized text.
type WaterInfo struct {
	OvanDamm           *float64 `json:"ovanDamm,omitempty"`
	UnderDamm          *float64 `json:"underDamm,omitempty"`
	Totalt             *float64 `json:"totalt,omitempty"`
	GenomTurbin        *float64 `json:"genomTurbin,omitempty"`
	GenomDammLucka     *float64 `json:"genomDammLucka,omitempty"`
	SenasteUppdatering string   `json:"senasteUppdatering,omitempty"`
}

// StationResult is the unit produced per station.
type StationResult struct {
	Fakta             Facts     `json:"fakta"`
	Vatteninformation WaterInfo `json:"vatteninformation"`
}

// Snapshot is the complete result set of one pipeline run. It replaces
// the previous snapshot wholesale; readers never see a partial update.
type Snapshot []StationResult

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Recognizer recovers text from an inline base64-encoded raster image
// (a data: URI). ok is false when nothing could be recognized; callers
// treat that as "field not available", never as a fatal condition.
type Recognizer interface {
	Recognize(dataURI string) (text string, ok bool)
}
