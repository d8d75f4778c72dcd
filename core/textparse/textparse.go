// Package textparse turns loosely formatted numeric and date strings
// into typed values. The inputs come from page text and from OCR output,
// which is noisy; every function here fails soft and lets the caller
// decide what a missing value means.
package textparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numberRegex matches the first run of digits, dots, commas, spaces and
// hyphens. Spaces are included because the source formats thousands
// groups with them ("1 234,5 m").
var numberRegex = regexp.MustCompile(`[0-9.,\- ]+`)

// multiDotRegex collapses locale artifacts where a thousands-dot and a
// decimal-comma both survive into the cleaned string ("12..3").
var multiDotRegex = regexp.MustCompile(`\.{2,}`)

// ParseNumber extracts the first numeric-looking substring from text and
// parses it as a float. Commas are treated as decimal separators and
// internal whitespace is stripped. Returns nil when no candidate exists
// or the candidate does not parse.
func ParseNumber(text string) *float64 {
	candidate := numberRegex.FindString(text)
	if candidate == "" {
		return nil
	}

	cleaned := strings.ReplaceAll(candidate, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = multiDotRegex.ReplaceAllString(cleaned, ".")

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// timestampLayout is the civil-time format the source renders its
// "last update" reading in.
const timestampLayout = "2006-01-02 15:04:05"

// sourceZone is the civil time zone the source timestamps are expressed
// in. Falls back to a fixed CET offset when the system has no tzdata.
var sourceZone = loadSourceZone()

func loadSourceZone() *time.Location {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		return time.FixedZone("CET", 1*60*60)
	}
	return loc
}

// ParseTimestamp interprets an OCR string expected to be in the form
// "yyyy-MM-dd HH:mm:ss" (Stockholm time) and renders it as RFC 3339.
// Input that does not match the pattern is passed through trimmed rather
// than dropped: a human-readable best-effort value beats data loss.
func ParseTimestamp(text string) string {
	trimmed := strings.TrimSpace(text)
	t, err := time.ParseInLocation(timestampLayout, trimmed, sourceZone)
	if err != nil {
		return trimmed
	}
	return t.Format(time.RFC3339)
}
