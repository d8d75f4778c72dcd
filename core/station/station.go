// Package station extracts the canonical fact record from one station's
// detail page by combining the label tables, the text normalizer and the
// shared OCR recognizer.
//
// The page exposes .fact-label/.fact-data pairs in two regions: the
// "aside information" region holds descriptive facts as text, while the
// "#water" region renders its numeric readings as inline images that
// must go through OCR.
package station

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonaslq/vattenkraft-scraper/core"
	"github.com/jonaslq/vattenkraft-scraper/core/labels"
	"github.com/jonaslq/vattenkraft-scraper/core/textparse"
)

// Extract builds a StationResult from a station page's HTML. Per-field
// failures (unknown label, unparsable value, failed OCR read) leave that
// field absent and never abort the rest of the record.
func Extract(html string, rec core.Recognizer) (*core.StationResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing station page: %w", err)
	}

	result := &core.StationResult{}
	result.Fakta.Namn = strings.TrimSpace(doc.Find("h1").First().Text())

	doc.Find(".aside-information .fact").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find(".fact-label").Text())

		// Nested spans are decorative unit annotations, not part of
		// the datum; strip them before reading the value text.
		data := s.Find(".fact-data").Clone()
		data.Find("span").Remove()
		value := strings.TrimSpace(data.Text())

		canonical, ok := labels.Fact(label)
		if !ok {
			slog.Debug("unknown fact label", "label", label)
			return
		}
		setFact(&result.Fakta, canonical, value)
	})

	doc.Find("#water .fact").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find(".fact-label").Text())

		src, exists := s.Find("img").Attr("src")
		if !exists || !strings.HasPrefix(src, "data:image") {
			// Water readings only ever render as inline images.
			return
		}

		text, ok := rec.Recognize(src)
		if !ok {
			return
		}

		canonical, ok := labels.Water(label)
		if !ok {
			slog.Debug("unknown water label", "label", label)
			return
		}
		setWater(&result.Vatteninformation, canonical, text)
	})

	return result, nil
}

func setFact(f *core.Facts, field, value string) {
	switch field {
	case "land":
		f.Land = value
	case "vattendrag":
		f.Vattendrag = value
	case "turbintyp":
		f.Turbintyp = value
	case "elektriskEffekt":
		f.ElektriskEffekt = textparse.ParseNumber(value)
	case "fallhojd":
		f.Fallhojd = textparse.ParseNumber(value)
	case "vattenforing":
		f.Vattenforing = textparse.ParseNumber(value)
	case "agarandel":
		f.Agarandel = textparse.ParseNumber(value)
	case "driftStatus":
		operating := labels.Operating(value)
		f.DriftStatus = &operating
	}
	slog.Debug("parsed fact", "field", field, "raw", value)
}

func setWater(w *core.WaterInfo, field, text string) {
	switch field {
	case "senasteUppdatering":
		w.SenasteUppdatering = textparse.ParseTimestamp(text)
	case "ovanDamm":
		w.OvanDamm = textparse.ParseNumber(text)
	case "underDamm":
		w.UnderDamm = textparse.ParseNumber(text)
	case "totalt":
		w.Totalt = textparse.ParseNumber(text)
	case "genomTurbin":
		w.GenomTurbin = textparse.ParseNumber(text)
	case "genomDammLucka":
		w.GenomDammLucka = textparse.ParseNumber(text)
	}
	slog.Debug("parsed water reading", "field", field, "ocr", text)
}
