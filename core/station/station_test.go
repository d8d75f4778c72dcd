package station

import (
	"encoding/base64"
	"testing"
)

// fakeRecognizer returns canned text keyed by the inline image's base64
// payload.
type fakeRecognizer struct {
	texts map[string]string
}

func (f *fakeRecognizer) Recognize(dataURI string) (string, bool) {
	text, ok := f.texts[dataURI]
	return text, ok
}

func imageURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func fact(label, value string) string {
	return `<div class="fact"><div class="fact-label">` + label + `</div><div class="fact-data">` + value + `</div></div>`
}

func waterFact(label, imgSrc string) string {
	return `<div class="fact"><div class="fact-label">` + label + `</div><div class="fact-data"><img src="` + imgSrc + `"/></div></div>`
}

func TestExtractFacts(t *testing.T) {
	html := `<html><body><h1> Älvkarleby </h1>
<div class="aside-information">` +
		fact("Land", "Sverige") +
		fact("Elektrisk effekt", `98 <span>MW</span>`) +
		fact("Fallhöjd", `23,5 <span>m</span>`) +
		fact("Turbintyp", "Kaplan") +
		fact("Status", "I drift") +
		fact("Byggår", "1915") + // unknown label, dropped
		`</div></body></html>`

	result, err := Extract(html, &fakeRecognizer{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	f := result.Fakta
	if f.Namn != "Älvkarleby" {
		t.Errorf("Namn = %q, want Älvkarleby", f.Namn)
	}
	if f.Land != "Sverige" {
		t.Errorf("Land = %q, want Sverige", f.Land)
	}
	if f.ElektriskEffekt == nil || *f.ElektriskEffekt != 98 {
		t.Errorf("ElektriskEffekt = %v, want 98", f.ElektriskEffekt)
	}
	if f.Fallhojd == nil || *f.Fallhojd != 23.5 {
		t.Errorf("Fallhojd = %v, want 23.5", f.Fallhojd)
	}
	if f.Turbintyp != "Kaplan" {
		t.Errorf("Turbintyp = %q, want Kaplan", f.Turbintyp)
	}
	if f.DriftStatus == nil || !*f.DriftStatus {
		t.Errorf("DriftStatus = %v, want true", f.DriftStatus)
	}
	if f.Vattendrag != "" || f.Vattenforing != nil || f.Agarandel != nil {
		t.Errorf("unexpected values for absent fields: %+v", f)
	}
}

func TestExtractStripsAnnotationSpans(t *testing.T) {
	// The nested span holds a unit annotation; it must not leak into
	// the parsed value.
	html := `<html><body>
<div class="aside-information">` +
		fact("Vattenföring", `225<span><sup>m3</sup>/s</span>`) +
		`</div></body></html>`

	result, err := Extract(html, &fakeRecognizer{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Fakta.Vattenforing == nil || *result.Fakta.Vattenforing != 225 {
		t.Errorf("Vattenforing = %v, want 225", result.Fakta.Vattenforing)
	}
}

func TestExtractWaterInfo(t *testing.T) {
	above := imageURI("above")
	through := imageURI("through")
	updated := imageURI("updated")
	failing := imageURI("failing")

	html := `<html><body><div id="water">` +
		waterFact("Ovan damm", above) +
		waterFact("Genom turbin", through) +
		waterFact("Senaste uppdatering", updated) +
		waterFact("Under damm", failing) + // OCR fails for this one
		fact("Totalt", "42") + // text instead of image, skipped
		`</div></body></html>`

	rec := &fakeRecognizer{texts: map[string]string{
		above:   "55,3",
		through: "120",
		updated: "2024-03-15 08:30:00",
	}}

	result, err := Extract(html, rec)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	w := result.Vatteninformation
	if w.OvanDamm == nil || *w.OvanDamm != 55.3 {
		t.Errorf("OvanDamm = %v, want 55.3", w.OvanDamm)
	}
	if w.GenomTurbin == nil || *w.GenomTurbin != 120 {
		t.Errorf("GenomTurbin = %v, want 120", w.GenomTurbin)
	}
	if w.SenasteUppdatering == "" || w.SenasteUppdatering == "2024-03-15 08:30:00" {
		t.Errorf("SenasteUppdatering = %q, want RFC 3339 timestamp", w.SenasteUppdatering)
	}
	if w.UnderDamm != nil {
		t.Errorf("UnderDamm = %v, want nil when OCR fails", *w.UnderDamm)
	}
	if w.Totalt != nil {
		t.Errorf("Totalt = %v, want nil for non-image content", *w.Totalt)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	result, err := Extract("<html><body></body></html>", &fakeRecognizer{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Fakta.Namn != "" {
		t.Errorf("Namn = %q, want empty", result.Fakta.Namn)
	}
}
