package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonaslq/vattenkraft-scraper/config"
	"github.com/jonaslq/vattenkraft-scraper/core"
	"github.com/jonaslq/vattenkraft-scraper/store"
)

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func TestStationsEmptyBeforeFirstRun(t *testing.T) {
	s := New(config.Config{}, store.New())

	rec := get(t, s, "/api/vattenkraftstationer")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestStationsServesLatestSnapshot(t *testing.T) {
	snapshots := store.New()
	s := New(config.Config{}, snapshots)

	capacity := 98.0
	snapshots.Set(core.Snapshot{
		{Fakta: core.Facts{Namn: "Station A", ElektriskEffekt: &capacity}},
	})

	rec := get(t, s, "/api/vattenkraftstationer")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d stations, want 1", len(got))
	}

	var fakta map[string]any
	if err := json.Unmarshal(got[0]["fakta"], &fakta); err != nil {
		t.Fatalf("fakta: %v", err)
	}
	if fakta["namn"] != "Station A" || fakta["elektriskEffekt"] != 98.0 {
		t.Errorf("fakta = %v", fakta)
	}
	if _, present := fakta["fallhojd"]; present {
		t.Error("absent numeric field serialized as a key")
	}
}

func TestRequestLoggingUsesSlog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	s := New(config.Config{}, store.New())
	get(t, s, "/healthz")

	logged := buf.String()
	if !strings.Contains(logged, "/healthz") || !strings.Contains(logged, "status=200") {
		t.Errorf("access log missing from slog output: %q", logged)
	}
}

func TestHealthz(t *testing.T) {
	s := New(config.Config{}, store.New())
	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
