package store

import (
	"sync"
	"testing"

	"github.com/jonaslq/vattenkraft-scraper/core"
)

func TestEmptyIsNotNil(t *testing.T) {
	s := New()
	if s.Get() == nil {
		t.Fatal("initial snapshot is nil; it must serialize as []")
	}
}

func TestSetReplacesWholesale(t *testing.T) {
	s := New()

	first := core.Snapshot{{Fakta: core.Facts{Namn: "A"}}, {Fakta: core.Facts{Namn: "B"}}}
	s.Set(first)

	second := core.Snapshot{{Fakta: core.Facts{Namn: "C"}}}
	s.Set(second)

	got := s.Get()
	if len(got) != 1 || got[0].Fakta.Namn != "C" {
		t.Errorf("Get = %+v, want only C", got)
	}
}

func TestConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := "S"
			if i%2 == 0 {
				s.Set(core.Snapshot{{Fakta: core.Facts{Namn: name}}, {Fakta: core.Facts{Namn: name}}})
			} else {
				snap := s.Get()
				// A snapshot is replaced wholesale; readers never see
				// a half-written one.
				if len(snap) != 0 && len(snap) != 2 {
					t.Errorf("observed partial snapshot of length %d", len(snap))
				}
			}
		}()
	}
	wg.Wait()
}
