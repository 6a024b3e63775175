package storage

import (
	"testing"

	"github.com/vovakirdan/deep-field/internal/astro"
	"github.com/vovakirdan/deep-field/internal/game"
	"github.com/vovakirdan/deep-field/internal/loop"
)

func TestReporterWritesObservations(t *testing.T) {
	store := openTestStore(t)
	r := NewReporter(store, "session-1", nil)

	sirius := astro.NewObject(astro.CategoryStar, "sirius", "Sirius", astro.T(1, "A bright star."))
	r.Report(loop.TickReport{
		Generation:  3,
		Observation: &game.Observation{Object: sirius, Level: 0, DiscoveryText: "A bright star."},
		Snapshot:    game.Snapshot{MaxPower: 4},
	})
	// Ticks without a discovery are not logged
	r.Report(loop.TickReport{Generation: 4, NothingToObserve: true})

	entries, err := store.SessionObservations("session-1")
	if err != nil {
		t.Fatalf("SessionObservations() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ObjectKey != "sirius" || e.Generation != 3 || e.MaxPower != 4 || e.Category != "Star" {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestReporterWithLoop(t *testing.T) {
	store := openTestStore(t)

	catalog := astro.Default()
	state, err := game.NewSession(catalog, "eye")
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	engine := game.NewEngine(zeroRand{})
	l := loop.New(state, engine, loop.Options{
		Reporters: []loop.Reporter{NewReporter(store, "loop-session", nil)},
	})
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := l.Tick(t.Context()); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}

	entries, err := store.SessionObservations("loop-session")
	if err != nil {
		t.Fatalf("SessionObservations() failed: %v", err)
	}
	// The eye reaches m31 and sirius; the third tick finds nothing left
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %+v", entries)
	}
	if entries[0].ObjectKey != "m31" || entries[1].ObjectKey != "sirius" {
		t.Errorf("unexpected discovery order: %s, %s", entries[0].ObjectKey, entries[1].ObjectKey)
	}
}

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }
