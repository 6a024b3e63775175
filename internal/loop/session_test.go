package loop

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/deep-field/internal/astro"
	"github.com/vovakirdan/deep-field/internal/core"
	"github.com/vovakirdan/deep-field/internal/game"
)

func TestNewSession(t *testing.T) {
	l, err := NewSession(SessionConfig{Catalog: astro.Default(), StartTelescope: "eye", Seed: 1}, Options{})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if l.Status() != StatusIdle {
		t.Errorf("expected idle loop, got %s", l.Status())
	}
	snap := l.Snapshot()
	if snap.MaxPower != 4 || len(snap.Telescopes) != 1 {
		t.Errorf("unexpected starting snapshot: %+v", snap)
	}
}

func TestNewSessionUnknownTelescope(t *testing.T) {
	_, err := NewSession(SessionConfig{Catalog: astro.Default(), StartTelescope: "hubble"}, Options{})
	if !errors.Is(err, astro.ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestNewSessionUpgrades(t *testing.T) {
	l, err := NewSession(SessionConfig{
		Catalog:        astro.Default(),
		StartTelescope: "eye",
		Seed:           1,
		UpgradeEvery:   1,
	}, Options{})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	report, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if len(report.Acquired) != 1 || report.Acquired[0].Key != "refractor_2in" {
		t.Errorf("expected refractor upgrade on first tick, got %+v", report.Acquired)
	}
	if report.Snapshot.MaxPower != 10 {
		t.Errorf("MaxPower = %d, expected 10", report.Snapshot.MaxPower)
	}
}

func TestLoopObserveAt(t *testing.T) {
	l, err := NewSession(SessionConfig{Catalog: astro.Default(), StartTelescope: "eye", Seed: 1}, Options{})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	before := l.Snapshot()
	_, err = l.ObserveAt(core.XY(400, 300))
	if !errors.Is(err, game.ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
	if after := l.Snapshot(); len(after.Observed) != len(before.Observed) {
		t.Error("ObserveAt must not change the state")
	}
}
