package loop

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/deep-field/internal/astro"
	"github.com/vovakirdan/deep-field/internal/core"
	"github.com/vovakirdan/deep-field/internal/game"
)

// SessionConfig describes a fresh game session.
type SessionConfig struct {
	Catalog        *astro.Catalog
	StartTelescope string
	Seed           int64  // 0 = time based
	UpgradeEvery   uint64 // 0 = no automatic upgrades
}

// NewSession builds the state, engine and loop for one player. Options
// are passed through; an explicit Acquirer wins over UpgradeEvery.
func NewSession(cfg SessionConfig, opts Options) (*Loop, error) {
	state, err := game.NewSession(cfg.Catalog, cfg.StartTelescope)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := game.NewEngine(rand.New(rand.NewSource(seed)))

	if opts.Acquirer == nil && cfg.UpgradeEvery > 0 {
		opts.Acquirer = game.UpgradePolicy{Catalog: cfg.Catalog, Every: cfg.UpgradeEvery}
	}
	return New(state, engine, opts), nil
}

// ObserveAt forwards a pointer observation at canvas position p to the
// engine.
func (l *Loop) ObserveAt(p core.Point) (game.Observation, error) {
	return l.engine.ObserveAt(l.state, p)
}
