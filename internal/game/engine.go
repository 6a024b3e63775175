package game

import (
	"fmt"

	"github.com/vovakirdan/deep-field/internal/astro"
	"github.com/vovakirdan/deep-field/internal/core"
)

// Rand is the random source used to pick objects. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Acquirer decides which telescopes the player gains on a tick.
type Acquirer interface {
	AcquireTelescopes(s *State, generation uint64) []astro.Telescope
}

// Engine applies observation rules to a State.
type Engine struct {
	rng Rand
}

// NewEngine creates an engine drawing from rng.
func NewEngine(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// NewSession builds a state holding every catalog object and owning the
// starting telescope.
func NewSession(catalog *astro.Catalog, startKey string) (*State, error) {
	start, err := catalog.Telescope(startKey)
	if err != nil {
		return nil, fmt.Errorf("game: starting telescope: %w", err)
	}

	s := New()
	if err := s.Load(catalog.Objects()); err != nil {
		return nil, err
	}
	s.AddTelescope(start)
	return s, nil
}

// ResolveDetailLevel returns the level of the last tier whose threshold is
// within power. When no tier qualifies it returns 0.
func ResolveDetailLevel(obj astro.Object, power int) int {
	level := 0
	for _, d := range obj.Detail {
		if d.PowerNeeded <= power {
			level = d.Level
		}
	}
	return level
}

// ObserveRandomObject picks an observable object uniformly at random,
// resolves its detail level at the current power and records it.
// It returns ErrNothingToObserve, leaving s unchanged, when nothing is
// observable.
func (e *Engine) ObserveRandomObject(s *State) (Observation, error) {
	candidates := s.Observable()
	if len(candidates) == 0 {
		return Observation{}, ErrNothingToObserve
	}

	obj := candidates[e.rng.Intn(len(candidates))]
	level := ResolveDetailLevel(obj, s.MaxPower())
	if err := s.RecordObservation(obj, level); err != nil {
		return Observation{}, err
	}

	o := s.observed[obj.Key]
	return o, nil
}

// AcquireTelescopes grants nothing. Telescopes becoming available over time
// is handled by an UpgradePolicy when one is configured.
func (e *Engine) AcquireTelescopes(_ *State, _ uint64) []astro.Telescope {
	return nil
}

// ObserveAt is the entry point for player-aimed observations at a point on
// the sky canvas. No selection rule exists yet, so it always returns
// ErrNotImplemented and leaves s unchanged.
func (e *Engine) ObserveAt(_ *State, p core.Point) (Observation, error) {
	return Observation{}, fmt.Errorf("game: observe at (%.0f, %.0f): %w", p.X, p.Y, ErrNotImplemented)
}
