// Package game holds the mutable observation state of a session and the
// engine operations that advance it.
//
// A State partitions every loaded object into exactly one of three sets:
// unobservable (needs more power than the player has), observable (reachable
// but not yet looked at) and observed (looked at, with the detail level that
// was reached). Objects only ever move forward through these sets.
package game

import (
	"sort"

	"github.com/vovakirdan/deep-field/internal/astro"
)

// Observation is a recorded look at an object.
type Observation struct {
	Object        astro.Object
	Level         int
	DiscoveryText string
}

// State is the mutable session aggregate. It is not safe for concurrent use;
// a single owner (the game loop) mutates it.
type State struct {
	telescopes   map[astro.Telescope]struct{}
	maxPower     int
	unobservable map[string]astro.Object
	observable   map[string]astro.Object
	observed     map[string]Observation
}

// New returns an empty state: no telescopes and zero power.
func New() *State {
	return &State{
		telescopes:   make(map[astro.Telescope]struct{}),
		unobservable: make(map[string]astro.Object),
		observable:   make(map[string]astro.Object),
		observed:     make(map[string]Observation),
	}
}

// Load places each object into observable or unobservable according to the
// current power. Objects are keyed by Key; loading a key that is already
// known is rejected before anything is inserted.
func (s *State) Load(objects []astro.Object) error {
	seen := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		if _, dup := seen[obj.Key]; dup || s.known(obj.Key) {
			return &PreconditionError{Op: "load", Key: obj.Key, Reason: "object already loaded"}
		}
		seen[obj.Key] = struct{}{}
	}

	for _, obj := range objects {
		if obj.PowerNeeded <= s.maxPower {
			s.observable[obj.Key] = obj
		} else {
			s.unobservable[obj.Key] = obj
		}
	}
	return nil
}

func (s *State) known(key string) bool {
	if _, ok := s.unobservable[key]; ok {
		return true
	}
	if _, ok := s.observable[key]; ok {
		return true
	}
	_, ok := s.observed[key]
	return ok
}

// AddTelescope adds t to the owned set, raises the maximum power if t is
// stronger and moves newly reachable objects into observable. Adding a
// telescope that is already owned changes nothing. It returns the objects
// that became observable, sorted by key.
func (s *State) AddTelescope(t astro.Telescope) []astro.Object {
	if t.MaxPower > s.maxPower {
		s.maxPower = t.MaxPower
	}
	s.telescopes[t] = struct{}{}

	var unlocked []astro.Object
	for key, obj := range s.unobservable {
		if obj.PowerNeeded <= s.maxPower {
			delete(s.unobservable, key)
			s.observable[key] = obj
			unlocked = append(unlocked, obj)
		}
	}
	sortObjects(unlocked)
	return unlocked
}

// RecordObservation moves obj from observable into observed at level.
// The state is left unchanged when it returns an error.
func (s *State) RecordObservation(obj astro.Object, level int) error {
	if _, done := s.observed[obj.Key]; done {
		return &PreconditionError{Op: "observe", Key: obj.Key, Reason: "already observed"}
	}
	current, ok := s.observable[obj.Key]
	if !ok {
		return &PreconditionError{Op: "observe", Key: obj.Key, Reason: "not observable"}
	}
	detail, ok := current.DetailAt(level)
	if !ok {
		return &PreconditionError{Op: "observe", Key: obj.Key, Reason: "detail level out of range"}
	}

	delete(s.observable, obj.Key)
	s.observed[obj.Key] = Observation{
		Object:        current,
		Level:         level,
		DiscoveryText: detail.DiscoveryText,
	}
	return nil
}

// MaxPower returns the strongest owned telescope's power, or 0.
func (s *State) MaxPower() int {
	return s.maxPower
}

// Owns reports whether t is in the owned set.
func (s *State) Owns(t astro.Telescope) bool {
	_, ok := s.telescopes[t]
	return ok
}

// Telescopes returns the owned telescopes, weakest first.
func (s *State) Telescopes() []astro.Telescope {
	out := make([]astro.Telescope, 0, len(s.telescopes))
	for t := range s.telescopes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaxPower != out[j].MaxPower {
			return out[i].MaxPower < out[j].MaxPower
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Observable returns the observable objects sorted by key.
func (s *State) Observable() []astro.Object {
	return sortedValues(s.observable)
}

// Unobservable returns the unobservable objects sorted by key.
func (s *State) Unobservable() []astro.Object {
	return sortedValues(s.unobservable)
}

// Observed returns the recorded observations sorted by object key.
func (s *State) Observed() []Observation {
	out := make([]Observation, 0, len(s.observed))
	for _, o := range s.observed {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Object.Key < out[j].Object.Key
	})
	return out
}

// ObservedLevel returns the level recorded for key.
func (s *State) ObservedLevel(key string) (int, bool) {
	o, ok := s.observed[key]
	return o.Level, ok
}

// ObservableCount returns the number of observable objects.
func (s *State) ObservableCount() int {
	return len(s.observable)
}

// ObservedCount returns the number of observed objects.
func (s *State) ObservedCount() int {
	return len(s.observed)
}

func sortedValues(m map[string]astro.Object) []astro.Object {
	out := make([]astro.Object, 0, len(m))
	for _, obj := range m {
		out = append(out, obj)
	}
	sortObjects(out)
	return out
}

func sortObjects(objs []astro.Object) {
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].Key < objs[j].Key
	})
}
