package game

import "github.com/vovakirdan/deep-field/internal/astro"

// Snapshot is a read-only copy of a State for reporting and rendering.
type Snapshot struct {
	Telescopes   []astro.Telescope
	MaxPower     int
	Observable   []astro.Object
	Unobservable []astro.Object
	Observed     []Observation
}

// Snapshot returns a deep copy of the state. Mutating the result never
// affects s.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Telescopes:   s.Telescopes(),
		MaxPower:     s.maxPower,
		Observable:   cloneObjects(s.Observable()),
		Unobservable: cloneObjects(s.Unobservable()),
		Observed:     s.Observed(),
	}
	for i := range snap.Observed {
		snap.Observed[i].Object = cloneObject(snap.Observed[i].Object)
	}
	return snap
}

// Total returns the number of objects across all three sets.
func (s Snapshot) Total() int {
	return len(s.Observable) + len(s.Unobservable) + len(s.Observed)
}

func cloneObjects(objs []astro.Object) []astro.Object {
	for i := range objs {
		objs[i] = cloneObject(objs[i])
	}
	return objs
}

func cloneObject(obj astro.Object) astro.Object {
	obj.Detail = append([]astro.Detail(nil), obj.Detail...)
	return obj
}
