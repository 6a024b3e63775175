// Package astro defines the static catalog of the game: the astronomical
// objects a player can observe and the telescopes that let them do it.
// Everything in this package is immutable once built.
package astro

import (
	"fmt"
	"math"
)

// Category groups objects for display. No game rule depends on it.
type Category string

const (
	CategoryStar      Category = "star"
	CategoryGalaxy    Category = "galaxy"
	CategoryAlienShip Category = "alien_ship"
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case CategoryStar:
		return "Star"
	case CategoryGalaxy:
		return "Galaxy"
	case CategoryAlienShip:
		return "AlienShip"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStar, CategoryGalaxy, CategoryAlienShip:
		return true
	}
	return false
}

// Detail is one discovery tier of an object.
type Detail struct {
	Level         int    // Zero-based, dense within the object
	PowerNeeded   int    // Minimum resolving power to perceive this tier
	DiscoveryText string // Shown when the tier is first reached
}

// Object is an observable target.
type Object struct {
	Key         string
	Name        string
	Category    Category
	PowerNeeded int // Minimum over Detail thresholds
	Detail      []Detail
}

// String describes the object for log lines and listings.
func (o Object) String() string {
	return fmt.Sprintf("%q, a %s with %d levels of observable detail", o.Name, o.Category, len(o.Detail))
}

// Telescope is an acquirable observing device. Telescopes are comparable
// values and set membership is by value.
type Telescope struct {
	Key         string
	Name        string
	Description string
	MaxPower    int
}

// Threshold is the (power, text) pair a catalog author writes for each tier.
type Threshold struct {
	Power int
	Text  string
}

// T is shorthand for building a Threshold in catalog literals.
func T(power int, text string) Threshold {
	return Threshold{Power: power, Text: text}
}

// NewObject builds an object from its thresholds, assigning levels in order
// and computing PowerNeeded as the smallest threshold.
func NewObject(category Category, key, name string, tiers ...Threshold) Object {
	obj := Object{
		Key:         key,
		Name:        name,
		Category:    category,
		PowerNeeded: math.MaxInt,
		Detail:      make([]Detail, 0, len(tiers)),
	}
	for _, tier := range tiers {
		obj.Detail = append(obj.Detail, Detail{
			Level:         len(obj.Detail),
			PowerNeeded:   tier.Power,
			DiscoveryText: tier.Text,
		})
		if tier.Power < obj.PowerNeeded {
			obj.PowerNeeded = tier.Power
		}
	}
	return obj
}

// DetailAt returns the tier at level, or false when level is out of range.
func (o Object) DetailAt(level int) (Detail, bool) {
	if level < 0 || level >= len(o.Detail) {
		return Detail{}, false
	}
	return o.Detail[level], true
}
