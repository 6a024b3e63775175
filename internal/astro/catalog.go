package astro

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownKey is returned when a catalog lookup names a key that does not exist.
var ErrUnknownKey = errors.New("unknown key")

// Catalog holds the immutable objects and telescopes of a game.
type Catalog struct {
	objects    []Object
	telescopes map[string]Telescope
	byKey      map[string]int
}

// New builds a catalog and validates it.
func New(objects []Object, telescopes []Telescope) (*Catalog, error) {
	c := &Catalog{
		objects:    make([]Object, 0, len(objects)),
		telescopes: make(map[string]Telescope, len(telescopes)),
		byKey:      make(map[string]int, len(objects)),
	}

	for _, obj := range objects {
		if err := validateObject(obj); err != nil {
			return nil, err
		}
		if _, dup := c.byKey[obj.Key]; dup {
			return nil, fmt.Errorf("astro: duplicate object key %q", obj.Key)
		}
		c.byKey[obj.Key] = len(c.objects)
		c.objects = append(c.objects, cloneObject(obj))
	}

	for _, t := range telescopes {
		if t.Key == "" {
			return nil, errors.New("astro: telescope with empty key")
		}
		if t.MaxPower <= 0 {
			return nil, fmt.Errorf("astro: telescope %q: max power must be positive, got %d", t.Key, t.MaxPower)
		}
		if _, dup := c.telescopes[t.Key]; dup {
			return nil, fmt.Errorf("astro: duplicate telescope key %q", t.Key)
		}
		c.telescopes[t.Key] = t
	}

	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultObjects(), DefaultTelescopes())
	if err != nil {
		panic(fmt.Sprintf("astro: built-in catalog is invalid: %v", err))
	}
	return c
}

func validateObject(obj Object) error {
	if obj.Key == "" {
		return errors.New("astro: object with empty key")
	}
	if len(obj.Detail) == 0 {
		return fmt.Errorf("astro: object %q has no detail tiers", obj.Key)
	}
	if !obj.Category.Valid() {
		return fmt.Errorf("astro: object %q has unknown category %q", obj.Key, string(obj.Category))
	}
	lowest := obj.Detail[0].PowerNeeded
	for i, d := range obj.Detail {
		if d.Level != i {
			return fmt.Errorf("astro: object %q: tier %d has level %d", obj.Key, i, d.Level)
		}
		if i > 0 && d.PowerNeeded < obj.Detail[i-1].PowerNeeded {
			return fmt.Errorf("astro: object %q: tier %d threshold %d is below tier %d", obj.Key, i, d.PowerNeeded, i-1)
		}
		if d.PowerNeeded < lowest {
			lowest = d.PowerNeeded
		}
	}
	if obj.PowerNeeded != lowest {
		return fmt.Errorf("astro: object %q: power needed %d does not match lowest tier %d", obj.Key, obj.PowerNeeded, lowest)
	}
	return nil
}

func cloneObject(obj Object) Object {
	obj.Detail = append([]Detail(nil), obj.Detail...)
	return obj
}

// Objects returns every object in catalog order.
func (c *Catalog) Objects() []Object {
	out := make([]Object, len(c.objects))
	for i, obj := range c.objects {
		out[i] = cloneObject(obj)
	}
	return out
}

// Object looks up an object by key.
func (c *Catalog) Object(key string) (Object, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Object{}, fmt.Errorf("astro: object %q: %w", key, ErrUnknownKey)
	}
	return cloneObject(c.objects[i]), nil
}

// Telescope looks up a telescope by key.
func (c *Catalog) Telescope(key string) (Telescope, error) {
	t, ok := c.telescopes[key]
	if !ok {
		return Telescope{}, fmt.Errorf("astro: telescope %q: %w", key, ErrUnknownKey)
	}
	return t, nil
}

// TelescopesByPower returns all telescopes sorted by power, then key.
func (c *Catalog) TelescopesByPower() []Telescope {
	out := make([]Telescope, 0, len(c.telescopes))
	for _, t := range c.telescopes {
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
