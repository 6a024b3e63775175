package game

import "github.com/vovakirdan/deep-field/internal/astro"

// UpgradePolicy hands the player the next stronger telescope every Every
// ticks. Every == 0 disables upgrades.
type UpgradePolicy struct {
	Catalog *astro.Catalog
	Every   uint64
}

// AcquireTelescopes adds the weakest catalog telescope that beats the
// current power when generation is a multiple of Every.
func (p UpgradePolicy) AcquireTelescopes(s *State, generation uint64) []astro.Telescope {
	if p.Every == 0 || p.Catalog == nil || generation == 0 || generation%p.Every != 0 {
		return nil
	}
	for _, t := range p.Catalog.TelescopesByPower() {
		if t.MaxPower > s.MaxPower() && !s.Owns(t) {
			s.AddTelescope(t)
			return []astro.Telescope{t}
		}
	}
	return nil
}

var (
	_ Acquirer = (*Engine)(nil)
	_ Acquirer = UpgradePolicy{}
)
