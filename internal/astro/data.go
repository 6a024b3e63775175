package astro

// DefaultObjects returns the built-in objects.
func DefaultObjects() []Object {
	return []Object{
		NewObject(CategoryStar, "sirius", "Sirius",
			T(1, "You can see the Dog Star! Your eyes must be working."),
			T(10, "You've observed Sirius B, the double star to Sirius A!"),
		),
		NewObject(CategoryGalaxy, "m31", "M31 Andromeda Galaxy",
			T(3, "Andromeda is larger than you thought."),
			T(6, "You can make out the core of the Andromeda Galaxy."),
			T(12, "Hey! You can see the spiral arms of the Andromeda Galaxy!"),
		),
		NewObject(CategoryAlienShip, "aliens", "aliens!!",
			T(7, "Huh, that looks weird."),
			T(8, "Umm.. it looks green?"),
			T(11, "WTF?? That is definitely a flying saucer!"),
		),
	}
}

// DefaultTelescopes returns the built-in telescopes, weakest first.
func DefaultTelescopes() []Telescope {
	return []Telescope{
		{Key: "eye", Name: "The naked eye", MaxPower: 4, Description: "Nature's built-in telescope"},
		{Key: "refractor_2in", Name: `Cheap 2" refractor`, MaxPower: 10, Description: "You have a more powerful scope than Galileo did!"},
		{Key: "reflector_6in", Name: `Solid 6" reflector`, MaxPower: 13, Description: "Reflectors are much more compact than refractors"},
		{Key: "dobsonian_20in", Name: `A 20" Dobsonian`, MaxPower: 18, Description: "Basically a big bucket for light"},
		{Key: "keck", Name: "The Keck Observatory 10M", MaxPower: 20, Description: "Built on sacred Hawaiian land"},
	}
}
