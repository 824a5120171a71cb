// Package components defines ECS components for the simulation.
package components

// Position represents an organism's world position.
type Position struct {
	X, Y float64
}

// Motion holds the steering state written by the controller each tick.
type Motion struct {
	Heading float64 `inspect:"angle"` // radians
	Speed   float64 `inspect:"label,fmt:%.2f"`
}

// Vitals tracks an organism's metabolic state.
// Alive is cleared when the organism dies; the world removes it at the end
// of the species pass.
type Vitals struct {
	Energy float64 `inspect:"bar,max:200"`
	Age    int     `inspect:"label"`
	Alive  bool    `inspect:"bool"`
}

// Reproduction holds the mating state machine counters.
type Reproduction struct {
	Cooldown    int    `inspect:"label"` // ticks until the organism may mate again
	Gestation   int    `inspect:"label"` // ticks until birth while pregnant
	Pregnant    bool   `inspect:"bool"`
	MateSeeking bool   `inspect:"bool"`
	LastMate    uint32 `inspect:"skip"` // organism ID of the previous mate, 0 if none
}

// Social holds pack affiliation and traits. Only pack predators carry
// meaningful values; the other species keep the zero value.
type Social struct {
	PackID         uint32  `inspect:"label"` // 0 = unaffiliated
	Dominance      float64 `inspect:"bar"`
	Loyalty        float64 `inspect:"bar"`
	SignalCooldown int     `inspect:"label"`
	SignalTicks    int     `inspect:"label"` // remaining ticks of the recent-signal flag
	HuntCooldown   int     `inspect:"label"`
}

// Signalling reports whether the organism howled recently.
func (s *Social) Signalling() bool {
	return s.SignalTicks > 0
}

// Resource is a consumable food item. Resources live outside the ECS in a
// plain slice owned by the world.
type Resource struct {
	X, Y   float64
	Energy float64
}
