package systems

import (
	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
)

// TickTimers decrements the reproduction and social counters. Returns true
// when gestation reaches exactly zero while pregnant, meaning the organism
// gives birth this tick.
func TickTimers(r *components.Reproduction, s *components.Social) bool {
	if r.Cooldown > 0 {
		r.Cooldown--
	}
	if s.SignalCooldown > 0 {
		s.SignalCooldown--
	}
	if s.SignalTicks > 0 {
		s.SignalTicks--
	}
	if s.HuntCooldown > 0 {
		s.HuntCooldown--
	}
	if r.Gestation > 0 {
		r.Gestation--
		return r.Gestation == 0 && r.Pregnant
	}
	return false
}

// CanReproduce reports mating eligibility: enough energy, adult, off
// cooldown and not pregnant.
func CanReproduce(v *components.Vitals, r *components.Reproduction, cfg *config.OrganismConfig) bool {
	return v.Energy > cfg.ReproEnergy &&
		v.Age > cfg.MaturityAge &&
		r.Cooldown == 0 &&
		!r.Pregnant
}

// Mate is the state of one organism taking part in a mating.
type Mate struct {
	ID    uint32
	Org   *components.Organism
	Vital *components.Vitals
	Repro *components.Reproduction
}

// Conceive applies a successful mating to both partners: cooldowns, last
// mate references and fitness for both, pregnancy and the conception cost
// for the female.
func Conceive(a, b Mate, cfg *config.OrganismConfig) {
	for _, m := range [2]Mate{a, b} {
		if m.Org.Sex == components.Female {
			m.Repro.Pregnant = true
			m.Repro.Gestation = cfg.Gestation
			m.Vital.Energy -= cfg.ConceptionCost
		}
		m.Repro.Cooldown = cfg.MatingCooldown
		m.Repro.MateSeeking = false
		m.Org.Fitness += cfg.MatingFitness
	}
	a.Repro.LastMate = b.ID
	b.Repro.LastMate = a.ID
}

// GiveBirth clears the pregnancy and charges the mother.
func GiveBirth(org *components.Organism, v *components.Vitals, r *components.Reproduction, cfg *config.OrganismConfig) {
	r.Pregnant = false
	r.Gestation = 0
	org.Children++
	v.Energy -= cfg.BirthCost
}

// MateCandidate is an organism considered by FindMate.
type MateCandidate struct {
	Point
	Sex      components.Sex
	Eligible bool
}

// FindMate returns the index of the nearest eligible opposite-sex candidate
// strictly within radius, skipping self, the previous mate and anything
// excluded. Ties keep the earliest candidate. Returns -1 if none.
func FindMate(self MateCandidate, lastMate uint32, candidates []MateCandidate, radius float64, excluded func(id uint32) bool) int {
	best := -1
	bestSq := radius * radius
	for i, c := range candidates {
		if c.ID == self.ID || c.Sex == self.Sex || !c.Eligible {
			continue
		}
		if lastMate != 0 && c.ID == lastMate {
			continue
		}
		if excluded != nil && excluded(c.ID) {
			continue
		}
		dsq := DistanceSq(self.X, self.Y, c.X, c.Y)
		if dsq < bestSq {
			best = i
			bestSq = dsq
		}
	}
	return best
}
