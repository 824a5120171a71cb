package systems

import (
	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
)

// Metabolize ages the organism by one tick and charges its metabolic cost.
func Metabolize(v *components.Vitals, cost float64) {
	v.Age++
	v.Energy -= cost
}

// AccrueFitness rewards survival while energy is positive and penalizes
// starvation otherwise.
func AccrueFitness(org *components.Organism, v *components.Vitals, cfg *config.OrganismConfig) {
	if v.Energy > 0 {
		org.Fitness += cfg.SurvivalFitness
	} else {
		org.Fitness += cfg.StarvationFitness
	}
}

// CheckDeath clears Alive once energy is depleted or the species' maximum age
// is reached. Returns true if the organism died this call.
func CheckDeath(v *components.Vitals, maxAge int) bool {
	if !v.Alive {
		return false
	}
	if v.Energy <= 0 || v.Age >= maxAge {
		v.Alive = false
		return true
	}
	return false
}

// GainEnergy adds energy up to the cap.
func GainEnergy(v *components.Vitals, amount, maxEnergy float64) {
	v.Energy = min(v.Energy+amount, maxEnergy)
}
