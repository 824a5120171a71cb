// Package evo replaces populations generation by generation using elitism,
// fitness-weighted selection, crossover and mutation of controllers.
package evo

import (
	"log/slog"
	"math/rand/v2"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/game"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// Manager decides when a generation ends and breeds the next one.
type Manager struct {
	world *game.World
	cfg   *config.Config
	rng   *rand.Rand
}

// NewManager creates a manager for world. It must share the goroutine that
// ticks the world.
func NewManager(world *game.World, cfg *config.Config, rng *rand.Rand) *Manager {
	return &Manager{world: world, cfg: cfg, rng: rng}
}

// ShouldEvolve reports whether any species is depleted or the generation
// has run past its tick budget.
func (m *Manager) ShouldEvolve() bool {
	return m.Depleted() || m.world.GenerationTimer() > m.cfg.Evolution.GenerationTicks
}

// Depleted reports whether any species has fallen below the depletion
// fraction of its target size.
func (m *Manager) Depleted() bool {
	for _, s := range components.AllSpecies {
		if float64(m.world.Population(s)) < float64(m.target(s))*m.cfg.Evolution.DepletionFraction {
			return true
		}
	}
	return false
}

// Evolve replaces every species' population with a bred generation, then
// advances the generation counter and scatters fresh food. Returns one
// report per species describing the replaced population.
func (m *Manager) Evolve() []telemetry.GenerationReport {
	gen := m.world.Generation()
	tick := m.world.CurrentTick()
	slog.Info("evolution", "generation", gen, "tick", tick)

	reports := make([]telemetry.GenerationReport, 0, components.NumSpecies)
	for _, s := range components.AllSpecies {
		members := m.world.Members(s)
		report := Summarize(members, gen, tick, s)
		slog.Info("generation_report", "report", report)
		reports = append(reports, report)

		m.world.OfferToHall(s)
		m.world.ReplacePopulation(s, m.EvolvePopulation(members, m.target(s), s))
	}

	m.world.SetGeneration(gen + 1)
	m.world.SpawnResources(m.cfg.Resource.PostEvolution)
	return reports
}

func (m *Manager) target(s components.Species) int {
	switch s {
	case components.Herbivore:
		return m.cfg.Species.Herbivore.Target
	case components.SoloPredator:
		return m.cfg.Species.SoloPredator.Target
	default:
		return m.cfg.Species.PackPredator.Target
	}
}
