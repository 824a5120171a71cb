package game

import (
	"log/slog"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
)

// RespawnExtinct repopulates every species that has died out and returns the
// species it respawned. Pack predators are grouped into fresh packs.
func (w *World) RespawnExtinct() []components.Species {
	var respawned []components.Species
	for _, s := range components.AllSpecies {
		if len(w.populations[s]) > 0 {
			continue
		}
		n := w.respawnCount(s)
		if n <= 0 {
			continue
		}

		fromHall := w.cfg.Population.ReseedFromHall && w.hall.Size(s) > 0
		if fromHall {
			w.ReplacePopulation(s, w.hallSeeds(s, n))
		} else {
			w.SpawnRandomPopulation(n, s)
		}

		slog.Info("species_respawned",
			"species", s.String(),
			"count", n,
			"from_hall", fromHall,
			"generation", w.generation,
			"tick", w.tick,
		)
		respawned = append(respawned, s)
	}
	return respawned
}

func (w *World) respawnCount(s components.Species) int {
	pc := &w.cfg.Population
	switch s {
	case components.Herbivore:
		return pc.RespawnHerbivores
	case components.SoloPredator:
		return pc.RespawnSoloPredators
	default:
		return pc.RespawnPackPredators
	}
}

// hallSeeds builds n seeds from mutated copies of the hall of fame
// controllers, cycling through the entries best first. Entries recorded
// under a different topology fall back to fresh controllers.
func (w *World) hallSeeds(s components.Species, n int) []Seed {
	ec := &w.cfg.Evolution
	entries := w.hall.Entries(s)
	want := w.topology[s].String()

	seeds := make([]Seed, n)
	for i := range seeds {
		social := w.randomSocial(s)
		seeds[i] = Seed{
			Sex:       components.Sex(i % 2),
			Dominance: social.Dominance,
			Loyalty:   social.Loyalty,
		}

		entry := entries[i%len(entries)]
		if entry.Topology != want {
			continue
		}
		brain := neural.NewFFNN(w.rng, w.topology[s])
		brain.SetParams(entry.Params)
		brain.Mutate(w.rng, ec.MutationRate, ec.MutationStrength)
		seeds[i].Brain = brain
	}
	return seeds
}
