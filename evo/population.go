package evo

import (
	"cmp"
	"slices"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/game"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// EvolvePopulation breeds a replacement population of exactly target seeds
// from members. The members are ranked by fitness; the top fraction forms
// the elite breeding pool, a few elites carry over unchanged and the rest
// are crossover children or mutated clones of fitness-weighted elites.
// Sexes are balanced toward an even split. An empty input yields a fresh
// random population.
//
// Controllers in members are only read; every seed owns a new controller.
func (m *Manager) EvolvePopulation(members []game.Member, target int, s components.Species) []game.Seed {
	if len(members) == 0 {
		return m.CreateRandomPopulation(target, s)
	}
	ec := &m.cfg.Evolution

	ranked := slices.Clone(members)
	slices.SortStableFunc(ranked, func(a, b game.Member) int {
		return cmp.Compare(b.Fitness, a.Fitness)
	})

	eliteSize := min(max(ec.MinElite, int(float64(len(ranked))*ec.EliteFraction)), len(ranked))
	elite := ranked[:eliteSize]

	seeds := make([]game.Seed, 0, target)
	for _, sv := range selectSurvivors(elite, min(len(elite), target/ec.SurvivorDivisor)) {
		seeds = append(seeds, game.Seed{
			Sex:       sv.Sex,
			Brain:     sv.Brain.Clone(),
			Dominance: sv.Dominance,
			Loyalty:   sv.Loyalty,
		})
	}

	balance := sexBalancer{target: target}
	for _, sd := range seeds {
		if sd.Sex == components.Female {
			balance.females++
		} else {
			balance.males++
		}
	}

	for len(seeds) < target {
		sex := balance.next(m.rng)

		var brain *neural.FFNN
		var parent game.Member
		if len(elite) >= 2 && m.rng.Float64() < ec.CrossoverChance {
			a, b := pickPair(m.rng, elite, ec.MinParentWeight)
			brain = neural.Crossover(m.rng, a.Brain, b.Brain)
			parent = a
		} else {
			parent = pickWeighted(m.rng, elite, ec.MinParentWeight)
			brain = parent.Brain.Clone()
		}
		brain.Mutate(m.rng, ec.MutationRate, ec.MutationStrength)

		seed := game.Seed{Sex: sex, Brain: brain}
		if s == components.PackPredator {
			seed.Dominance = m.inheritTrait(parent.Dominance)
			seed.Loyalty = m.inheritTrait(parent.Loyalty)
		}
		seeds = append(seeds, seed)
	}
	return seeds
}

// CreateRandomPopulation returns size seeds with fresh controllers and
// alternating sexes, starting with male.
func (m *Manager) CreateRandomPopulation(size int, s components.Species) []game.Seed {
	seeds := make([]game.Seed, size)
	for i := range seeds {
		seeds[i].Sex = components.Sex(i % 2)
		if s == components.PackPredator {
			seeds[i].Dominance = m.rng.Float64()
			seeds[i].Loyalty = m.rng.Float64()
		}
	}
	return seeds
}

func (m *Manager) inheritTrait(parent float64) float64 {
	return min(max(parent+m.rng.NormFloat64()*m.cfg.Organism.TraitNoise, 0), 1)
}

// Summarize reports on a population about to be replaced.
func Summarize(members []game.Member, generation, tick int, s components.Species) telemetry.GenerationReport {
	r := telemetry.GenerationReport{
		Generation: generation,
		Tick:       tick,
		Species:    s.String(),
		Population: len(members),
	}
	fitness := make([]float64, len(members))
	for i, mb := range members {
		fitness[i] = mb.Fitness
		r.Children += mb.Children
		r.Kills += mb.Kills
		if mb.Sex == components.Female {
			r.Females++
		} else {
			r.Males++
		}
	}
	r.MeanFitness, r.StdFitness, r.MaxFitness = telemetry.SummarizeFitness(fitness)
	return r
}
