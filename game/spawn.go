package game

import (
	"fmt"
	"math"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
)

// Seed describes one organism of a replacement population.
type Seed struct {
	Sex       components.Sex
	Brain     *neural.FFNN // nil for a fresh random controller
	Dominance float64      // pack predators only
	Loyalty   float64      // pack predators only
}

// spawnOrganism creates an organism with full energy, a random heading and
// the given controller. Returns its ID.
func (w *World) spawnOrganism(s components.Species, x, y float64, sex components.Sex, brain *neural.FFNN, social components.Social) uint32 {
	id := w.nextID
	w.nextID++

	pos := components.Position{X: x, Y: y}
	mot := components.Motion{Heading: w.rng.Float64() * 2 * math.Pi}
	vit := components.Vitals{Energy: w.cfg.Organism.InitialEnergy, Alive: true}
	rep := components.Reproduction{}
	social.PackID = 0
	org := components.Organism{ID: id, Species: s, Sex: sex}

	entity := w.mapper.NewEntity(&pos, &mot, &vit, &rep, &social, &org)
	w.brains[id] = brain
	w.byID[id] = entity
	w.populations[s] = append(w.populations[s], entity)

	return id
}

// SpawnRandomPopulation adds count organisms with fresh controllers and
// alternating sexes. Pack predators are placed around shared dens and
// grouped into new packs.
func (w *World) SpawnRandomPopulation(count int, s components.Species) {
	ids := make([]uint32, 0, count)
	var den systems.Point
	for i := range count {
		x, y := w.spawnPosition(s, i, &den)
		ids = append(ids, w.spawnOrganism(s, x, y, components.Sex(i%2), neural.NewFFNN(w.rng, w.topology[s]), w.randomSocial(s)))
	}
	if s == components.PackPredator {
		w.formPacks(ids)
	}
}

// SpawnResources adds count food items at random positions.
func (w *World) SpawnResources(count int) {
	d := &w.cfg.Derived
	for range count {
		w.resources = append(w.resources, components.Resource{
			X:      w.uniform(d.FoodMinX, d.FoodMaxX),
			Y:      w.uniform(d.FoodMinY, d.FoodMaxY),
			Energy: w.cfg.Resource.Energy,
		})
	}
}

// ReplacePopulation removes every member of a species and spawns the seeds
// at fresh positions. The world takes ownership of each seed's controller.
// Pack predators are regrouped into fresh packs.
func (w *World) ReplacePopulation(s components.Species, seeds []Seed) {
	for _, e := range w.populations[s] {
		w.removeOrganism(e, false)
	}
	clear(w.populations[s])
	w.populations[s] = w.populations[s][:0]

	var den systems.Point
	for i, seed := range seeds {
		brain := seed.Brain
		if brain == nil {
			brain = neural.NewFFNN(w.rng, w.topology[s])
		}
		if !brain.Topology().Equal(w.topology[s]) {
			panic(fmt.Sprintf("game: seed topology %s does not match %s topology %s", brain.Topology(), s, w.topology[s]))
		}

		var social components.Social
		if s == components.PackPredator {
			social.Dominance = seed.Dominance
			social.Loyalty = seed.Loyalty
		}
		x, y := w.spawnPosition(s, i, &den)
		w.spawnOrganism(s, x, y, seed.Sex, brain, social)
	}

	if s == components.PackPredator {
		w.RegroupPacks()
	}
}

// spawnPosition picks a spawn point for the i-th organism of a batch. Pack
// predators share a den every InitialSize organisms.
func (w *World) spawnPosition(s components.Species, i int, den *systems.Point) (float64, float64) {
	d := &w.cfg.Derived
	if s != components.PackPredator {
		return w.uniform(d.SpawnMinX, d.SpawnMaxX), w.uniform(d.SpawnMinY, d.SpawnMaxY)
	}

	if i%max(w.cfg.Pack.InitialSize, 1) == 0 {
		den.X = w.uniform(d.SpawnMinX, d.SpawnMaxX)
		den.Y = w.uniform(d.SpawnMinY, d.SpawnMaxY)
	}
	sc := w.cfg.Pack.DenScatter
	x := min(max(den.X+w.uniform(-sc, sc), d.SpawnMinX), d.SpawnMaxX)
	y := min(max(den.Y+w.uniform(-sc, sc), d.SpawnMinY), d.SpawnMaxY)
	return x, y
}

// randomSocial draws social traits for a fresh organism.
func (w *World) randomSocial(s components.Species) components.Social {
	if s != components.PackPredator {
		return components.Social{}
	}
	return components.Social{
		Dominance: w.rng.Float64(),
		Loyalty:   w.rng.Float64(),
	}
}

// inheritTrait perturbs a parent's trait with Gaussian noise, kept in [0, 1].
func (w *World) inheritTrait(parent float64) float64 {
	return min(max(parent+w.rng.NormFloat64()*w.cfg.Organism.TraitNoise, 0), 1)
}

func (w *World) uniform(lo, hi float64) float64 {
	return lo + w.rng.Float64()*(hi-lo)
}

func (w *World) clampX(x float64) float64 {
	return min(max(x, 0), w.bounds.Width-1)
}

func (w *World) clampY(y float64) float64 {
	return min(max(y, 0), w.bounds.Height-1)
}
