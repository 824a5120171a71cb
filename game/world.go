// Package game owns the simulated world: populations, resources and packs,
// advanced one tick at a time.
package game

import (
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// World holds the complete simulation state.
type World struct {
	cfg    *config.Config
	rng    *rand.Rand
	bounds systems.Bounds

	world *ecs.World

	// Entity mapper for creation
	mapper *ecs.Map6[
		components.Position,
		components.Motion,
		components.Vitals,
		components.Reproduction,
		components.Social,
		components.Organism,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	motMap    *ecs.Map1[components.Motion]
	vitMap    *ecs.Map1[components.Vitals]
	reproMap  *ecs.Map1[components.Reproduction]
	socialMap *ecs.Map1[components.Social]
	orgMap    *ecs.Map1[components.Organism]

	// Brain storage (per organism ID)
	brains map[uint32]*neural.FFNN
	byID   map[uint32]ecs.Entity

	// Living collections in population order
	populations [components.NumSpecies][]ecs.Entity
	resources   []components.Resource
	packs       []*systems.Pack

	species  [components.NumSpecies]*config.SpeciesConfig
	topology [components.NumSpecies]neural.Topology
	lookup   systems.Lookup

	// Query scratch space, rebuilt per query
	rosters     [components.NumSpecies]roster
	foodPoints  []systems.Point
	mateScratch []systems.MateCandidate
	packScratch []ecs.Entity

	// State
	tick            int
	generationTimer int
	generation      int
	nextID          uint32 // 0 is reserved for "none"
	nextPackID      uint32

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	hall      *telemetry.HallOfFame
}

// New creates an empty world. Call SpawnInitial to seed it.
func New(cfg *config.Config, rng *rand.Rand) *World {
	world := ecs.NewWorld()

	w := &World{
		cfg:    cfg,
		rng:    rng,
		bounds: systems.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		world:  world,
		mapper: ecs.NewMap6[
			components.Position,
			components.Motion,
			components.Vitals,
			components.Reproduction,
			components.Social,
			components.Organism,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		motMap:     ecs.NewMap1[components.Motion](world),
		vitMap:     ecs.NewMap1[components.Vitals](world),
		reproMap:   ecs.NewMap1[components.Reproduction](world),
		socialMap:  ecs.NewMap1[components.Social](world),
		orgMap:     ecs.NewMap1[components.Organism](world),
		brains:     make(map[uint32]*neural.FFNN),
		byID:       make(map[uint32]ecs.Entity),
		generation: 1,
		nextID:     1,
		nextPackID: 1,
		collector:  telemetry.NewCollector(cfg.Telemetry.ReportInterval),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.ReportInterval),
		hall:       telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
	}

	w.species = [components.NumSpecies]*config.SpeciesConfig{
		components.Herbivore:    &cfg.Species.Herbivore,
		components.SoloPredator: &cfg.Species.SoloPredator,
		components.PackPredator: &cfg.Species.PackPredator,
	}
	for _, s := range components.AllSpecies {
		w.topology[s] = behaviors[s].topology(w.species[s])
	}
	w.lookup = w.packMember

	return w
}

// SpawnInitial seeds every species at its target size and the initial food.
func (w *World) SpawnInitial() {
	for _, s := range components.AllSpecies {
		w.SpawnRandomPopulation(w.species[s].Target, s)
	}
	w.SpawnResources(w.cfg.Resource.Initial)
}

// Config returns the configuration the world was built with.
func (w *World) Config() *config.Config {
	return w.cfg
}

// Topology returns the controller topology of a species.
func (w *World) Topology(s components.Species) neural.Topology {
	return w.topology[s]
}

// CurrentTick returns the number of ticks advanced so far.
func (w *World) CurrentTick() int {
	return w.tick
}

// Generation returns the generation counter, starting at 1.
func (w *World) Generation() int {
	return w.generation
}

// SetGeneration sets the generation counter and resets the generation timer.
func (w *World) SetGeneration(g int) {
	w.generation = g
	w.generationTimer = 0
}

// GenerationTimer returns the ticks elapsed since the last generation.
func (w *World) GenerationTimer() int {
	return w.generationTimer
}

// Population returns the living count of a species.
func (w *World) Population(s components.Species) int {
	return len(w.populations[s])
}

// Events returns the windowed event collector.
func (w *World) Events() *telemetry.Collector {
	return w.collector
}

// Perf returns the tick phase timer.
func (w *World) Perf() *telemetry.PerfCollector {
	return w.perf
}

// HallOfFame returns the best organisms seen so far.
func (w *World) HallOfFame() *telemetry.HallOfFame {
	return w.hall
}

// packByID returns the pack with the given id, or nil.
func (w *World) packByID(id uint32) *systems.Pack {
	if id == 0 {
		return nil
	}
	for _, p := range w.packs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// packMember resolves a pack member for systems.Pack.
func (w *World) packMember(id uint32) (systems.PackMember, bool) {
	e, ok := w.byID[id]
	if !ok || !w.world.Alive(e) {
		return systems.PackMember{}, false
	}
	pos := w.posMap.Get(e)
	vit := w.vitMap.Get(e)
	soc := w.socialMap.Get(e)
	org := w.orgMap.Get(e)
	return systems.PackMember{
		X:         pos.X,
		Y:         pos.Y,
		Sex:       org.Sex,
		Dominance: soc.Dominance,
		Alive:     vit.Alive,
	}, true
}
