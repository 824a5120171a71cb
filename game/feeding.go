package game

import (
	"slices"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// resolveFeeding lets each herbivore, in population order, eat the first
// food item within the feeding radius. One item per herbivore per tick.
func (w *World) resolveFeeding() {
	rc := &w.cfg.Resource
	for _, e := range w.populations[components.Herbivore] {
		vit := w.vitMap.Get(e)
		if !vit.Alive {
			continue
		}
		pos := w.posMap.Get(e)
		i := systems.FirstWithin(pos.X, pos.Y, w.resourcePoints(), rc.FeedRadius, nil)
		if i < 0 {
			continue
		}

		food := w.resources[i]
		w.resources = slices.Delete(w.resources, i, i+1)
		systems.GainEnergy(vit, food.Energy, w.cfg.Organism.MaxEnergy)
		w.orgMap.Get(e).Fitness += rc.FeedFitness
		w.collector.Record(telemetry.EventFeeding, components.Herbivore)
	}
}

// replenishResources adds a batch of food every interval while below the
// cap, plus an occasional single item.
func (w *World) replenishResources() {
	rc := &w.cfg.Resource
	if rc.Interval > 0 && w.tick%rc.Interval == 0 && len(w.resources) < rc.Cap {
		w.SpawnResources(rc.IntervalCount)
	}
	if w.rng.Float64() < rc.RandomChance {
		w.SpawnResources(1)
	}
}
