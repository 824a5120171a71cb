package game

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// Tick advances the simulation by one step.
//
// Order: counters, then per species (herbivore, solo, pack) the organism
// updates over a snapshot of the population, births and removal of the dead;
// then feeding, mating, pack maintenance and resource replenishment.
func (w *World) Tick() {
	w.perf.StartTick()
	w.tick++
	w.generationTimer++
	for _, p := range w.packs {
		p.Hunting = false
	}

	w.perf.StartPhase(telemetry.PhaseUpdate)
	for _, s := range components.AllSpecies {
		w.updateSpecies(s)
	}

	w.perf.StartPhase(telemetry.PhaseFeeding)
	w.resolveFeeding()

	w.perf.StartPhase(telemetry.PhaseMating)
	for _, s := range components.AllSpecies {
		w.resolveMating(s)
	}

	w.perf.StartPhase(telemetry.PhasePacks)
	w.updatePacks()

	w.perf.StartPhase(telemetry.PhaseResources)
	w.replenishResources()

	w.perf.EndTick()
}

// updateSpecies runs one species pass. Newborns join the population after
// the pass and do not act until the next tick.
func (w *World) updateSpecies(s components.Species) {
	var mothers []ecs.Entity
	for _, e := range slices.Clone(w.populations[s]) {
		a := w.actor(e)
		if !a.vit.Alive {
			continue
		}
		if w.updateOrganism(&a) {
			mothers = append(mothers, e)
		}
	}

	for _, m := range mothers {
		w.deliver(m)
	}
	w.reap()
}

// updateOrganism applies one tick of the life cycle. Returns true if the
// organism gave birth, in which case it does not act this tick.
func (w *World) updateOrganism(a *actor) bool {
	oc := &w.cfg.Organism
	b := &behaviors[a.species]

	systems.Metabolize(a.vit, a.spec.MetabolicCost)
	if systems.TickTimers(a.rep, a.soc) {
		systems.GiveBirth(a.org, a.vit, a.rep, oc)
		systems.CheckDeath(a.vit, a.spec.MaxAge)
		return true
	}

	a.rep.MateSeeking = systems.CanReproduce(a.vit, a.rep, oc)

	inputs := b.sense(w, a)
	out := neural.DecodeOutputs(w.brains[a.org.ID].Evaluate(inputs))
	b.act(w, a, out)

	systems.Advance(a.pos, a.mot)
	systems.Reflect(a.pos, a.mot, w.bounds)
	systems.AccrueFitness(a.org, a.vit, oc)

	if b.interact != nil {
		b.interact(w, a)
	}
	systems.CheckDeath(a.vit, a.spec.MaxAge)
	return false
}

// deliver spawns the newborn of a mother that gave birth this tick. The
// child inherits a mutated copy of the mother's controller; pack predators
// also inherit noisy social traits and the mother's pack.
func (w *World) deliver(mother ecs.Entity) {
	oc := &w.cfg.Organism
	pos := *w.posMap.Get(mother)
	soc := *w.socialMap.Get(mother)
	org := *w.orgMap.Get(mother)
	scatter := w.species[org.Species].BirthScatter

	brain := w.brains[org.ID].Clone()
	brain.Mutate(w.rng, oc.BirthMutationRate, oc.BirthMutationStrength)

	var social components.Social
	if org.Species == components.PackPredator {
		social.Dominance = w.inheritTrait(soc.Dominance)
		social.Loyalty = w.inheritTrait(soc.Loyalty)
	}

	x := w.clampX(pos.X + w.uniform(-scatter, scatter))
	y := w.clampY(pos.Y + w.uniform(-scatter, scatter))
	sex := components.Sex(w.rng.IntN(2))
	id := w.spawnOrganism(org.Species, x, y, sex, brain, social)
	w.collector.Record(telemetry.EventBirth, org.Species)

	if pack := w.packByID(soc.PackID); pack != nil {
		w.joinPack(pack, id)
	}
}

// reap removes every dead organism from its population.
func (w *World) reap() {
	for _, s := range components.AllSpecies {
		live := w.populations[s][:0]
		for _, e := range w.populations[s] {
			if w.vitMap.Get(e).Alive {
				live = append(live, e)
				continue
			}
			w.removeOrganism(e, true)
		}
		clear(w.populations[s][len(live):])
		w.populations[s] = live
	}
}

// removeOrganism deletes an organism and its controller, leaving its pack
// first. Deaths are counted and offered to the hall of fame.
func (w *World) removeOrganism(e ecs.Entity, died bool) {
	org := *w.orgMap.Get(e)
	packID := w.socialMap.Get(e).PackID

	if died {
		w.collector.Record(telemetry.EventDeath, org.Species)
		w.considerForHall(e)
	}
	if pack := w.packByID(packID); pack != nil {
		w.leavePack(pack, org.ID)
	}

	delete(w.brains, org.ID)
	delete(w.byID, org.ID)
	w.world.RemoveEntity(e)
}

// considerForHall offers an organism to the hall of fame.
func (w *World) considerForHall(e ecs.Entity) {
	org := w.orgMap.Get(e)
	brain, ok := w.brains[org.ID]
	if !ok {
		return
	}
	w.hall.Consider(telemetry.HallEntry{
		ID:         org.ID,
		Species:    org.Species,
		Sex:        org.Sex,
		Generation: w.generation,
		Fitness:    org.Fitness,
		Children:   org.Children,
		Kills:      org.Kills,
		Age:        w.vitMap.Get(e).Age,
		Topology:   brain.Topology().String(),
		Params:     brain.Params(),
	})
}
