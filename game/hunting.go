package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// huntSolo kills the first herbivore in population order within hunt range.
// Solo hunts always succeed.
func huntSolo(w *World, a *actor) {
	prey := w.living(components.Herbivore)
	i := systems.FirstWithin(a.pos.X, a.pos.Y, prey.points, a.spec.HuntRange, nil)
	if i < 0 {
		return
	}

	w.vitMap.Get(prey.entities[i]).Alive = false
	systems.GainEnergy(a.vit, w.cfg.Hunt.KillEnergy, w.cfg.Organism.MaxEnergy)
	a.org.Kills++
	a.org.Fitness += w.cfg.Hunt.KillFitness
	w.collector.Record(telemetry.EventKill, components.SoloPredator)
}

// huntPack attempts the nearest herbivore within hunt range. Success odds
// grow with nearby packmates and pack coordination; the kill is shared among
// packmates near the prey.
func huntPack(w *World, a *actor) {
	pc := &w.cfg.Pack
	if a.soc.HuntCooldown > 0 {
		return
	}

	prey := w.living(components.Herbivore)
	n := systems.Nearest(a.pos.X, a.pos.Y, prey.points, a.spec.HuntRange, nil)
	if !n.Found() {
		return
	}
	w.collector.Record(telemetry.EventHuntAttempt, components.PackPredator)

	pack := w.packByID(a.soc.PackID)
	var coordination float64
	var supporters int
	if pack != nil {
		pack.Hunting = true
		coordination = pack.Coordination
		supporters = len(w.packmatesWithin(pack, a.org.ID, a.pos.X, a.pos.Y, pc.SupportRadius))
	}

	success := w.rng.Float64() < systems.HuntOdds(pc, supporters, coordination)
	if pack != nil {
		pack.Coordination = systems.AdjustCoordination(pack.Coordination, success, pc)
	}
	if !success {
		a.soc.HuntCooldown = pc.HuntCooldown
		return
	}

	target := prey.points[n.Index]
	w.vitMap.Get(prey.entities[n.Index]).Alive = false
	a.org.Kills++
	a.org.Fitness += w.cfg.Hunt.KillFitness
	w.collector.Record(telemetry.EventKill, components.PackPredator)

	var sharers []ecs.Entity
	if pack != nil {
		sharers = w.packmatesWithin(pack, a.org.ID, target.X, target.Y, pc.ShareRadius)
	}
	payout := systems.SharePayout(pc, len(sharers)+1, pack != nil)
	systems.GainEnergy(a.vit, payout, w.cfg.Organism.MaxEnergy)
	for _, e := range sharers {
		systems.GainEnergy(w.vitMap.Get(e), payout, w.cfg.Organism.MaxEnergy)
		w.orgMap.Get(e).Fitness += pc.ShareFitness
	}
}

// packmatesWithin returns the living members of a pack other than self
// strictly within radius of (x, y). The result is reused by the next call.
func (w *World) packmatesWithin(pack *systems.Pack, self uint32, x, y, radius float64) []ecs.Entity {
	w.packScratch = w.packScratch[:0]
	radiusSq := radius * radius
	for _, id := range pack.Members {
		if id == self {
			continue
		}
		e, ok := w.byID[id]
		if !ok || !w.vitMap.Get(e).Alive {
			continue
		}
		pos := w.posMap.Get(e)
		if systems.DistanceSq(x, y, pos.X, pos.Y) < radiusSq {
			w.packScratch = append(w.packScratch, e)
		}
	}
	return w.packScratch
}

// howl broadcasts a signal: nearby packmates gain fitness and packmates
// beyond rally distance turn toward the signaller.
func (w *World) howl(a *actor) {
	pc := &w.cfg.Pack
	a.soc.SignalCooldown = pc.SignalCooldown
	a.soc.SignalTicks = pc.SignalDisplay
	w.collector.Record(telemetry.EventSignal, components.PackPredator)

	pack := w.packByID(a.soc.PackID)
	if pack == nil {
		return
	}
	for _, id := range pack.Members {
		if id == a.org.ID {
			continue
		}
		e, ok := w.byID[id]
		if !ok || !w.vitMap.Get(e).Alive {
			continue
		}
		pos := w.posMap.Get(e)
		d := systems.Distance(a.pos.X, a.pos.Y, pos.X, pos.Y)
		if d < pc.SignalRadius {
			w.orgMap.Get(e).Fitness += pc.SignalFitness
		}
		if d > pc.RallyDistance {
			systems.FaceToward(w.motMap.Get(e), pos.X, pos.Y, a.pos.X, a.pos.Y, 0, w.rng)
		}
	}
}

// cohere turns a loyal straggler back toward its pack centroid.
func (w *World) cohere(a *actor) {
	pc := &w.cfg.Pack
	pack := w.packByID(a.soc.PackID)
	if pack == nil || a.soc.Loyalty <= pc.LoyaltyThreshold {
		return
	}
	if systems.Distance(a.pos.X, a.pos.Y, pack.CentroidX, pack.CentroidY) <= pc.CohesionDistance {
		return
	}
	systems.FaceToward(a.mot, a.pos.X, a.pos.Y, pack.CentroidX, pack.CentroidY, pc.CohesionJitter, w.rng)
}
