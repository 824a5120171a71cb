package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// resolveMating pairs mate-seeking organisms of one species. Each seeker, in
// population order, takes its nearest eligible partner; organisms that mated
// in this pass are not considered again.
func (w *World) resolveMating(s components.Species) {
	pop := w.populations[s]
	if len(pop) < 2 {
		return
	}
	candidates := w.mateCandidates(s)
	mated := make(map[uint32]bool)
	excluded := func(id uint32) bool { return mated[id] }

	for i, e := range pop {
		self := candidates[i]
		rep := w.reproMap.Get(e)
		if mated[self.ID] || !rep.MateSeeking || !w.vitMap.Get(e).Alive {
			continue
		}

		j := systems.FindMate(self, rep.LastMate, candidates, w.cfg.Organism.MateRadius, excluded)
		if j < 0 {
			continue
		}

		systems.Conceive(w.mate(e), w.mate(pop[j]), &w.cfg.Organism)
		mated[self.ID] = true
		mated[candidates[j].ID] = true
		w.collector.Record(telemetry.EventMating, s)
	}
}

func (w *World) mate(e ecs.Entity) systems.Mate {
	org := w.orgMap.Get(e)
	return systems.Mate{
		ID:    org.ID,
		Org:   org,
		Vital: w.vitMap.Get(e),
		Repro: w.reproMap.Get(e),
	}
}
