package game

import (
	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// Snapshot summarizes the living populations. Averages over an empty
// population are zero.
func (w *World) Snapshot() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		Tick:       w.tick,
		Generation: w.generation,
		Resources:  len(w.resources),
		Packs:      len(w.packs),
	}

	for _, s := range components.AllSpecies {
		ss := &snap.Species[s]
		var energy, age float64
		for _, e := range w.populations[s] {
			vit := w.vitMap.Get(e)
			ss.Population++
			if w.orgMap.Get(e).Sex == components.Female {
				ss.Females++
			} else {
				ss.Males++
			}
			if w.reproMap.Get(e).Pregnant {
				ss.Pregnant++
			}
			if s == components.PackPredator && w.socialMap.Get(e).PackID == 0 {
				snap.LoneWolves++
			}
			energy += vit.Energy
			age += float64(vit.Age)
		}
		if ss.Population > 0 {
			ss.AvgEnergy = energy / float64(ss.Population)
			ss.AvgAge = age / float64(ss.Population)
		}
	}
	return snap
}

// Stats returns the snapshot as a flat map of named fields. The key set is
// the same on every call.
func (w *World) Stats() map[string]float64 {
	return w.Snapshot().Fields()
}

// Sample returns the population state consumed by the event collector.
func (w *World) Sample() telemetry.PopulationSample {
	sample := telemetry.PopulationSample{
		Generation: w.generation,
		Packs:      len(w.packs),
		Resources:  len(w.resources),
	}
	for _, s := range components.AllSpecies {
		ss := &sample.Species[s]
		ss.Count = len(w.populations[s])
		ss.Energies = make([]float64, 0, ss.Count)
		for _, e := range w.populations[s] {
			ss.Energies = append(ss.Energies, w.vitMap.Get(e).Energy)
		}
	}
	return sample
}
