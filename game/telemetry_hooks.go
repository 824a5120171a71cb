package game

import (
	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// FlushTelemetry closes the current event window once it has run its
// length. Returns false while the window is still open.
func (w *World) FlushTelemetry() (telemetry.WindowStats, bool) {
	if !w.collector.ShouldFlush(w.tick) {
		return telemetry.WindowStats{}, false
	}
	return w.collector.Flush(w.tick, w.Sample()), true
}

// OfferToHall offers every living organism of a species to the hall of fame.
// Called before a population is replaced so its best members are kept.
func (w *World) OfferToHall(s components.Species) {
	for _, e := range w.populations[s] {
		w.considerForHall(e)
	}
}
