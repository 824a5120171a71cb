package telemetry

import "github.com/noskyvisible/neural-evolution-simulation/components"

// SpeciesSample is the state of one species at the end of a window.
type SpeciesSample struct {
	Count    int
	Energies []float64
}

// PopulationSample is the world state handed to Flush.
type PopulationSample struct {
	Generation int
	Species    [components.NumSpecies]SpeciesSample
	Packs      int
	Resources  int
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int
	counts          [numEventTypes][components.NumSpecies]int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Record counts one event for a species.
func (c *Collector) Record(e EventType, s components.Species) {
	c.counts[e][s]++
}

// Count returns the number of events recorded in the current window.
func (c *Collector) Count(e EventType, s components.Species) int {
	return c.counts[e][s]
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, sample PopulationSample) WindowStats {
	rabbits := &sample.Species[components.Herbivore]
	foxes := &sample.Species[components.SoloPredator]
	wolves := &sample.Species[components.PackPredator]

	var huntRate float64
	if attempts := c.counts[EventHuntAttempt][components.PackPredator]; attempts > 0 {
		huntRate = float64(c.counts[EventKill][components.PackPredator]) / float64(attempts)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Generation:      sample.Generation,

		Rabbits:   rabbits.Count,
		Foxes:     foxes.Count,
		Wolves:    wolves.Count,
		Packs:     sample.Packs,
		Resources: sample.Resources,

		RabbitBirths: c.counts[EventBirth][components.Herbivore],
		FoxBirths:    c.counts[EventBirth][components.SoloPredator],
		WolfBirths:   c.counts[EventBirth][components.PackPredator],
		RabbitDeaths: c.counts[EventDeath][components.Herbivore],
		FoxDeaths:    c.counts[EventDeath][components.SoloPredator],
		WolfDeaths:   c.counts[EventDeath][components.PackPredator],

		FoxKills:     c.counts[EventKill][components.SoloPredator],
		WolfKills:    c.counts[EventKill][components.PackPredator],
		WolfHunts:    c.counts[EventHuntAttempt][components.PackPredator],
		WolfHuntRate: huntRate,
		Signals:      c.counts[EventSignal][components.PackPredator],
		Feedings:     c.counts[EventFeeding][components.Herbivore],
	}
	for _, s := range components.AllSpecies {
		stats.Matings += c.counts[EventMating][s]
	}

	stats.RabbitEnergyMean, stats.RabbitEnergyP10, stats.RabbitEnergyP50, stats.RabbitEnergyP90 = ComputeEnergyStats(rabbits.Energies)
	stats.FoxEnergyMean, stats.FoxEnergyP10, stats.FoxEnergyP50, stats.FoxEnergyP90 = ComputeEnergyStats(foxes.Energies)
	stats.WolfEnergyMean, stats.WolfEnergyP10, stats.WolfEnergyP50, stats.WolfEnergyP90 = ComputeEnergyStats(wolves.Energies)

	// Reset for next window
	c.windowStartTick = currentTick
	c.counts = [numEventTypes][components.NumSpecies]int{}

	return stats
}
