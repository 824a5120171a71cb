package telemetry

import (
	"math"
	"testing"

	"github.com/noskyvisible/neural-evolution-simulation/components"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{100, 20, 30, 40, 50, 60, 70, 80, 90, 10}
	mean, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if math.Abs(p10-19) > 0.01 {
		t.Errorf("p10 = %v, want 19", p10)
	}
	if math.Abs(p50-55) > 0.01 {
		t.Errorf("p50 = %v, want 55", p50)
	}
	if math.Abs(p90-91) > 0.01 {
		t.Errorf("p90 = %v, want 91", p90)
	}
	if values[0] != 100 {
		t.Error("input slice was reordered")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeEnergyStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	c.Record(EventBirth, components.Herbivore)
	c.Record(EventBirth, components.Herbivore)
	c.Record(EventDeath, components.SoloPredator)
	c.Record(EventKill, components.SoloPredator)
	c.Record(EventHuntAttempt, components.PackPredator)
	c.Record(EventHuntAttempt, components.PackPredator)
	c.Record(EventHuntAttempt, components.PackPredator)
	c.Record(EventHuntAttempt, components.PackPredator)
	c.Record(EventKill, components.PackPredator)
	c.Record(EventMating, components.Herbivore)
	c.Record(EventMating, components.PackPredator)

	if c.ShouldFlush(99) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(100) {
		t.Error("should flush at the window end")
	}

	var sample PopulationSample
	sample.Generation = 3
	sample.Species[components.Herbivore] = SpeciesSample{Count: 2, Energies: []float64{50, 150}}
	sample.Packs = 1
	sample.Resources = 17

	stats := c.Flush(100, sample)

	if stats.RabbitBirths != 2 || stats.FoxDeaths != 1 || stats.FoxKills != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}
	if stats.WolfHunts != 4 || stats.WolfKills != 1 || stats.WolfHuntRate != 0.25 {
		t.Errorf("hunt stats wrong: hunts=%d kills=%d rate=%v", stats.WolfHunts, stats.WolfKills, stats.WolfHuntRate)
	}
	if stats.Matings != 2 {
		t.Errorf("matings = %d, want 2", stats.Matings)
	}
	if stats.Rabbits != 2 || stats.Generation != 3 || stats.Resources != 17 {
		t.Errorf("sample not copied: %+v", stats)
	}
	if stats.RabbitEnergyMean != 100 {
		t.Errorf("rabbit energy mean = %v, want 100", stats.RabbitEnergyMean)
	}

	// Counters reset and window advances
	if c.Count(EventBirth, components.Herbivore) != 0 {
		t.Error("counts not reset after flush")
	}
	if c.ShouldFlush(150) || !c.ShouldFlush(200) {
		t.Error("window start not advanced after flush")
	}
	if next := c.Flush(200, PopulationSample{}); next.WindowStartTick != 100 || next.WolfHuntRate != 0 {
		t.Errorf("unexpected second window %+v", next)
	}
}

func TestSummarizeFitness(t *testing.T) {
	tests := []struct {
		name               string
		in                 []float64
		mean, std, maxWant float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{7}, 7, 0, 7},
		{"pair", []float64{2, 4}, 3, math.Sqrt2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, mx := SummarizeFitness(tt.in)
			if math.Abs(mean-tt.mean) > 1e-9 || math.Abs(std-tt.std) > 1e-9 || mx != tt.maxWant {
				t.Errorf("got (%v, %v, %v), want (%v, %v, %v)", mean, std, mx, tt.mean, tt.std, tt.maxWant)
			}
		})
	}
}

func TestSnapshotFieldsStable(t *testing.T) {
	var full Snapshot
	full.Tick = 42
	full.Species[components.PackPredator] = SpeciesSnapshot{Population: 6, Males: 3, Females: 3, Pregnant: 1}

	empty := (Snapshot{}).Fields()
	got := full.Fields()
	if len(got) != len(empty) {
		t.Fatalf("field count differs: %d vs %d", len(got), len(empty))
	}
	for k := range empty {
		if _, ok := got[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}
	if got["wolves"] != 6 || got["pregnant_wolves"] != 1 || got["wolf_males"] != 3 || got["tick"] != 42 {
		t.Errorf("unexpected values %v", got)
	}
	if n := len(FieldNames()); n != 5+6*int(components.NumSpecies) {
		t.Errorf("FieldNames len = %d", n)
	}
}
