package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`
	Generation      int `csv:"generation"`

	// Population counts at window end
	Rabbits   int `csv:"rabbits"`
	Foxes     int `csv:"foxes"`
	Wolves    int `csv:"wolves"`
	Packs     int `csv:"packs"`
	Resources int `csv:"food"`

	// Events during window
	RabbitBirths int `csv:"rabbit_births"`
	FoxBirths    int `csv:"fox_births"`
	WolfBirths   int `csv:"wolf_births"`
	RabbitDeaths int `csv:"rabbit_deaths"`
	FoxDeaths    int `csv:"fox_deaths"`
	WolfDeaths   int `csv:"wolf_deaths"`
	Matings      int `csv:"matings"`
	Feedings     int `csv:"feedings"`

	// Hunting
	FoxKills     int     `csv:"fox_kills"`
	WolfKills    int     `csv:"wolf_kills"`
	WolfHunts    int     `csv:"wolf_hunts"`
	WolfHuntRate float64 `csv:"wolf_hunt_rate"`
	Signals      int     `csv:"signals"`

	// Energy distribution (sampled at window end)
	RabbitEnergyMean float64 `csv:"rabbit_energy_mean"`
	RabbitEnergyP10  float64 `csv:"rabbit_energy_p10"`
	RabbitEnergyP50  float64 `csv:"rabbit_energy_p50"`
	RabbitEnergyP90  float64 `csv:"rabbit_energy_p90"`

	FoxEnergyMean float64 `csv:"fox_energy_mean"`
	FoxEnergyP10  float64 `csv:"fox_energy_p10"`
	FoxEnergyP50  float64 `csv:"fox_energy_p50"`
	FoxEnergyP90  float64 `csv:"fox_energy_p90"`

	WolfEnergyMean float64 `csv:"wolf_energy_mean"`
	WolfEnergyP10  float64 `csv:"wolf_energy_p10"`
	WolfEnergyP50  float64 `csv:"wolf_energy_p50"`
	WolfEnergyP90  float64 `csv:"wolf_energy_p90"`
}

// Predators returns the combined predator count.
func (s WindowStats) Predators() int {
	return s.Foxes + s.Wolves
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("generation", s.Generation),
		slog.Int("rabbits", s.Rabbits),
		slog.Int("foxes", s.Foxes),
		slog.Int("wolves", s.Wolves),
		slog.Int("packs", s.Packs),
		slog.Int("food", s.Resources),
		slog.Int("rabbit_births", s.RabbitBirths),
		slog.Int("fox_births", s.FoxBirths),
		slog.Int("wolf_births", s.WolfBirths),
		slog.Int("rabbit_deaths", s.RabbitDeaths),
		slog.Int("fox_deaths", s.FoxDeaths),
		slog.Int("wolf_deaths", s.WolfDeaths),
		slog.Int("matings", s.Matings),
		slog.Int("feedings", s.Feedings),
		slog.Int("fox_kills", s.FoxKills),
		slog.Int("wolf_kills", s.WolfKills),
		slog.Int("wolf_hunts", s.WolfHunts),
		slog.Float64("wolf_hunt_rate", s.WolfHuntRate),
		slog.Int("signals", s.Signals),
		slog.Float64("rabbit_energy_mean", s.RabbitEnergyMean),
		slog.Float64("rabbit_energy_p50", s.RabbitEnergyP50),
		slog.Float64("fox_energy_mean", s.FoxEnergyMean),
		slog.Float64("fox_energy_p50", s.FoxEnergyP50),
		slog.Float64("wolf_energy_mean", s.WolfEnergyMean),
		slog.Float64("wolf_energy_p50", s.WolfEnergyP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
