package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationReport summarizes a species' population just before it is
// replaced by the next generation.
type GenerationReport struct {
	Generation  int     `csv:"generation"`
	Tick        int     `csv:"tick"`
	Species     string  `csv:"species"`
	Population  int     `csv:"population"`
	Males       int     `csv:"males"`
	Females     int     `csv:"females"`
	Children    int     `csv:"children"`
	Kills       int     `csv:"kills"`
	MeanFitness float64 `csv:"mean_fitness"`
	StdFitness  float64 `csv:"std_fitness"`
	MaxFitness  float64 `csv:"max_fitness"`
}

// SummarizeFitness returns the mean, sample standard deviation and maximum.
// Empty input yields zeros; a single value has zero deviation.
func SummarizeFitness(fitness []float64) (mean, std, maxFitness float64) {
	switch len(fitness) {
	case 0:
		return 0, 0, 0
	case 1:
		return fitness[0], 0, fitness[0]
	}
	mean, std = stat.MeanStdDev(fitness, nil)
	return mean, std, floats.Max(fitness)
}

// LogValue implements slog.LogValuer for structured logging.
func (r GenerationReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Int("tick", r.Tick),
		slog.String("species", r.Species),
		slog.Int("population", r.Population),
		slog.Int("males", r.Males),
		slog.Int("females", r.Females),
		slog.Int("children", r.Children),
		slog.Int("kills", r.Kills),
		slog.Float64("mean_fitness", r.MeanFitness),
		slog.Float64("std_fitness", r.StdFitness),
		slog.Float64("max_fitness", r.MaxFitness),
	)
}
