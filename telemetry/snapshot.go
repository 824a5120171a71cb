package telemetry

import (
	"log/slog"
	"slices"

	"github.com/noskyvisible/neural-evolution-simulation/components"
)

// SpeciesSnapshot summarizes one species' living population.
type SpeciesSnapshot struct {
	Population int
	Males      int
	Females    int
	Pregnant   int
	AvgEnergy  float64
	AvgAge     float64
}

// Snapshot is the population and health summary of the world at one tick.
type Snapshot struct {
	Tick       int
	Generation int
	Resources  int
	Packs      int
	LoneWolves int
	Species    [components.NumSpecies]SpeciesSnapshot
}

// Fields flattens the snapshot into named numeric fields. The key set is the
// same for every snapshot.
func (s Snapshot) Fields() map[string]float64 {
	f := map[string]float64{
		"tick":        float64(s.Tick),
		"generation":  float64(s.Generation),
		"food":        float64(s.Resources),
		"packs":       float64(s.Packs),
		"lone_wolves": float64(s.LoneWolves),
	}
	for _, sp := range components.AllSpecies {
		ss := s.Species[sp]
		name := sp.String()
		f[sp.Plural()] = float64(ss.Population)
		f[name+"_males"] = float64(ss.Males)
		f[name+"_females"] = float64(ss.Females)
		f["pregnant_"+sp.Plural()] = float64(ss.Pregnant)
		f[name+"_avg_energy"] = ss.AvgEnergy
		f[name+"_avg_age"] = ss.AvgAge
	}
	return f
}

// FieldNames returns the sorted key set of Fields.
func FieldNames() []string {
	keys := make([]string, 0, 5+6*int(components.NumSpecies))
	for k := range (Snapshot{}).Fields() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// LogValue implements slog.LogValuer for structured logging.
func (s Snapshot) LogValue() slog.Value {
	fields := s.Fields()
	attrs := make([]slog.Attr, 0, len(fields))
	for _, k := range FieldNames() {
		attrs = append(attrs, slog.Float64(k, fields[k]))
	}
	return slog.GroupValue(attrs...)
}
