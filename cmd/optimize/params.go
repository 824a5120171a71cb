package main

import (
	"github.com/noskyvisible/neural-evolution-simulation/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // column name in the optimization log
	Path    string  // config path
	Min     float64 // lower bound
	Max     float64 // upper bound
	Default float64

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

func floatParam(name, path string, lo, hi, def float64, field func(*config.Config) *float64) ParamSpec {
	return ParamSpec{
		Name: name, Path: path, Min: lo, Max: hi, Default: def,
		get: func(c *config.Config) float64 { return *field(c) },
		set: func(c *config.Config, v float64) { *field(c) = v },
	}
}

func intParam(name, path string, lo, hi, def float64, field func(*config.Config) *int) ParamSpec {
	return ParamSpec{
		Name: name, Path: path, Min: lo, Max: hi, Default: def,
		get: func(c *config.Config) float64 { return float64(*field(c)) },
		set: func(c *config.Config, v float64) { *field(c) = int(v + 0.5) },
	}
}

// NewParamVector creates the standard set of ecological parameters.
// Genetic operator settings are held fixed.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Metabolism
			floatParam("rabbit_metabolic_cost", "species.herbivore.metabolic_cost", 0.05, 0.4, 0.2,
				func(c *config.Config) *float64 { return &c.Species.Herbivore.MetabolicCost }),
			floatParam("fox_metabolic_cost", "species.solo_predator.metabolic_cost", 0.05, 0.4, 0.2,
				func(c *config.Config) *float64 { return &c.Species.SoloPredator.MetabolicCost }),
			floatParam("wolf_metabolic_cost", "species.pack_predator.metabolic_cost", 0.05, 0.4, 0.2,
				func(c *config.Config) *float64 { return &c.Species.PackPredator.MetabolicCost }),
			// Food
			floatParam("food_energy", "resource.energy", 10, 60, 30,
				func(c *config.Config) *float64 { return &c.Resource.Energy }),
			intParam("food_interval_count", "resource.interval_count", 1, 15, 5,
				func(c *config.Config) *int { return &c.Resource.IntervalCount }),
			intParam("food_cap", "resource.cap", 20, 120, 40,
				func(c *config.Config) *int { return &c.Resource.Cap }),
			// Hunting
			floatParam("fox_kill_energy", "hunt.kill_energy", 20, 100, 50,
				func(c *config.Config) *float64 { return &c.Hunt.KillEnergy }),
			floatParam("fox_hunt_range", "species.solo_predator.hunt_range", 8, 30, 18,
				func(c *config.Config) *float64 { return &c.Species.SoloPredator.HuntRange }),
			floatParam("wolf_kill_energy", "pack.kill_energy", 20, 120, 60,
				func(c *config.Config) *float64 { return &c.Pack.KillEnergy }),
			floatParam("wolf_base_success", "pack.base_success", 0.1, 0.6, 0.3,
				func(c *config.Config) *float64 { return &c.Pack.BaseSuccess }),
			// Reproduction
			floatParam("repro_energy", "organism.repro_energy", 80, 180, 120,
				func(c *config.Config) *float64 { return &c.Organism.ReproEnergy }),
			intParam("mating_cooldown", "organism.mating_cooldown", 150, 900, 500,
				func(c *config.Config) *int { return &c.Organism.MatingCooldown }),
			intParam("gestation", "organism.gestation", 100, 500, 300,
				func(c *config.Config) *int { return &c.Organism.Gestation }),
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to the [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp keeps every value within its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
