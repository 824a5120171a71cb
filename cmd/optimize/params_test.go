package main

import (
	"math"
	"testing"

	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config default %g, param default %g", spec.Name, got[i], spec.Default)
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s: default %g outside [%g, %g]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e9
	}

	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Max) > 0.5 {
			t.Errorf("%s = %g, want clamped to %g", spec.Name, got[i], spec.Max)
		}
	}
	if cfg.Species.Herbivore.MetabolicCost != 0.4 {
		t.Errorf("herbivore metabolic cost = %g, want 0.4", cfg.Species.Herbivore.MetabolicCost)
	}
}

func TestComputeQuality(t *testing.T) {
	cfg := config.Default()
	if q := computeQuality(cfg, nil); q != 0 {
		t.Errorf("quality without windows = %g, want 0", q)
	}

	healthy := telemetry.WindowStats{
		Rabbits: 40, Foxes: 12, Wolves: 12,
		RabbitEnergyP50: 100, FoxEnergyP50: 100, WolfEnergyP50: 100,
		WolfHunts: 10, WolfHuntRate: 0.35,
	}
	crashed := telemetry.WindowStats{Rabbits: 2, Foxes: 1}

	good := computeQuality(cfg, []telemetry.WindowStats{healthy, healthy, healthy})
	if good < 0.95 {
		t.Errorf("steady healthy ecosystem quality = %g, want near 1", good)
	}
	if q := computeQuality(cfg, []telemetry.WindowStats{crashed, crashed, crashed}); q != 0 {
		t.Errorf("crashed ecosystem quality = %g, want 0", q)
	}
}
