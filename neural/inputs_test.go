package neural

import "testing"

func TestSensesWidths(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"herbivore", len((&HerbivoreSenses{}).ToInputs()), HerbivoreInputs},
		{"solo predator", len((&SoloPredatorSenses{}).ToInputs()), SoloPredatorInputs},
		{"pack predator", len((&PackPredatorSenses{}).ToInputs()), PackPredatorInputs},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: %d inputs, want %d", tt.name, tt.got, tt.want)
		}
	}
	if HerbivoreInputs != 10 || SoloPredatorInputs != 9 || PackPredatorInputs != 15 {
		t.Error("unexpected input widths")
	}
}

func TestPackPredatorSensesLayout(t *testing.T) {
	s := PackPredatorSenses{
		Self:           SelfState{X: 0.1, Y: 0.2, Energy: 0.3, CosHeading: 0.4, SinHeading: 0.5},
		PreyDist:       0.6,
		PreyCos:        0.7,
		PreyDensity:    0.8,
		CompetitorDist: 0.9,
		CentroidDist:   1.0,
		CentroidCos:    1.1,
		PackSize:       1.2,
		Alpha:          1.3,
		MateDist:       1.4,
		MateCos:        1.5,
	}
	inputs := s.ToInputs()
	for i, v := range inputs {
		want := float64(i+1) / 10
		if diff := v - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("input[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestDecodeOutputs(t *testing.T) {
	out := DecodeOutputs([]float64{1, 0.25})
	if out.Turn != 0.5 || out.Speed != 0.25 || out.Signal != 0 {
		t.Errorf("unexpected decode: %+v", out)
	}

	out = DecodeOutputs([]float64{0.5, 1, 0.9})
	if out.Turn != 0 || out.Signal != 0.9 {
		t.Errorf("unexpected decode with signal: %+v", out)
	}

	if (DecodeOutputs(nil) != BehaviorOutputs{}) {
		t.Error("short output should decode to zero value")
	}
}
