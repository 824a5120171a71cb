package neural

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

var testTopology = Topology{Inputs: 10, Hidden: []int{12, 10}, Outputs: 2}

func TestNewFFNN(t *testing.T) {
	nn := NewFFNN(newRNG(42), testTopology)

	if nn == nil {
		t.Fatal("NewFFNN returned nil")
	}
	want := 10*12 + 12 + 12*10 + 10 + 10*2 + 2
	if got := nn.ParamCount(); got != want {
		t.Errorf("ParamCount() = %d, want %d", got, want)
	}
	if got := len(nn.Params()); got != want {
		t.Errorf("len(Params()) = %d, want %d", got, want)
	}
	if nn.Topology().String() != "10-12-10-2" {
		t.Errorf("Topology().String() = %q", nn.Topology().String())
	}
}

func TestNewFFNNInvalidTopology(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero-width hidden layer")
		}
	}()
	NewFFNN(newRNG(1), Topology{Inputs: 3, Hidden: []int{0}, Outputs: 2})
}

func TestEvaluateBounded(t *testing.T) {
	rng := newRNG(7)
	nn := NewFFNN(rng, Topology{Inputs: 15, Hidden: []int{16, 12}, Outputs: 3})

	// Blow the weights up so pre-activations saturate.
	params := nn.Params()
	for i := range params {
		params[i] *= 1000
	}
	nn.SetParams(params)

	for trial := 0; trial < 100; trial++ {
		inputs := make([]float64, 15)
		for i := range inputs {
			inputs[i] = (rng.Float64() - 0.5) * 1e6
		}
		for i, out := range nn.Evaluate(inputs) {
			if math.IsNaN(out) || out < 0 || out > 1 {
				t.Fatalf("trial %d output %d = %f, want [0,1]", trial, i, out)
			}
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	nn := NewFFNN(newRNG(42), testTopology)

	inputs := make([]float64, testTopology.Inputs)
	for i := range inputs {
		inputs[i] = float64(i) / float64(len(inputs))
	}

	a := nn.Evaluate(inputs)
	b := nn.Evaluate(inputs)
	if !slices.Equal(a, b) {
		t.Error("Evaluate is not deterministic")
	}
}

func TestEvaluateWrongWidthPanics(t *testing.T) {
	nn := NewFFNN(newRNG(42), testTopology)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong input width")
		}
	}()
	nn.Evaluate(make([]float64, 3))
}

func TestMutate(t *testing.T) {
	rng := newRNG(42)
	nn := NewFFNN(rng, testTopology)
	before := nn.Params()

	nn.Mutate(rng, 1.0, 0.1)
	if slices.Equal(before, nn.Params()) {
		t.Error("Mutate with rate 1 did not change parameters")
	}

	unchanged := nn.Params()
	nn.Mutate(rng, 0.0, 0.1)
	if !slices.Equal(unchanged, nn.Params()) {
		t.Error("Mutate with rate 0 changed parameters")
	}
}

func TestCloneIndependent(t *testing.T) {
	rng := newRNG(42)
	nn := NewFFNN(rng, testTopology)
	original := nn.Params()

	clone := nn.Clone()
	if !slices.Equal(original, clone.Params()) {
		t.Fatal("Clone has different parameters")
	}

	clone.Mutate(rng, 1.0, 1.0)
	if !slices.Equal(original, nn.Params()) {
		t.Error("mutating the clone altered the source")
	}
}

func TestCrossoverEndpoints(t *testing.T) {
	rng := newRNG(42)
	a := NewFFNN(rng, testTopology)
	b := NewFFNN(rng, testTopology)
	n := a.ParamCount()

	if got := CrossoverAt(a, b, n).Params(); !slices.Equal(got, a.Params()) {
		t.Error("split at ParamCount should reproduce a")
	}
	if got := CrossoverAt(a, b, 0).Params(); !slices.Equal(got, b.Params()) {
		t.Error("split at 0 should reproduce b")
	}

	mid := CrossoverAt(a, b, n/2).Params()
	pa, pb := a.Params(), b.Params()
	if !slices.Equal(mid[:n/2], pa[:n/2]) || !slices.Equal(mid[n/2:], pb[n/2:]) {
		t.Error("mid split should take prefix from a and suffix from b")
	}
	// Parents untouched.
	if !slices.Equal(a.Params(), pa) || !slices.Equal(b.Params(), pb) {
		t.Error("crossover modified a parent")
	}
}

func TestCrossoverTopology(t *testing.T) {
	rng := newRNG(3)
	a := NewFFNN(rng, testTopology)
	b := NewFFNN(rng, testTopology)

	for i := 0; i < 20; i++ {
		child := Crossover(rng, a, b)
		if !child.Topology().Equal(a.Topology()) {
			t.Fatalf("child topology %v, want %v", child.Topology(), a.Topology())
		}
		if child.ParamCount() != a.ParamCount() {
			t.Fatalf("child param count %d, want %d", child.ParamCount(), a.ParamCount())
		}
	}
}

func TestCrossoverMismatchPanics(t *testing.T) {
	rng := newRNG(42)
	a := NewFFNN(rng, testTopology)
	b := NewFFNN(rng, Topology{Inputs: 9, Hidden: []int{12, 10}, Outputs: 2})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched topologies")
		}
	}()
	Crossover(rng, a, b)
}

func TestSetParamsWrongLengthPanics(t *testing.T) {
	nn := NewFFNN(newRNG(42), testTopology)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong parameter count")
		}
	}()
	nn.SetParams([]float64{1, 2, 3})
}

func TestTopologyEqual(t *testing.T) {
	tests := []struct {
		a, b Topology
		want bool
	}{
		{testTopology, Topology{Inputs: 10, Hidden: []int{12, 10}, Outputs: 2}, true},
		{testTopology, Topology{Inputs: 10, Hidden: []int{12}, Outputs: 2}, false},
		{testTopology, Topology{Inputs: 10, Hidden: []int{12, 9}, Outputs: 2}, false},
		{testTopology, Topology{Inputs: 10, Hidden: []int{12, 10}, Outputs: 3}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	nn := NewFFNN(newRNG(42), Topology{Inputs: PackPredatorInputs, Hidden: []int{16, 12}, Outputs: PackOutputs})

	inputs := make([]float64, PackPredatorInputs)
	for i := range inputs {
		inputs[i] = 0.5
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nn.Evaluate(inputs)
	}
}
