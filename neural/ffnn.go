// Package neural provides the fixed-topology feedforward controllers that
// drive organism behaviour.
package neural

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Topology describes the layer widths of a controller.
type Topology struct {
	Inputs  int
	Hidden  []int
	Outputs int
}

// Widths returns every layer width from input to output.
func (t Topology) Widths() []int {
	widths := make([]int, 0, len(t.Hidden)+2)
	widths = append(widths, t.Inputs)
	widths = append(widths, t.Hidden...)
	return append(widths, t.Outputs)
}

// ParamCount returns the number of weights and biases a controller with this
// topology holds.
func (t Topology) ParamCount() int {
	widths := t.Widths()
	n := 0
	for i := 1; i < len(widths); i++ {
		n += widths[i-1]*widths[i] + widths[i]
	}
	return n
}

// Equal reports whether two topologies have identical layer widths.
func (t Topology) Equal(o Topology) bool {
	if t.Inputs != o.Inputs || t.Outputs != o.Outputs || len(t.Hidden) != len(o.Hidden) {
		return false
	}
	for i := range t.Hidden {
		if t.Hidden[i] != o.Hidden[i] {
			return false
		}
	}
	return true
}

// String formats the topology as dash-separated widths, e.g. "10-12-10-2".
func (t Topology) String() string {
	widths := t.Widths()
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, "-")
}

// layer is one affine transform. Weights have one row per input and one
// column per output.
type layer struct {
	W *mat.Dense
	B *mat.VecDense
}

// FFNN is a feedforward network with tanh hidden layers and a sigmoid
// output layer. Its topology never changes after construction.
type FFNN struct {
	topo   Topology
	layers []layer
}

// NewFFNN creates a network with weights and biases drawn from N(0, 0.5²).
func NewFFNN(rng *rand.Rand, topo Topology) *FFNN {
	widths := topo.Widths()
	for _, w := range widths {
		if w <= 0 {
			panic(fmt.Sprintf("neural: invalid topology %v", topo))
		}
	}

	nn := &FFNN{
		topo:   Topology{Inputs: topo.Inputs, Hidden: append([]int(nil), topo.Hidden...), Outputs: topo.Outputs},
		layers: make([]layer, len(widths)-1),
	}
	for i := range nn.layers {
		rows, cols := widths[i], widths[i+1]
		w := make([]float64, rows*cols)
		for j := range w {
			w[j] = rng.NormFloat64() * 0.5
		}
		b := make([]float64, cols)
		for j := range b {
			b[j] = rng.NormFloat64() * 0.5
		}
		nn.layers[i] = layer{W: mat.NewDense(rows, cols, w), B: mat.NewVecDense(cols, b)}
	}
	return nn
}

// Topology returns the network's layer widths.
func (nn *FFNN) Topology() Topology {
	return nn.topo
}

// SameTopology reports whether two networks can be crossed over.
func (nn *FFNN) SameTopology(other *FFNN) bool {
	return nn.topo.Equal(other.topo)
}

// Evaluate runs a forward pass. Every output lies in [0, 1].
// Panics if len(inputs) does not match the input width.
func (nn *FFNN) Evaluate(inputs []float64) []float64 {
	if len(inputs) != nn.topo.Inputs {
		panic(fmt.Sprintf("neural: got %d inputs, topology %v expects %d", len(inputs), nn.topo, nn.topo.Inputs))
	}

	x := mat.NewVecDense(len(inputs), append([]float64(nil), inputs...))
	last := len(nn.layers) - 1
	for i, l := range nn.layers {
		_, cols := l.W.Dims()
		out := mat.NewVecDense(cols, nil)
		out.MulVec(l.W.T(), x)
		out.AddVec(out, l.B)

		act := math.Tanh
		if i == last {
			act = sigmoid
		}
		for j := 0; j < cols; j++ {
			out.SetVec(j, act(out.AtVec(j)))
		}
		x = out
	}

	return append([]float64(nil), x.RawVector().Data...)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Mutate perturbs the network in place. For each layer, with probability
// rate, Gaussian noise scaled by strength is added to all of its weights,
// and independently with probability rate to all of its biases.
func (nn *FFNN) Mutate(rng *rand.Rand, rate, strength float64) {
	noise := func(_, _ int, v float64) float64 {
		return v + rng.NormFloat64()*strength
	}
	for _, l := range nn.layers {
		if rng.Float64() < rate {
			l.W.Apply(noise, l.W)
		}
		if rng.Float64() < rate {
			b := l.B.RawVector()
			for j := 0; j < b.N; j++ {
				b.Data[j*b.Inc] += rng.NormFloat64() * strength
			}
		}
	}
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	clone := &FFNN{
		topo:   Topology{Inputs: nn.topo.Inputs, Hidden: append([]int(nil), nn.topo.Hidden...), Outputs: nn.topo.Outputs},
		layers: make([]layer, len(nn.layers)),
	}
	for i, l := range nn.layers {
		clone.layers[i] = layer{W: mat.DenseCopyOf(l.W), B: mat.VecDenseCopyOf(l.B)}
	}
	return clone
}

// ParamCount returns the number of weights and biases.
func (nn *FFNN) ParamCount() int {
	return nn.topo.ParamCount()
}

// Params flattens the network layer by layer: weights in row-major order
// followed by biases.
func (nn *FFNN) Params() []float64 {
	params := make([]float64, 0, nn.ParamCount())
	for _, l := range nn.layers {
		rows, cols := l.W.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				params = append(params, l.W.At(r, c))
			}
		}
		for j := 0; j < l.B.Len(); j++ {
			params = append(params, l.B.AtVec(j))
		}
	}
	return params
}

// SetParams restores parameters in the order produced by Params.
// Panics if the length does not match ParamCount.
func (nn *FFNN) SetParams(params []float64) {
	if len(params) != nn.ParamCount() {
		panic(fmt.Sprintf("neural: got %d params, topology %v needs %d", len(params), nn.topo, nn.ParamCount()))
	}
	idx := 0
	for _, l := range nn.layers {
		rows, cols := l.W.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				l.W.Set(r, c, params[idx])
				idx++
			}
		}
		for j := 0; j < l.B.Len(); j++ {
			l.B.SetVec(j, params[idx])
			idx++
		}
	}
}

// Crossover produces a child from a single split point drawn uniformly from
// [0, ParamCount]. Parameters before the split come from a, the rest from b.
// The child has a's topology. Panics if the topologies differ.
func Crossover(rng *rand.Rand, a, b *FFNN) *FFNN {
	mustMatch(a, b)
	return CrossoverAt(a, b, rng.IntN(a.ParamCount()+1))
}

// CrossoverAt is Crossover with an explicit split index. A split of
// ParamCount reproduces a and a split of 0 reproduces b.
func CrossoverAt(a, b *FFNN, split int) *FFNN {
	mustMatch(a, b)
	n := a.ParamCount()
	if split < 0 || split > n {
		panic(fmt.Sprintf("neural: crossover split %d out of range [0, %d]", split, n))
	}

	pa, pb := a.Params(), b.Params()
	params := append(pa[:split:split], pb[split:]...)

	child := a.Clone()
	child.SetParams(params)
	return child
}

func mustMatch(a, b *FFNN) {
	if !a.SameTopology(b) {
		panic(fmt.Sprintf("neural: crossover of mismatched topologies %v and %v", a.topo, b.topo))
	}
}
