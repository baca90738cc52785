package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neuron builds o = tanh(x1*w1 + x2*w2 + b) with tanh expressed through exp.
type neuron struct {
	x1, x2, w1, w2, b *autodiff.Node
	n, o              *autodiff.Node
}

func newNeuron() *neuron {
	nr := &neuron{
		x1: autodiff.Named("x1", 2.0),
		x2: autodiff.Named("x2", 0.0),
		w1: autodiff.Named("w1", -3.0),
		w2: autodiff.Named("w2", 1.0),
		b:  autodiff.Named("b", 6.8814),
	}

	x1w1 := nr.x1.Mul(nr.w1).SetLabel("x1w1")
	x2w2 := nr.x2.Mul(nr.w2).SetLabel("x2w2")
	sum := x1w1.Add(x2w2).SetLabel("x1w1 + x2w2")
	nr.n = sum.Add(nr.b).SetLabel("n")

	e := autodiff.ScalarMul(2, nr.n).Exp().SetLabel("e")
	nr.o = e.SubScalar(1).Div(e.AddScalar(1)).SetLabel("o")
	return nr
}

func TestBackward_ReferenceNeuron(t *testing.T) {
	nr := newNeuron()

	autodiff.SeedGradient(nr.o, 1)
	require.NoError(t, autodiff.Backward(nr.o))

	assert.InDelta(t, 0.7071, nr.o.Value(), 1e-3)
	assert.InDelta(t, -1.5, nr.x1.Grad(), 1e-3)
	assert.InDelta(t, 1.0, nr.w1.Grad(), 1e-3)
	assert.InDelta(t, 0.5, nr.x2.Grad(), 1e-3)
	assert.InDelta(t, 0.0, nr.w2.Grad(), 1e-3)
	assert.InDelta(t, 0.5, nr.b.Grad(), 1e-3)
	assert.InDelta(t, 0.5, nr.n.Grad(), 1e-3)
	assert.Equal(t, 1.0, nr.o.Grad(), "root keeps its seed")
}

func TestBackward_MatchesTanhNode(t *testing.T) {
	x := autodiff.Named("x", 0.8814)
	viaTanh := x.Tanh()
	autodiff.SeedGradient(viaTanh, 1)
	require.NoError(t, autodiff.Backward(viaTanh))

	nr := newNeuron()
	autodiff.SeedGradient(nr.o, 1)
	require.NoError(t, autodiff.Backward(nr.o))

	assert.InDelta(t, viaTanh.Value(), nr.o.Value(), 1e-9)
	assert.InDelta(t, x.Grad(), nr.n.Grad(), 1e-9)
}

func TestBackward_MultiplySwap(t *testing.T) {
	a := autodiff.Named("a", 3.7)
	b := autodiff.Named("b", -1.3)
	c := a.Mul(b)

	autodiff.SeedGradient(c, 1)
	require.NoError(t, autodiff.Backward(c))

	assert.Equal(t, b.Value(), a.Grad())
	assert.Equal(t, a.Value(), b.Grad())
}

func TestBackward_TanhSaturation(t *testing.T) {
	for _, v := range []float64{20, -20, 50} {
		x := autodiff.New(v)
		y := x.Tanh()
		autodiff.SeedGradient(y, 1)
		require.NoError(t, autodiff.Backward(y))
		assert.InDelta(t, 0.0, x.Grad(), 1e-12, "x=%v", v)
	}

	// Gradient shrinks monotonically as |x| grows.
	prev := math.Inf(1)
	for _, v := range []float64{0, 1, 2, 4, 8} {
		x := autodiff.New(v)
		y := x.Tanh()
		autodiff.SeedGradient(y, 1)
		require.NoError(t, autodiff.Backward(y))
		assert.Less(t, x.Grad(), prev)
		prev = x.Grad()
	}
}

func TestBackward_AccumulatesAcrossConsumers(t *testing.T) {
	a := autodiff.Named("a", 1.5)
	b := autodiff.Named("b", 2.0)

	exprA := a.Mul(b)
	exprB := a.Exp()
	root := exprA.Add(exprB)

	autodiff.SeedGradient(exprA, 1)
	require.NoError(t, autodiff.Backward(exprA))
	fromA := a.Grad()
	autodiff.ZeroGrad(exprA)

	autodiff.SeedGradient(exprB, 1)
	require.NoError(t, autodiff.Backward(exprB))
	fromB := a.Grad()
	autodiff.ZeroGrad(exprB)

	autodiff.SeedGradient(root, 1)
	require.NoError(t, autodiff.Backward(root))

	assert.InDelta(t, fromA+fromB, a.Grad(), 1e-12)
	assert.InDelta(t, b.Value()+math.Exp(a.Value()), a.Grad(), 1e-12)
}

func TestBackward_SameOperandTwice(t *testing.T) {
	a := autodiff.Named("a", 3)

	sum := a.Add(a)
	autodiff.SeedGradient(sum, 1)
	require.NoError(t, autodiff.Backward(sum))
	assert.Equal(t, 2.0, a.Grad())

	autodiff.ZeroGrad(sum)

	sq := a.Mul(a)
	autodiff.SeedGradient(sq, 1)
	require.NoError(t, autodiff.Backward(sq))
	assert.Equal(t, 6.0, a.Grad())
}

func TestBackward_RerunDoublesGradients(t *testing.T) {
	nr := newNeuron()
	autodiff.SeedGradient(nr.o, 1)
	require.NoError(t, autodiff.Backward(nr.o))

	first := make(map[*autodiff.Node]float64)
	for _, n := range autodiff.Topo(nr.o) {
		first[n] = n.Grad()
	}

	require.NoError(t, autodiff.Backward(nr.o))

	for n, g := range first {
		if n == nr.o {
			assert.Equal(t, g, n.Grad(), "root keeps its seed")
			continue
		}
		assert.InDelta(t, 2*g, n.Grad(), 1e-12, "node %q", n.Label())
	}
}

func TestBackward_Errors(t *testing.T) {
	err := autodiff.Backward(nil)
	assert.ErrorIs(t, err, autodiff.ErrNilNode)

	y := autodiff.Named("y", 1).MulScalar(2)
	err = autodiff.Backward(y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, autodiff.ErrNotSeeded))

	autodiff.SeedGradient(y, 1)
	err = autodiff.BackwardMode(y, autodiff.Mode(7))
	assert.ErrorIs(t, err, autodiff.ErrUnknownMode)
}

func TestBackward_LeafRoot(t *testing.T) {
	x := autodiff.Named("x", 5)
	autodiff.SeedGradient(x, 1)
	require.NoError(t, autodiff.Backward(x))
	assert.Equal(t, 1.0, x.Grad())
}

func TestBackward_NonFiniteGradientsDoNotPanic(t *testing.T) {
	x := autodiff.Named("x", 1)
	zero := autodiff.Named("zero", 0)
	q := x.Div(zero)

	autodiff.SeedGradient(q, 1)
	require.NoError(t, autodiff.Backward(q))

	assert.True(t, math.IsInf(x.Grad(), 1))
	g := zero.Grad()
	assert.True(t, math.IsNaN(g) || math.IsInf(g, 0))
}

func TestBackwardRecursive_MatchesOnTrees(t *testing.T) {
	build := func() (*autodiff.Node, *autodiff.Node, *autodiff.Node) {
		x := autodiff.Named("x", 0.7)
		w := autodiff.Named("w", -1.2)
		y := x.Mul(w).AddScalar(0.3).Tanh().PowScalar(2)
		return x, w, y
	}

	x1, w1, y1 := build()
	autodiff.SeedGradient(y1, 1)
	require.NoError(t, autodiff.BackwardMode(y1, autodiff.Topological))

	x2, w2, y2 := build()
	autodiff.SeedGradient(y2, 1)
	require.NoError(t, autodiff.BackwardMode(y2, autodiff.Recursive))

	assert.InDelta(t, x1.Grad(), x2.Grad(), 1e-12)
	assert.InDelta(t, w1.Grad(), w2.Grad(), 1e-12)
}

func TestBackwardRecursive_OvercountsSharedIntermediate(t *testing.T) {
	build := func() (*autodiff.Node, *autodiff.Node) {
		x := autodiff.Named("x", 3)
		m := x.MulScalar(2).SetLabel("m")
		return x, m.Add(m)
	}

	// d(2x + 2x)/dx = 4
	x, y := build()
	autodiff.SeedGradient(y, 1)
	require.NoError(t, autodiff.BackwardMode(y, autodiff.Topological))
	assert.Equal(t, 4.0, x.Grad())

	// m is re-propagated with its running total: 1*2 + 2*2.
	x, y = build()
	autodiff.SeedGradient(y, 1)
	require.NoError(t, autodiff.BackwardMode(y, autodiff.Recursive))
	assert.Equal(t, 6.0, x.Grad())
}

func TestBackwardRecursive_DivergesOnReferenceNeuron(t *testing.T) {
	nr := newNeuron()
	autodiff.SeedGradient(nr.o, 1)
	require.NoError(t, autodiff.BackwardMode(nr.o, autodiff.Recursive))

	// e feeds both numerator and denominator, so everything below it drifts.
	assert.Greater(t, math.Abs(nr.x1.Grad()+1.5), 1e-3)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    autodiff.Mode
		wantErr bool
	}{
		{"topological", autodiff.Topological, false},
		{"Topological", autodiff.Topological, false},
		{"topo", autodiff.Topological, false},
		{"", autodiff.Topological, false},
		{"recursive", autodiff.Recursive, false},
		{" RECURSIVE ", autodiff.Recursive, false},
		{"bfs", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := autodiff.ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, autodiff.ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "topological", autodiff.Topological.String())
	assert.Equal(t, "recursive", autodiff.Recursive.String())
	assert.Equal(t, "Mode(9)", autodiff.Mode(9).String())
}

func TestZeroGrad(t *testing.T) {
	nr := newNeuron()
	autodiff.SeedGradient(nr.o, 1)
	require.NoError(t, autodiff.Backward(nr.o))

	autodiff.ZeroGrad(nr.o)
	for _, n := range autodiff.Topo(nr.o) {
		assert.Equal(t, 0.0, n.Grad(), "node %q", n.Label())
	}
}
