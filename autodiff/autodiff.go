// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over scalars.
//
// Arithmetic on nodes builds a directed acyclic expression graph. After the
// root's gradient is seeded, Backward propagates it to every node that
// contributed to the root.
//
// Example:
//
//	import "github.com/born-ml/micrograd/autodiff"
//
//	func main() {
//	    x := autodiff.Named("x", 2.0)
//	    w := autodiff.Named("w", -3.0)
//	    b := autodiff.Named("b", 6.8814)
//	    o := x.Mul(w).Add(b).Tanh()
//
//	    autodiff.SeedGradient(o, 1)
//	    if err := autodiff.Backward(o); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Grad(), w.Grad()) // -1.5 1
//	}
package autodiff

import (
	"io"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Node is a scalar value plus its provenance in the expression graph.
type Node = autodiff.Node

// Kind identifies the operator that produced a node.
type Kind = ops.Kind

// Operator kinds.
const (
	None = ops.None
	Add  = ops.Add
	Mul  = ops.Mul
	Pow  = ops.Pow
	Tanh = ops.Tanh
	Exp  = ops.Exp
)

// Mode selects the backward traversal strategy.
type Mode = autodiff.Mode

// Backward traversal modes.
const (
	// Topological applies each node's local rule exactly once (default).
	Topological = autodiff.Topological

	// Recursive revisits shared nodes once per incoming edge and overcounts
	// gradients below shared intermediates.
	Recursive = autodiff.Recursive
)

// GradientTape holds the nodes reachable from a root in topological order.
type GradientTape = autodiff.GradientTape

// Errors returned by traversal functions.
var (
	ErrNilNode     = autodiff.ErrNilNode
	ErrNotSeeded   = autodiff.ErrNotSeeded
	ErrUnknownMode = autodiff.ErrUnknownMode
)

// New creates an unlabelled leaf node.
func New(value float64) *Node {
	return autodiff.New(value)
}

// Named creates a labelled leaf node.
func Named(label string, value float64) *Node {
	return autodiff.Named(label, value)
}

// Scalar creates a leaf node labelled "scalar".
func Scalar(value float64) *Node {
	return autodiff.Scalar(value)
}

// ScalarAdd returns x + n.
func ScalarAdd(x float64, n *Node) *Node {
	return autodiff.ScalarAdd(x, n)
}

// ScalarSub returns x - n.
func ScalarSub(x float64, n *Node) *Node {
	return autodiff.ScalarSub(x, n)
}

// ScalarMul returns x * n.
func ScalarMul(x float64, n *Node) *Node {
	return autodiff.ScalarMul(x, n)
}

// SeedGradient sets the root gradient before a backward pass.
func SeedGradient(root *Node, grad float64) {
	autodiff.SeedGradient(root, grad)
}

// Backward propagates root's seeded gradient in Topological mode.
func Backward(root *Node) error {
	return autodiff.Backward(root)
}

// BackwardMode propagates root's seeded gradient using the given mode.
func BackwardMode(root *Node, mode Mode) error {
	return autodiff.BackwardMode(root, mode)
}

// ParseMode parses "topological" or "recursive".
func ParseMode(s string) (Mode, error) {
	return autodiff.ParseMode(s)
}

// ZeroGrad resets every gradient reachable from root.
func ZeroGrad(root *Node) {
	autodiff.ZeroGrad(root)
}

// Topo returns the nodes reachable from root, operands before results.
func Topo(root *Node) []*Node {
	return autodiff.Topo(root)
}

// Leaves returns the leaf nodes reachable from root.
func Leaves(root *Node) []*Node {
	return autodiff.Leaves(root)
}

// NewGradientTape records the graph below root.
func NewGradientTape(root *Node) *GradientTape {
	return autodiff.NewGradientTape(root)
}

// Render writes a diagnostic dump of the subgraph rooted at root.
func Render(w io.Writer, root *Node) error {
	return autodiff.Render(w, root)
}
