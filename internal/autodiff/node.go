// Package autodiff implements reverse-mode automatic differentiation over scalar nodes.
//
// Architecture:
//   - Node: a float64 value plus its provenance (operator kind and ordered operands)
//   - Builders: every arithmetic method allocates a new Node; existing nodes are never modified
//   - GradientTape: the nodes reachable from a root, operands before results
//   - Backward: propagates a seeded root gradient down to every transitive operand
//
// Usage:
//
//	x := autodiff.Named("x", 2.0)
//	w := autodiff.Named("w", -3.0)
//	y := x.Mul(w).Tanh()
//
//	autodiff.SeedGradient(y, 1)
//	if err := autodiff.Backward(y); err != nil {
//	    return err
//	}
//	fmt.Println(x.Grad()) // dy/dx = w * (1 - tanh²(x*w))
package autodiff

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// ScalarLabel is the label given to leaves promoted from literal operands.
const ScalarLabel = "scalar"

// Node is a scalar value in the expression graph.
//
// The forward state (value, operator kind and operands) is fixed at creation.
// Only the gradient and the label change afterwards. Operands are shared:
// a node stays alive as long as any caller or downstream node references it.
type Node struct {
	value    float64
	grad     float64
	op       ops.Kind
	operands []*Node // len(operands) == op.Arity()
	label    string
}

// New creates an unlabelled leaf node.
func New(value float64) *Node {
	return &Node{value: value}
}

// Named creates a labelled leaf node.
func Named(label string, value float64) *Node {
	return &Node{value: value, label: label}
}

// Scalar creates a leaf node labelled "scalar" for a literal operand.
func Scalar(value float64) *Node {
	return Named(ScalarLabel, value)
}

// unary builds a one-operand node of the given kind.
func unary(kind ops.Kind, a *Node) *Node {
	return newResult(kind, a)
}

// binary builds a two-operand node of the given kind, keeping operand order.
func binary(kind ops.Kind, a, b *Node) *Node {
	return newResult(kind, a, b)
}

func newResult(kind ops.Kind, operands ...*Node) *Node {
	op, ok := ops.For(kind)
	if !ok || len(operands) != kind.Arity() {
		panic(fmt.Sprintf("autodiff: cannot build %q node from %d operands", kind, len(operands)))
	}

	return &Node{
		value:    op.Forward(values(operands)),
		op:       kind,
		operands: operands,
	}
}

// Value returns the forward-computed value.
func (n *Node) Value() float64 {
	return n.value
}

// Grad returns the accumulated gradient.
func (n *Node) Grad() float64 {
	return n.grad
}

// Op returns the operator kind that produced the node (ops.None for leaves).
func (n *Node) Op() ops.Kind {
	return n.op
}

// Operands returns a copy of the node's operands in insertion order.
func (n *Node) Operands() []*Node {
	out := make([]*Node, len(n.operands))
	copy(out, n.operands)
	return out
}

// IsLeaf reports whether the node has no operands.
func (n *Node) IsLeaf() bool {
	return n.op.IsLeaf()
}

// Label returns the diagnostic label.
func (n *Node) Label() string {
	return n.label
}

// SetLabel sets the diagnostic label and returns n for chaining.
func (n *Node) SetLabel(label string) *Node {
	n.label = label
	return n
}

// String formats the node as label=(value, grad) [tag].
func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("%s=(%.6g, %.6g)", n.label, n.value, n.grad)
	}
	return fmt.Sprintf("%s=(%.6g, %.6g) [%s]", n.label, n.value, n.grad, n.op)
}

func values(nodes []*Node) []float64 {
	out := make([]float64, len(nodes))
	for i, n := range nodes {
		out[i] = n.value
	}
	return out
}
