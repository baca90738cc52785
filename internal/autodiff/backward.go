package autodiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

var (
	// ErrNilNode is returned when a traversal is started from a nil node.
	ErrNilNode = errors.New("autodiff: nil node")

	// ErrNotSeeded is returned when backward is invoked on a root whose
	// gradient was never seeded (still zero).
	ErrNotSeeded = errors.New("autodiff: root gradient not seeded")

	// ErrUnknownMode is returned for an unsupported traversal mode.
	ErrUnknownMode = errors.New("autodiff: unknown backward mode")
)

// Mode selects the backward traversal strategy.
type Mode int

const (
	// Topological applies every node's local rule exactly once, in reverse
	// topological order. It produces chain-rule-correct gradients for graphs
	// with shared sub-expressions.
	Topological Mode = iota

	// Recursive recurses depth-first into each operand after updating it,
	// without a visited set, using each node's running gradient total.
	// A node shared by k consumers is re-propagated k times, so gradients
	// below shared intermediate nodes are overcounted. Kept for parity with
	// the unguarded traversal.
	Recursive
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Topological:
		return "topological"
	case Recursive:
		return "recursive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by Mode.String (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "topological", "topo", "":
		return Topological, nil
	case "recursive":
		return Recursive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// SeedGradient sets the gradient of root before a backward pass,
// conventionally to 1 (d(root)/d(root)).
func SeedGradient(root *Node, grad float64) {
	root.grad = grad
}

// Backward propagates root's seeded gradient to every transitive operand
// using Topological mode.
func Backward(root *Node) error {
	return BackwardMode(root, Topological)
}

// BackwardMode propagates root's seeded gradient using the given mode.
//
// Gradients are accumulated, never overwritten: running Topological backward
// twice without ZeroGrad doubles every non-root gradient.
func BackwardMode(root *Node, mode Mode) error {
	if root == nil {
		return ErrNilNode
	}
	if root.grad == 0 {
		return fmt.Errorf("backward from %q: %w", root.label, ErrNotSeeded)
	}

	switch mode {
	case Topological:
		backwardTopological(root)
	case Recursive:
		backwardRecursive(root)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
	return nil
}

func backwardTopological(root *Node) {
	grads := NewGradientTape(root).Backward(root.grad)
	for n, g := range grads {
		if n != root {
			n.grad += g
		}
	}
}

// backwardRecursive mutates gradients in place. Add routes the gradient to an
// operand and descends into it before visiting the next operand; the other
// binary operators update both operands before descending into either.
func backwardRecursive(n *Node) {
	op, ok := ops.For(n.op)
	if !ok {
		return
	}

	inputGrads := op.Backward(n.grad, n.value, values(n.operands))

	if n.op == ops.Add {
		for i, operand := range n.operands {
			operand.grad += inputGrads[i]
			backwardRecursive(operand)
		}
		return
	}

	for i, operand := range n.operands {
		operand.grad += inputGrads[i]
	}
	for _, operand := range n.operands {
		backwardRecursive(operand)
	}
}

// ZeroGrad resets the gradient of every node reachable from root, root included.
func ZeroGrad(root *Node) {
	for _, n := range NewGradientTape(root).nodes {
		n.grad = 0
	}
}

// Topo returns the unique nodes reachable from root, operands before results.
func Topo(root *Node) []*Node {
	return NewGradientTape(root).Nodes()
}

// Leaves returns the unique leaf nodes reachable from root in topological order.
func Leaves(root *Node) []*Node {
	var leaves []*Node
	for _, n := range NewGradientTape(root).nodes {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}
	return leaves
}
