package autodiff

import "github.com/born-ml/micrograd/internal/autodiff/ops"

// GradientTape holds every node reachable from a root exactly once, in
// topological order: operands always precede the nodes built from them and
// the root is last.
//
// Usage:
//
//	tape := NewGradientTape(loss)
//	grads := tape.Backward(1.0)
//	fmt.Println(grads[x])
type GradientTape struct {
	nodes []*Node
}

// NewGradientTape records the graph below root using an iterative post-order
// depth-first search with a visited set. A nil root yields an empty tape.
func NewGradientTape(root *Node) *GradientTape {
	tape := &GradientTape{}
	if root == nil {
		return tape
	}

	type frame struct {
		node *Node
		done bool
	}

	visited := make(map[*Node]bool)
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.done {
			tape.nodes = append(tape.nodes, top.node)
			continue
		}
		if visited[top.node] {
			continue
		}
		visited[top.node] = true

		stack = append(stack, frame{node: top.node, done: true})
		// Push in reverse so the first operand is finished first.
		for i := len(top.node.operands) - 1; i >= 0; i-- {
			if operand := top.node.operands[i]; !visited[operand] {
				stack = append(stack, frame{node: operand})
			}
		}
	}

	return tape
}

// Nodes returns the recorded nodes, operands before results.
func (t *GradientTape) Nodes() []*Node {
	out := make([]*Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Len returns the number of recorded nodes.
func (t *GradientTape) Len() int {
	return len(t.nodes)
}

// NumOps returns the number of recorded non-leaf nodes.
func (t *GradientTape) NumOps() int {
	count := 0
	for _, n := range t.nodes {
		if !n.IsLeaf() {
			count++
		}
	}
	return count
}

// Root returns the node the tape was recorded from, or nil for an empty tape.
func (t *GradientTape) Root() *Node {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[len(t.nodes)-1]
}

// Backward computes this pass's gradient contribution for every recorded node
// by walking the tape in reverse.
//
// Algorithm:
//  1. Start with outputGrad on the root
//  2. Walk nodes in reverse topological order
//  3. For each node, apply its operator's local rule exactly once
//  4. Accumulate contributions when a node feeds several consumers
//
// Node gradients are not modified; the returned map holds the contributions.
func (t *GradientTape) Backward(outputGrad float64) map[*Node]float64 {
	grads := make(map[*Node]float64, len(t.nodes))
	if len(t.nodes) == 0 {
		return grads
	}

	grads[t.Root()] = outputGrad

	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		op, ok := ops.For(n.op)
		if !ok {
			continue
		}

		inputGrads := op.Backward(grads[n], n.value, values(n.operands))
		for j, operand := range n.operands {
			grads[operand] += inputGrads[j]
		}
	}

	return grads
}
