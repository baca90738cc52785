package autodiff

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the subgraph rooted at root, one node per line, indented two
// spaces per depth, with operands in stored order.
//
// Shared sub-expressions are written once per incoming edge.
func Render(w io.Writer, root *Node) error {
	if root == nil {
		return ErrNilNode
	}
	return render(w, root, 0)
}

func render(w io.Writer, n *Node, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), n); err != nil {
		return fmt.Errorf("render %q: %w", n.label, err)
	}
	for _, operand := range n.operands {
		if err := render(w, operand, depth+1); err != nil {
			return err
		}
	}
	return nil
}
