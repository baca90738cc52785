// Package ops defines the closed set of scalar operators for automatic differentiation.
//
// Each operator implements the Operation interface, which provides:
//   - Forward pass: the scalar result computed from operand values
//   - Backward pass: the gradient contribution for each operand given the output gradient
//
// Supported operations:
//   - AddOp: addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - MulOp: multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: power (d(b^e)/db = e*b^(e-1), d(b^e)/de = b^e*ln(b) for b > 0)
//   - TanhOp: hyperbolic tangent (d(tanh(x))/dx = 1 - tanh²(x))
//   - ExpOp: exponential (d(exp(x))/dx = exp(x))
//
// Subtraction and division are not operators: they are composed from Add, Mul
// and Pow by the node builders.
package ops

// Kind identifies the operator that produced a node.
// None marks a leaf (an input or a constant).
type Kind uint8

// Operator kinds.
const (
	None Kind = iota
	Add
	Mul
	Pow
	Tanh
	Exp
)

var kindTags = [...]string{
	None: "",
	Add:  "+",
	Mul:  "*",
	Pow:  "pow",
	Tanh: "tanh",
	Exp:  "exp",
}

// String returns the diagnostic tag of the operator ("+", "*", "pow", "tanh", "exp").
// Leaves have an empty tag.
func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return "unknown"
}

// Arity returns the number of operands a node of this kind holds.
func (k Kind) Arity() int {
	switch k {
	case Add, Mul, Pow:
		return 2
	case Tanh, Exp:
		return 1
	default:
		return 0
	}
}

// IsLeaf reports whether k marks a leaf node.
func (k Kind) IsLeaf() bool {
	return k == None
}

// Operation is a differentiable scalar operator.
//
// Inputs are passed in operand order; the order is significant for Mul
// (left, right) and Pow (base, exponent).
type Operation interface {
	// Kind returns the operator tag.
	Kind() Kind

	// Forward computes the operator's value from its operand values.
	Forward(inputs []float64) float64

	// Backward returns the gradient contribution for each operand.
	//
	// outputGrad is the gradient accumulated on the result node, output is
	// the result node's forward value and inputs are the operand values.
	// Contributions are meant to be added to the operand gradients, never
	// assigned.
	//
	// Example for MulOp:
	//   inputs: [a, b]
	//   returns: [outputGrad*b, outputGrad*a]
	Backward(outputGrad, output float64, inputs []float64) []float64
}

var operations = map[Kind]Operation{
	Add:  NewAddOp(),
	Mul:  NewMulOp(),
	Pow:  NewPowOp(),
	Tanh: NewTanhOp(),
	Exp:  NewExpOp(),
}

// For returns the operation implementing k.
// The second result is false for None and for unknown kinds.
func For(k Kind) (Operation, bool) {
	op, ok := operations[k]
	return op, ok
}
