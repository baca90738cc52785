package autodiff

import "github.com/born-ml/micrograd/internal/autodiff/ops"

// Add returns a new node for n + other.
func (n *Node) Add(other *Node) *Node {
	return binary(ops.Add, n, other)
}

// AddScalar returns a new node for n + x, promoting x to a scalar leaf.
func (n *Node) AddScalar(x float64) *Node {
	return n.Add(Scalar(x))
}

// Mul returns a new node for n * other.
func (n *Node) Mul(other *Node) *Node {
	return binary(ops.Mul, n, other)
}

// MulScalar returns a new node for n * x, promoting x to a scalar leaf.
func (n *Node) MulScalar(x float64) *Node {
	return n.Mul(Scalar(x))
}

// Pow returns a new node for n ^ exponent.
// A negative base with a non-integral exponent yields NaN.
func (n *Node) Pow(exponent *Node) *Node {
	return binary(ops.Pow, n, exponent)
}

// PowScalar returns a new node for n ^ x, promoting x to a scalar leaf.
func (n *Node) PowScalar(x float64) *Node {
	return n.Pow(Scalar(x))
}

// Tanh returns a new node for tanh(n).
func (n *Node) Tanh() *Node {
	return unary(ops.Tanh, n)
}

// Exp returns a new node for e^n.
func (n *Node) Exp() *Node {
	return unary(ops.Exp, n)
}

// Neg returns a new node for n * -1.
func (n *Node) Neg() *Node {
	return n.MulScalar(-1)
}

// Sub returns n + (other * -1).
//
// Subtraction has no backward rule of its own, so the graph gains an
// intermediate negation node.
func (n *Node) Sub(other *Node) *Node {
	return n.Add(other.Neg())
}

// SubScalar returns n - x, promoting x to a scalar leaf.
func (n *Node) SubScalar(x float64) *Node {
	return n.Sub(Scalar(x))
}

// Div returns n * (other ^ -1).
//
// Division by a zero-valued node produces an infinite or NaN value.
func (n *Node) Div(other *Node) *Node {
	return n.Mul(other.PowScalar(-1))
}

// DivScalar returns n / x, promoting x to a scalar leaf.
func (n *Node) DivScalar(x float64) *Node {
	return n.Div(Scalar(x))
}

// ScalarAdd returns x + n with a literal left operand.
func ScalarAdd(x float64, n *Node) *Node {
	return Scalar(x).Add(n)
}

// ScalarSub returns x - n with a literal left operand.
func ScalarSub(x float64, n *Node) *Node {
	return Scalar(x).Sub(n)
}

// ScalarMul returns x * n with a literal left operand.
func ScalarMul(x float64, n *Node) *Node {
	return Scalar(x).Mul(n)
}
