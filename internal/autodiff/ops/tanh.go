package ops

import "math"

// TanhOp represents the hyperbolic tangent: tanh(x) = (exp(x) - exp(-x)) / (exp(x) + exp(-x)).
type TanhOp struct{}

// NewTanhOp creates a new tanh operation.
func NewTanhOp() *TanhOp {
	return &TanhOp{}
}

// Kind returns Tanh.
func (op *TanhOp) Kind() Kind {
	return Tanh
}

// Forward returns tanh(inputs[0]).
func (op *TanhOp) Forward(inputs []float64) float64 {
	return math.Tanh(inputs[0])
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// tanh(x) is the forward output, so:
// grad_input = grad_output * (1 - output²).
func (op *TanhOp) Backward(outputGrad, output float64, _ []float64) []float64 {
	return []float64{outputGrad * (1 - output*output)}
}
