package ops

// MulOp represents scalar multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// NewMulOp creates a new MulOp.
func NewMulOp() *MulOp {
	return &MulOp{}
}

// Kind returns Mul.
func (op *MulOp) Kind() Kind {
	return Mul
}

// Forward returns inputs[0] * inputs[1].
func (op *MulOp) Forward(inputs []float64) float64 {
	return inputs[0] * inputs[1]
}

// Backward computes input gradients for multiplication (product rule).
func (op *MulOp) Backward(outputGrad, _ float64, inputs []float64) []float64 {
	a, b := inputs[0], inputs[1]
	return []float64{outputGrad * b, outputGrad * a}
}
