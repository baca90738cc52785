package ops

// AddOp represents scalar addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct{}

// NewAddOp creates a new AddOp.
func NewAddOp() *AddOp {
	return &AddOp{}
}

// Kind returns Add.
func (op *AddOp) Kind() Kind {
	return Add
}

// Forward returns inputs[0] + inputs[1].
func (op *AddOp) Forward(inputs []float64) float64 {
	return inputs[0] + inputs[1]
}

// Backward passes the output gradient through to both operands unchanged.
func (op *AddOp) Backward(outputGrad, _ float64, _ []float64) []float64 {
	return []float64{outputGrad, outputGrad}
}
