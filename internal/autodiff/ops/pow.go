package ops

import "math"

// PowOp represents exponentiation: output = base ^ exponent.
//
// Backward pass:
//   - d(b^e)/db = e * b^(e-1)
//   - d(b^e)/de = b^e * ln(b), only defined for b > 0
//
// A negative base with a non-integral exponent produces NaN in the forward
// pass, following math.Pow.
type PowOp struct{}

// NewPowOp creates a new PowOp.
func NewPowOp() *PowOp {
	return &PowOp{}
}

// Kind returns Pow.
func (op *PowOp) Kind() Kind {
	return Pow
}

// Forward returns inputs[0] raised to inputs[1].
func (op *PowOp) Forward(inputs []float64) float64 {
	return math.Pow(inputs[0], inputs[1])
}

// Backward computes input gradients for [base, exponent].
//
// The exponent receives nothing when base <= 0, where ln(base) is undefined.
func (op *PowOp) Backward(outputGrad, output float64, inputs []float64) []float64 {
	base, exponent := inputs[0], inputs[1]

	gradBase := outputGrad * exponent * math.Pow(base, exponent-1)

	gradExponent := 0.0
	if base > 0 {
		gradExponent = outputGrad * output * math.Log(base)
	}

	return []float64{gradBase, gradExponent}
}
