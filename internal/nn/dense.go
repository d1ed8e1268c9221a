package nn

import (
	"github.com/born-ml/transformer/internal/tensor"
)

// Dense is a fully connected layer applied over the last axis:
// [..., in] -> [..., out], y = act(x @ kernel + bias).
//
// Parameters under its scope: "kernel" [in, out] (Glorot uniform) and "bias" [out] (zeros).
type Dense[B tensor.Backend] struct {
	Kernel      *Parameter[B]
	Bias        *Parameter[B]
	InFeatures  int
	OutFeatures int
	Activation  Activation
}

// NewDense creates or binds a Dense layer in scope.
func NewDense[B tensor.Backend](scope Scope[B], inFeatures, outFeatures int, act Activation) (*Dense[B], error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, shapeErrorf("dense", "features must be positive, got in=%d out=%d", inFeatures, outFeatures)
	}

	kernel, err := scope.Get("kernel", tensor.Shape{inFeatures, outFeatures}, GlorotUniform())
	if err != nil {
		return nil, err
	}
	bias, err := scope.Get("bias", tensor.Shape{outFeatures}, Constant(0))
	if err != nil {
		return nil, err
	}

	return &Dense[B]{
		Kernel:      kernel,
		Bias:        bias,
		InFeatures:  inFeatures,
		OutFeatures: outFeatures,
		Activation:  act,
	}, nil
}

// Forward applies the layer. x must have rank >= 2 and last dimension InFeatures.
func (d *Dense[B]) Forward(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	return project("dense", x, d.Kernel.Tensor(), d.Bias.Tensor(), d.InFeatures, d.OutFeatures, d.Activation)
}

// project flattens the leading axes, multiplies by a [in, out] kernel and restores them.
func project[B tensor.Backend](
	op string,
	x, kernel, bias *tensor.Tensor[float32, B],
	in, out int,
	act Activation,
) (*tensor.Tensor[float32, B], error) {
	shape := x.Shape()
	if len(shape) < 2 {
		return nil, shapeErrorf(op, "input must have rank >= 2, got %v", shape)
	}
	if shape.Last() != in {
		return nil, shapeErrorf(op, "input last dimension %d does not match %d input features", shape.Last(), in)
	}

	rows := shape.NumElements() / in
	y := x.Reshape(rows, in).MatMul(kernel).Add(bias)
	y = activate(act, y)

	outShape := append(shape[:len(shape)-1].Clone(), out)
	return y.Reshape(outShape...), nil
}
