package nn

import (
	"github.com/born-ml/transformer/internal/tensor"
)

// Conv1D is a width-1 convolution over [N, T, C] sequences, i.e. the same
// fully connected map applied at every position.
//
// Parameters: "kernel" [1, in, out] and "bias" [out].
type Conv1D[B tensor.Backend] struct {
	Kernel      *Parameter[B]
	Bias        *Parameter[B]
	InChannels  int
	OutChannels int
	Activation  Activation
}

// NewConv1D creates or binds a width-1 Conv1D layer in scope.
func NewConv1D[B tensor.Backend](scope Scope[B], inChannels, outChannels int, act Activation) (*Conv1D[B], error) {
	if inChannels <= 0 || outChannels <= 0 {
		return nil, shapeErrorf("conv1d", "channels must be positive, got in=%d out=%d", inChannels, outChannels)
	}

	kernel, err := scope.Get("kernel", tensor.Shape{1, inChannels, outChannels}, GlorotUniform())
	if err != nil {
		return nil, err
	}
	bias, err := scope.Get("bias", tensor.Shape{outChannels}, Constant(0))
	if err != nil {
		return nil, err
	}

	return &Conv1D[B]{
		Kernel:      kernel,
		Bias:        bias,
		InChannels:  inChannels,
		OutChannels: outChannels,
		Activation:  act,
	}, nil
}

// Forward applies the convolution to x [N, T, in] and returns [N, T, out].
func (c *Conv1D[B]) Forward(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if x.Shape().Rank() != 3 {
		return nil, shapeErrorf("conv1d", "input must be [N, T, C], got %v", x.Shape())
	}
	kernel := c.Kernel.Tensor().Reshape(c.InChannels, c.OutChannels)
	return project("conv1d", x, kernel, c.Bias.Tensor(), c.InChannels, c.OutChannels, c.Activation)
}
