package nn

import "github.com/born-ml/transformer/internal/tensor"

// Activation selects the nonlinearity applied after a projection.
type Activation int

// Supported activations.
const (
	Identity Activation = iota
	ReLU
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Identity:
		return "identity"
	case ReLU:
		return "relu"
	default:
		return "unknown"
	}
}

func activate[B tensor.Backend](a Activation, x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if a == ReLU {
		return x.ReLU()
	}
	return x
}
