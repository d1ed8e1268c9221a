package nn

import (
	"github.com/born-ml/transformer/internal/tensor"
)

// DefaultLayerNormScope is the scope name layers nest their normalizer under.
const DefaultLayerNormScope = "ln"

// DefaultEpsilon is the variance floor used by LayerNorm.
const DefaultEpsilon float32 = 1e-8

// LayerNorm normalizes over the last dimension:
//
//	y = gamma * (x - mean(x)) / sqrt(var(x) + eps) + beta
//
// mean and var are computed per last-axis slice. gamma [C] starts at ones and
// beta [C] at zeros.
//
// Example:
//
//	ln, err := nn.NewLayerNorm(scope.Sub("ln"), 512, nn.DefaultEpsilon)
//	out, err := ln.Forward(x) // [..., 512] -> [..., 512]
type LayerNorm[B tensor.Backend] struct {
	Gamma    *Parameter[B]
	Beta     *Parameter[B]
	Features int
	Epsilon  float32
}

// NewLayerNorm creates or binds gamma and beta in scope.
// A non-positive epsilon selects DefaultEpsilon.
func NewLayerNorm[B tensor.Backend](scope Scope[B], features int, epsilon float32) (*LayerNorm[B], error) {
	if features <= 0 {
		return nil, shapeErrorf("layer_norm", "features must be positive, got %d", features)
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	beta, err := scope.Get("beta", tensor.Shape{features}, Constant(0))
	if err != nil {
		return nil, err
	}
	gamma, err := scope.Get("gamma", tensor.Shape{features}, Constant(1))
	if err != nil {
		return nil, err
	}

	return &LayerNorm[B]{
		Gamma:    gamma,
		Beta:     beta,
		Features: features,
		Epsilon:  epsilon,
	}, nil
}

// Forward normalizes x [..., Features]. The output has the input's shape.
func (l *LayerNorm[B]) Forward(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if shape := x.Shape(); shape.Rank() == 0 || shape.Last() != l.Features {
		return nil, shapeErrorf("layer_norm", "input %v does not end in %d features", shape, l.Features)
	}

	mean := x.MeanDim(-1, true)
	centered := x.Sub(mean)
	variance := centered.Mul(centered).MeanDim(-1, true)
	normalized := centered.Mul(variance.AddScalar(l.Epsilon).Rsqrt())

	// [C] broadcasts against [..., C].
	return normalized.Mul(l.Gamma.Tensor()).Add(l.Beta.Tensor()), nil
}
