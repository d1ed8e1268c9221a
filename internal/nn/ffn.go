package nn

import (
	"github.com/born-ml/transformer/internal/tensor"
)

// DefaultFeedForwardScope is the conventional scope name for a feed-forward sublayer.
const DefaultFeedForwardScope = "multihead_attention_feedforward"

// FeedForwardConfig holds the feed-forward sublayer sizes.
type FeedForwardConfig struct {
	NumUnits [2]int // {hidden, output}; output must equal the input channels
	Epsilon  float32
}

// DefaultFeedForwardConfig returns the base Transformer sizes {2048, 512}.
func DefaultFeedForwardConfig() FeedForwardConfig {
	return FeedForwardConfig{
		NumUnits: [2]int{2048, 512},
		Epsilon:  DefaultEpsilon,
	}
}

// Validate checks the configuration for an input with the given channels.
func (c FeedForwardConfig) Validate(inputDim int) error {
	hidden, output := c.NumUnits[0], c.NumUnits[1]
	switch {
	case hidden <= 0 || output <= 0:
		return shapeErrorf(DefaultFeedForwardScope, "num_units must be positive, got %v", c.NumUnits)
	case output != inputDim:
		return shapeErrorf(DefaultFeedForwardScope, "residual connection needs output units (%d) == input channels (%d)", output, inputDim)
	}
	return nil
}

// FeedForward is the position-wise sublayer:
//
//	y = LayerNorm(x + conv1d_1(relu(conv1d(x))))
//
// Both convolutions have width 1. Parameters: "conv1d", "conv1d_1" and "ln".
type FeedForward[B tensor.Backend] struct {
	Inner *Conv1D[B] // C -> hidden, ReLU
	Outer *Conv1D[B] // hidden -> C, no activation
	Norm  *LayerNorm[B]
}

// NewFeedForward creates or binds a feed-forward sublayer for inputDim channels.
func NewFeedForward[B tensor.Backend](scope Scope[B], inputDim int, cfg FeedForwardConfig) (*FeedForward[B], error) {
	if err := cfg.Validate(inputDim); err != nil {
		return nil, err
	}

	inner, err := NewConv1D(scope.Sub("conv1d"), inputDim, cfg.NumUnits[0], ReLU)
	if err != nil {
		return nil, err
	}
	outer, err := NewConv1D(scope.Sub("conv1d_1"), cfg.NumUnits[0], cfg.NumUnits[1], Identity)
	if err != nil {
		return nil, err
	}
	norm, err := NewLayerNorm(scope.Sub(DefaultLayerNormScope), cfg.NumUnits[1], cfg.Epsilon)
	if err != nil {
		return nil, err
	}

	return &FeedForward[B]{Inner: inner, Outer: outer, Norm: norm}, nil
}

// Forward maps x [N, T, C] to [N, T, C].
func (f *FeedForward[B]) Forward(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	hidden, err := f.Inner.Forward(x)
	if err != nil {
		return nil, err
	}
	out, err := f.Outer.Forward(hidden)
	if err != nil {
		return nil, err
	}
	return f.Norm.Forward(out.Add(x))
}
