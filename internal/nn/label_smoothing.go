package nn

import (
	"github.com/born-ml/transformer/internal/tensor"
)

// DefaultSmoothing is the conventional label smoothing rate.
const DefaultSmoothing float32 = 0.1

// LabelSmoothing softens one-hot targets [..., V]:
//
//	y = (1 - epsilon) * x + epsilon / V
//
// For a one-hot row every zero becomes epsilon/V and the one becomes
// 1 - epsilon + epsilon/V, so rows still sum to 1.
//
// Example:
//
//	targets := [[[0, 0, 1], [0, 1, 0], [1, 0, 0]]]
//	LabelSmoothing(targets, 0.1)
//	// [[[0.0333, 0.0333, 0.9333], [0.0333, 0.9333, 0.0333], [0.9333, 0.0333, 0.0333]]]
func LabelSmoothing[B tensor.Backend](inputs *tensor.Tensor[float32, B], epsilon float32) (*tensor.Tensor[float32, B], error) {
	if inputs.Shape().Rank() == 0 {
		return nil, shapeErrorf("label_smoothing", "inputs must have a class axis")
	}
	if epsilon < 0 || epsilon > 1 {
		return nil, configErrorf("label smoothing epsilon must be in [0, 1], got %v", epsilon)
	}

	classes := float32(inputs.Shape().Last())
	return inputs.MulScalar(1 - epsilon).AddScalar(epsilon / classes), nil
}
