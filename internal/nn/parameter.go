package nn

import (
	"fmt"

	"github.com/born-ml/transformer/internal/tensor"
)

// Parameter is a named learned tensor held by a ParamStore.
//
// Layers read parameters during Forward. Only the surrounding training code
// replaces their values, through Assign.
type Parameter[B tensor.Backend] struct {
	name      string                     // Full hierarchical key
	tensor    *tensor.Tensor[float32, B] // Current value
	trainable bool
}

// Name returns the parameter's full key.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the current value.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Shape returns the parameter's shape.
func (p *Parameter[B]) Shape() tensor.Shape {
	return p.tensor.Shape()
}

// Trainable reports whether an optimizer should update the parameter.
func (p *Parameter[B]) Trainable() bool {
	return p.trainable
}

// Assign replaces the parameter value. The new tensor must keep the shape.
func (p *Parameter[B]) Assign(t *tensor.Tensor[float32, B]) error {
	if !t.Shape().Equal(p.Shape()) {
		return &ShapeError{
			Op:      "assign",
			Details: fmt.Sprintf("parameter %q has shape %v, got %v", p.name, p.Shape(), t.Shape()),
		}
	}
	p.tensor = t
	return nil
}
