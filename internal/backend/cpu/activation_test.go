package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/transformer/internal/tensor"
)

func TestSoftmax_LastDim(t *testing.T) {
	backend := New()
	x := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 0, 0, 0})

	result := backend.Softmax(x, -1).AsFloat32()

	e1, e2, e3 := math.Exp(1), math.Exp(2), math.Exp(3)
	sum := e1 + e2 + e3
	assertClose(t, []float32{
		float32(e1 / sum), float32(e2 / sum), float32(e3 / sum),
		1.0 / 3, 1.0 / 3, 1.0 / 3,
	}, result)
}

func TestSoftmax_FirstDim(t *testing.T) {
	backend := New()
	x := newFloat32(t, tensor.Shape{2, 2}, []float32{0, 5, 0, 5})

	// Columns are constant, so every column is uniform.
	assertClose(t, []float32{0.5, 0.5, 0.5, 0.5}, backend.Softmax(x, 0).AsFloat32())
}

func TestSoftmax_MaskedSentinel(t *testing.T) {
	backend := New()
	const sentinel = -4294967295
	x := newFloat32(t, tensor.Shape{1, 4}, []float32{0.3, sentinel, 0.3, sentinel})

	result := backend.Softmax(x, -1).AsFloat32()
	assertClose(t, []float32{0.5, 0, 0.5, 0}, result)
}

func TestSoftmax_AllMaskedIsUniform(t *testing.T) {
	backend := New()
	const sentinel = -4294967295
	x := newFloat32(t, tensor.Shape{3}, []float32{sentinel, sentinel, sentinel})

	result := backend.Softmax(x, -1).AsFloat32()
	for _, v := range result {
		assert.InDelta(t, 1.0/3, v, epsilon)
	}
}

func TestMeanDim(t *testing.T) {
	backend := New()
	x := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	tests := []struct {
		name     string
		dim      int
		keepDim  bool
		shape    tensor.Shape
		expected []float32
	}{
		{"last keep", -1, true, tensor.Shape{2, 1}, []float32{2, 5}},
		{"last drop", 1, false, tensor.Shape{2}, []float32{2, 5}},
		{"first keep", 0, true, tensor.Shape{1, 3}, []float32{2.5, 3.5, 4.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := backend.MeanDim(x, tt.dim, tt.keepDim)
			assert.Equal(t, tt.shape, result.Shape())
			assertClose(t, tt.expected, result.AsFloat32())
		})
	}
}
