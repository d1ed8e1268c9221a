package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/transformer/internal/tensor"
)

func TestMatMul(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := newFloat32(t, tensor.Shape{3, 2}, []float32{7, 8, 9, 10, 11, 12})

	result := backend.MatMul(a, b)
	require.Equal(t, tensor.Shape{2, 2}, result.Shape())
	assertClose(t, []float32{58, 64, 139, 154}, result.AsFloat32())
}

func TestMatMul_ShapeMismatchPanics(t *testing.T) {
	backend := New()
	assert.Panics(t, func() {
		backend.MatMul(newFloat32(t, tensor.Shape{2, 3}, nil), newFloat32(t, tensor.Shape{2, 3}, nil))
	})
}

func TestBatchMatMul(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 2, 2}, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})
	b := newFloat32(t, tensor.Shape{2, 2, 2}, []float32{
		1, 0, 0, 1,
		2, 0, 0, 2,
	})

	result := backend.BatchMatMul(a, b)
	require.Equal(t, tensor.Shape{2, 2, 2}, result.Shape())
	assertClose(t, []float32{1, 2, 3, 4, 10, 12, 14, 16}, result.AsFloat32())
}

func TestBatchMatMul_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := func(n int) []float32 {
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(rng.NormFloat64())
		}
		return out
	}

	a := newFloat32(t, tensor.Shape{16, 5, 8}, data(16*5*8))
	b := newFloat32(t, tensor.Shape{16, 8, 3}, data(16*8*3))

	par := New().BatchMatMul(a, b).AsFloat32()
	seq := NewSequential().BatchMatMul(a, b).AsFloat32()
	assertClose(t, seq, par)
}

func TestBatchMatMul_Panics(t *testing.T) {
	backend := New()
	assert.Panics(t, func() {
		backend.BatchMatMul(newFloat32(t, tensor.Shape{2, 2}, nil), newFloat32(t, tensor.Shape{2, 2}, nil))
	}, "2D inputs")
	assert.Panics(t, func() {
		backend.BatchMatMul(newFloat32(t, tensor.Shape{2, 2, 2}, nil), newFloat32(t, tensor.Shape{3, 2, 2}, nil))
	}, "batch mismatch")
}
