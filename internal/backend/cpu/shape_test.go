package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/transformer/internal/tensor"
)

func TestReshape_CopiesData(t *testing.T) {
	backend := New()
	x := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	y := backend.Reshape(x, tensor.Shape{3, 2})
	require.Equal(t, tensor.Shape{3, 2}, y.Shape())

	y.AsFloat32()[0] = 100
	assert.Equal(t, float32(1), x.AsFloat32()[0])
}

func TestTranspose(t *testing.T) {
	backend := New()

	t.Run("2D default", func(t *testing.T) {
		x := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		y := backend.Transpose(x)
		assert.Equal(t, tensor.Shape{3, 2}, y.Shape())
		assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, y.AsFloat32())
	})

	t.Run("3D swap last two", func(t *testing.T) {
		x := newFloat32(t, tensor.Shape{2, 2, 3}, []float32{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
		})
		y := backend.Transpose(x, 0, 2, 1)
		assert.Equal(t, tensor.Shape{2, 3, 2}, y.Shape())
		assert.Equal(t, []float32{1, 4, 2, 5, 3, 6, 7, 10, 8, 11, 9, 12}, y.AsFloat32())
	})

	t.Run("duplicate axis panics", func(t *testing.T) {
		x := newFloat32(t, tensor.Shape{2, 2}, nil)
		assert.Panics(t, func() { backend.Transpose(x, 0, 0) })
	})
}

func TestUnsqueeze(t *testing.T) {
	backend := New()
	x := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	assert.Equal(t, tensor.Shape{1, 2, 3}, backend.Unsqueeze(x, 0).Shape())
	assert.Equal(t, tensor.Shape{2, 1, 3}, backend.Unsqueeze(x, 1).Shape())
	assert.Equal(t, tensor.Shape{2, 3, 1}, backend.Unsqueeze(x, -1).Shape())
	assert.Panics(t, func() { backend.Unsqueeze(x, 4) })
}

func TestExpand(t *testing.T) {
	backend := New()

	x := newFloat32(t, tensor.Shape{2, 1}, []float32{1, 2})
	y := backend.Expand(x, tensor.Shape{2, 3})
	assert.Equal(t, []float32{1, 1, 1, 2, 2, 2}, y.AsFloat32())

	m := newBool(t, tensor.Shape{1, 2}, []bool{true, false})
	e := backend.Expand(m, tensor.Shape{3, 2})
	assert.Equal(t, []bool{true, false, true, false, true, false}, e.AsBool())

	assert.Panics(t, func() { backend.Expand(x, tensor.Shape{3, 3}) })
}

func TestCat(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	b := newFloat32(t, tensor.Shape{2, 1}, []float32{5, 6})

	cat1 := backend.Cat([]*tensor.RawTensor{a, b}, 1)
	assert.Equal(t, tensor.Shape{2, 3}, cat1.Shape())
	assert.Equal(t, []float32{1, 2, 5, 3, 4, 6}, cat1.AsFloat32())

	cat0 := backend.Cat([]*tensor.RawTensor{a, a}, 0)
	assert.Equal(t, tensor.Shape{4, 2}, cat0.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 1, 2, 3, 4}, cat0.AsFloat32())

	assert.Panics(t, func() { backend.Cat([]*tensor.RawTensor{a, b}, 0) })
}

func TestChunk(t *testing.T) {
	backend := New()
	x := newFloat32(t, tensor.Shape{2, 4}, []float32{1, 2, 3, 4, 5, 6, 7, 8})

	parts := backend.Chunk(x, 2, -1)
	require.Len(t, parts, 2)
	assert.Equal(t, []float32{1, 2, 5, 6}, parts[0].AsFloat32())
	assert.Equal(t, []float32{3, 4, 7, 8}, parts[1].AsFloat32())

	assert.Panics(t, func() { backend.Chunk(x, 3, -1) })
}

func TestChunkCat_HeadSplitRoundTrip(t *testing.T) {
	backend := New()
	data := make([]float32, 2*3*8)
	for i := range data {
		data[i] = float32(i)
	}
	x := newFloat32(t, tensor.Shape{2, 3, 8}, data)

	// Split heads onto the batch axis and back again.
	heads := backend.Cat(backend.Chunk(x, 4, 2), 0)
	require.Equal(t, tensor.Shape{8, 3, 2}, heads.Shape())

	restored := backend.Cat(backend.Chunk(heads, 4, 0), 2)
	assert.Equal(t, x.Shape(), restored.Shape())
	assert.Equal(t, data, restored.AsFloat32())
}
