package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerNorm_StandardizesLastAxis(t *testing.T) {
	store := newTestStore()
	ln, err := NewLayerNorm(store.Root(Create).Sub("ln"), 16, DefaultEpsilon)
	require.NoError(t, err)

	x := randn(3, 2, 5, 16).MulScalar(3).AddScalar(7)
	out, err := ln.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), out.Shape())

	means, variances := rowStats(out)
	require.Len(t, means, 10)
	for i := range means {
		assert.InDelta(t, 0, means[i], 1e-5, "row %d mean", i)
		assert.InDelta(t, 1, variances[i], 1e-4, "row %d variance", i)
	}
}

func TestLayerNorm_ConstantRowStaysFinite(t *testing.T) {
	store := newTestStore()
	ln, err := NewLayerNorm(store.Root(Create), 4, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultEpsilon, ln.Epsilon)

	out, err := ln.Forward(fromSlice(t, []float32{5, 5, 5, 5}, 1, 4))
	require.NoError(t, err)
	assertFinite(t, out)
	assert.Equal(t, []float32{0, 0, 0, 0}, out.Data())
}

func TestLayerNorm_ScaleAndShift(t *testing.T) {
	store := newTestStore()
	ln, err := NewLayerNorm(store.Root(Create).Sub("ln"), 8, DefaultEpsilon)
	require.NoError(t, err)

	require.NoError(t, ln.Gamma.Assign(ones(8).MulScalar(2)))
	require.NoError(t, ln.Beta.Assign(ones(8)))

	out, err := ln.Forward(randn(4, 3, 8))
	require.NoError(t, err)

	means, variances := rowStats(out)
	for i := range means {
		assert.InDelta(t, 1, means[i], 1e-5)
		assert.InDelta(t, 4, variances[i], 1e-3)
	}
}

func TestLayerNorm_Parameters(t *testing.T) {
	store := newTestStore()
	sc := store.Root(Create).Sub("decoder").Sub(DefaultLayerNormScope)

	ln, err := NewLayerNorm(sc, 6, DefaultEpsilon)
	require.NoError(t, err)
	assert.Equal(t, []string{"decoder/ln/beta", "decoder/ln/gamma"}, store.Names())
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, ln.Gamma.Tensor().Data())
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, ln.Beta.Tensor().Data())

	_, err = NewLayerNorm(sc, 6, DefaultEpsilon)
	require.ErrorIs(t, err, ErrScope, "a second Create under the same scope must fail")

	shared, err := NewLayerNorm(sc.WithMode(Reuse), 6, DefaultEpsilon)
	require.NoError(t, err)
	assert.Same(t, ln.Gamma, shared.Gamma)
	assert.Same(t, ln.Beta, shared.Beta)

	_, err = NewLayerNorm(store.Root(Reuse).Sub("encoder"), 6, DefaultEpsilon)
	require.ErrorIs(t, err, ErrScope, "reusing a scope that was never created must fail")
}

func TestLayerNorm_Errors(t *testing.T) {
	store := newTestStore()

	_, err := NewLayerNorm(store.Root(Create), 0, DefaultEpsilon)
	require.ErrorIs(t, err, ErrShape)

	ln, err := NewLayerNorm(store.Root(Create), 4, DefaultEpsilon)
	require.NoError(t, err)
	_, err = ln.Forward(ones(2, 3))
	require.ErrorIs(t, err, ErrShape)
}
