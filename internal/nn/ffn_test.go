package nn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/transformer/internal/tensor"
)

func TestFeedForward_PreservesShape(t *testing.T) {
	store := newTestStore()
	cfg := FeedForwardConfig{NumUnits: [2]int{32, 8}}

	ff, err := NewFeedForward(store.Root(Create).Sub(DefaultFeedForwardScope), 8, cfg)
	require.NoError(t, err)

	x := randn(21, 2, 5, 8)
	out, err := ff.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), out.Shape())
	assertFinite(t, out)

	means, variances := rowStats(out)
	for i := range means {
		assert.InDelta(t, 0, means[i], 1e-5)
		assert.InDelta(t, 1, variances[i], 1e-3)
	}
}

func TestFeedForward_Parameters(t *testing.T) {
	store := newTestStore()
	_, err := NewFeedForward(store.Root(Create).Sub(DefaultFeedForwardScope), 8, FeedForwardConfig{NumUnits: [2]int{16, 8}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"multihead_attention_feedforward/conv1d/bias",
		"multihead_attention_feedforward/conv1d/kernel",
		"multihead_attention_feedforward/conv1d_1/bias",
		"multihead_attention_feedforward/conv1d_1/kernel",
		"multihead_attention_feedforward/ln/beta",
		"multihead_attention_feedforward/ln/gamma",
	}, store.Names())

	inner, ok := store.Lookup("multihead_attention_feedforward/conv1d/kernel")
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{1, 8, 16}, inner.Shape())

	outer, ok := store.Lookup("multihead_attention_feedforward/conv1d_1/kernel")
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{1, 16, 8}, outer.Shape())
}

func TestFeedForward_ZeroOuterLayerIsLayerNorm(t *testing.T) {
	store := newTestStore()
	ff, err := NewFeedForward(store.Root(Create), 4, FeedForwardConfig{NumUnits: [2]int{6, 4}})
	require.NoError(t, err)

	zeros := tensor.Zeros[float32](ff.Outer.Kernel.Shape(), store.Backend())
	require.NoError(t, ff.Outer.Kernel.Assign(zeros))

	x := randn(22, 1, 3, 4)
	out, err := ff.Forward(x)
	require.NoError(t, err)

	want, err := ff.Norm.Forward(x)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Data(), out.Data(), approx); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedForwardConfig_Validate(t *testing.T) {
	def := DefaultFeedForwardConfig()
	assert.Equal(t, [2]int{2048, 512}, def.NumUnits)
	require.NoError(t, def.Validate(512))

	require.ErrorIs(t, def.Validate(256), ErrShape)
	require.ErrorIs(t, FeedForwardConfig{NumUnits: [2]int{0, 8}}.Validate(8), ErrShape)

	_, err := NewFeedForward(newTestStore().Root(Create), 256, def)
	require.ErrorIs(t, err, ErrShape)
}

func TestFeedForward_InputErrors(t *testing.T) {
	ff, err := NewFeedForward(newTestStore().Root(Create), 4, FeedForwardConfig{NumUnits: [2]int{6, 4}})
	require.NoError(t, err)

	_, err = ff.Forward(ones(2, 3, 5))
	require.ErrorIs(t, err, ErrShape)
	_, err = ff.Forward(ones(3, 4))
	require.ErrorIs(t, err, ErrShape)
}
