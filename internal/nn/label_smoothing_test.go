package nn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelSmoothing_DocumentedExample(t *testing.T) {
	targets := fromSlice(t, []float32{
		0, 0, 1,
		0, 1, 0,
		1, 0, 0,
	}, 1, 3, 3)

	out, err := LabelSmoothing(targets, 0.1)
	require.NoError(t, err)
	assert.Equal(t, targets.Shape(), out.Shape())

	want := []float32{
		0.0333, 0.0333, 0.9333,
		0.0333, 0.9333, 0.0333,
		0.9333, 0.0333, 0.0333,
	}
	for i, v := range out.Data() {
		assert.InDelta(t, want[i], v, 1e-4, "element %d", i)
	}
}

func TestLabelSmoothing_OneHotRows(t *testing.T) {
	const classes = 5
	const eps float32 = 0.2

	data := make([]float32, 2*classes)
	data[3] = 1
	data[classes] = 1
	out, err := LabelSmoothing(fromSlice(t, data, 2, classes), eps)
	require.NoError(t, err)

	for row := 0; row < 2; row++ {
		var sum float32
		for c := 0; c < classes; c++ {
			v := out.At(row, c)
			sum += v
			if data[row*classes+c] == 1 {
				assert.InDelta(t, 1-eps+eps/classes, v, 1e-6)
			} else {
				assert.InDelta(t, eps/classes, v, 1e-7)
			}
		}
		assert.InDelta(t, 1, sum, 1e-6)
	}
}

func TestLabelSmoothing_ZeroEpsilonIsIdentity(t *testing.T) {
	x := fromSlice(t, []float32{0, 1, 0, 0}, 2, 2)
	out, err := LabelSmoothing(x, 0)
	require.NoError(t, err)
	if diff := cmp.Diff(x.Data(), out.Data()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelSmoothing_Errors(t *testing.T) {
	x := ones(2, 3)

	_, err := LabelSmoothing(x, -0.1)
	require.ErrorIs(t, err, ErrConfig)
	_, err = LabelSmoothing(x, 1.5)
	require.ErrorIs(t, err, ErrConfig)

	scalar := fromSlice(t, []float32{1})
	_, err = LabelSmoothing(scalar, 0.1)
	require.ErrorIs(t, err, ErrShape)
}
