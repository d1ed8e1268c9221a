package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/transformer/internal/backend/cpu"
	"github.com/born-ml/transformer/internal/tensor"
)

type testTensor = tensor.Tensor[float32, *cpu.CPUBackend]

var approx = cmpopts.EquateApprox(0, 1e-4)

func newTestStore() *ParamStore[*cpu.CPUBackend] {
	return NewParamStore(cpu.New(), 1)
}

func fromSlice(t *testing.T, data []float32, shape ...int) *testTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), cpu.New())
	require.NoError(t, err)
	return x
}

func randn(seed int64, shape ...int) *testTensor {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // test fixtures
	return tensor.Randn(tensor.Shape(shape), rng, cpu.New())
}

func ones(shape ...int) *testTensor {
	return tensor.Ones(tensor.Shape(shape), cpu.New())
}

// rowStats returns mean and variance of each last-axis slice.
func rowStats(x *testTensor) (means, variances []float64) {
	c := x.Shape().Last()
	data := x.Data()
	for start := 0; start < len(data); start += c {
		row := data[start : start+c]
		var sum float64
		for _, v := range row {
			sum += float64(v)
		}
		mean := sum / float64(c)

		var sq float64
		for _, v := range row {
			d := float64(v) - mean
			sq += d * d
		}
		means = append(means, mean)
		variances = append(variances, sq/float64(c))
	}
	return means, variances
}

func assertFinite(t *testing.T, x *testTensor) {
	t.Helper()
	for i, v := range x.Data() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("element %d is %v", i, v)
		}
	}
}
