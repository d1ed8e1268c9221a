package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/transformer/internal/tensor"
)

// Initializer fills a freshly created parameter of the given shape.
// rng is the store's source, so seeded stores initialize reproducibly.
type Initializer func(shape tensor.Shape, rng *rand.Rand) []float32

// Constant initializes every element to v. Constant(0) and Constant(1) are
// the bias/beta and gamma initializers.
func Constant(v float32) Initializer {
	return func(shape tensor.Shape, _ *rand.Rand) []float32 {
		data := make([]float32, shape.NumElements())
		if v != 0 {
			for i := range data {
				data[i] = v
			}
		}
		return data
	}
}

// GlorotUniform draws from U(-limit, limit) with limit = sqrt(6 / (fan_in + fan_out)).
//
// Fans follow the usual convention for the kernel layouts used here:
//   - [in, out] dense kernels: fan_in = in, fan_out = out
//   - [width, in, out] conv kernels: both fans are multiplied by width
//   - vectors: fan_in = fan_out = len
func GlorotUniform() Initializer {
	return func(shape tensor.Shape, rng *rand.Rand) []float32 {
		fanIn, fanOut := fans(shape)
		limit := math.Sqrt(6.0 / float64(fanIn+fanOut))

		data := make([]float32, shape.NumElements())
		for i := range data {
			data[i] = float32((rng.Float64()*2 - 1) * limit)
		}
		return data
	}
}

func fans(shape tensor.Shape) (fanIn, fanOut int) {
	switch len(shape) {
	case 0:
		return 1, 1
	case 1:
		return shape[0], shape[0]
	case 2:
		return shape[0], shape[1]
	default:
		receptive := shape[:len(shape)-2].NumElements()
		return shape[len(shape)-2] * receptive, shape[len(shape)-1] * receptive
	}
}
