package nn

import (
	"math/rand"
	"time"

	"github.com/born-ml/transformer/internal/tensor"
)

// Dropout zeroes each element with probability 1-KeepProb and scales the
// survivors by 1/KeepProb. KeepProb == 1 is the identity.
//
// A Dropout owns its random source and is not safe for concurrent use.
type Dropout[B tensor.Backend] struct {
	KeepProb float32
	rng      *rand.Rand
}

// NewDropout creates a dropout layer. A nil seed draws one from the clock.
func NewDropout[B tensor.Backend](keepProb float32, seed *int64) (*Dropout[B], error) {
	if keepProb <= 0 || keepProb > 1 {
		return nil, configErrorf("dropout keep probability must be in (0, 1], got %v", keepProb)
	}

	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return &Dropout[B]{
		KeepProb: keepProb,
		rng:      rand.New(rand.NewSource(s)), //nolint:gosec // dropout masks are not security-critical
	}, nil
}

// Forward applies dropout to x.
func (d *Dropout[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if d.KeepProb >= 1 {
		return x
	}

	scale := 1 / d.KeepProb
	keep := tensor.Zeros[float32](x.Shape(), x.Backend())
	data := keep.Data()
	for i := range data {
		if d.rng.Float32() < d.KeepProb {
			data[i] = scale
		}
	}
	return x.Mul(keep)
}
