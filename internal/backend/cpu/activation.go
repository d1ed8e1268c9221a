package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/transformer/internal/tensor"
)

// Softmax computes softmax along dim: exp(x_i - max) / sum_j exp(x_j - max).
//
// Subtracting the row maximum keeps exp in range even when masked scores
// hold very large negative sentinels.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	shape := x.Shape()
	dim = shape.NormalizeDim(dim)

	result := tensor.MustNewRaw(shape, tensor.Float32, cpu.device)
	src := x.AsFloat32()
	dst := result.AsFloat32()

	outer := shape[:dim].NumElements()
	size := shape[dim]
	inner := shape[dim+1:].NumElements()

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in

			maxVal := float32(math.Inf(-1))
			for i := 0; i < size; i++ {
				maxVal = max(maxVal, src[base+i*inner])
			}

			var sum float64
			for i := 0; i < size; i++ {
				idx := base + i*inner
				e := math.Exp(float64(src[idx] - maxVal))
				dst[idx] = float32(e)
				sum += e
			}

			for i := 0; i < size; i++ {
				dst[base+i*inner] = float32(float64(dst[base+i*inner]) / sum)
			}
		}
	}

	return result
}
