package cpu

import (
	"fmt"

	"github.com/born-ml/transformer/internal/tensor"
)

// MeanDim computes the mean along dim.
// With keepDim the reduced dimension stays as size 1, which lets the result
// broadcast back against the input.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("meanDim: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	shape := x.Shape()
	dim = shape.NormalizeDim(dim)

	outer := shape[:dim].NumElements()
	size := shape[dim]
	inner := shape[dim+1:].NumElements()

	outShape := make(tensor.Shape, 0, len(shape))
	outShape = append(outShape, shape[:dim]...)
	if keepDim {
		outShape = append(outShape, 1)
	}
	outShape = append(outShape, shape[dim+1:]...)

	result := tensor.MustNewRaw(outShape, tensor.Float32, cpu.device)
	src := x.AsFloat32()
	dst := result.AsFloat32()

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var sum float64
			for i := 0; i < size; i++ {
				sum += float64(src[o*size*inner+i*inner+in])
			}
			dst[o*inner+in] = float32(sum / float64(size))
		}
	}

	return result
}
