package cpu

import (
	"fmt"

	"github.com/born-ml/transformer/internal/tensor"
)

// Equal returns a == b element-wise as a bool tensor, with broadcasting.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("equal: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("equal: %v", err))
	}

	result := tensor.MustNewRaw(outShape, tensor.Bool, cpu.device)
	dst := result.AsBool()

	switch a.DType() {
	case tensor.Float32:
		compareTyped(dst, a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Int32:
		compareTyped(dst, a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Bool:
		compareTyped(dst, a.AsBool(), b.AsBool(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	default:
		panic(fmt.Sprintf("equal: unsupported dtype %s", a.DType()))
	}

	return result
}

func compareTyped[T comparable](dst []bool, a, b []T, aShape, bShape, outShape tensor.Shape, needsBroadcast bool) {
	if !needsBroadcast {
		for i := range dst {
			dst[i] = a[i] == b[i]
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)
	for i := range dst {
		dst[i] = a[computeFlatIndex(i, outStrides, aStrides)] == b[computeFlatIndex(i, outStrides, bStrides)]
	}
}
