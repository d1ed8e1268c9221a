package cpu

import (
	"fmt"

	"github.com/born-ml/transformer/internal/tensor"
)

// MulScalar multiplies every element by scalar.
// The scalar must match the tensor's element type.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("mulScalar", x, scalar,
		func(v, s float32) float32 { return v * s },
		func(v, s int32) int32 { return v * s })
}

// AddScalar adds scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("addScalar", x, scalar,
		func(v, s float32) float32 { return v + s },
		func(v, s int32) int32 { return v + s })
}

func (cpu *CPUBackend) scalarOp(
	op string,
	x *tensor.RawTensor,
	scalar any,
	f32 func(v, s float32) float32,
	i32 func(v, s int32) int32,
) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		s, ok := scalar.(float32)
		if !ok {
			panic(fmt.Sprintf("%s: scalar %v (%T) does not match dtype float32", op, scalar, scalar))
		}
		dst, src := result.AsFloat32(), x.AsFloat32()
		for i, v := range src {
			dst[i] = f32(v, s)
		}
	case tensor.Int32:
		s, ok := scalar.(int32)
		if !ok {
			panic(fmt.Sprintf("%s: scalar %v (%T) does not match dtype int32", op, scalar, scalar))
		}
		dst, src := result.AsInt32(), x.AsInt32()
		for i, v := range src {
			dst[i] = i32(v, s)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}

	return result
}
