package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/transformer/internal/tensor"
)

// Rsqrt computes 1/sqrt(x) element-wise.
func (cpu *CPUBackend) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat32("rsqrt", x, func(v float32) float32 {
		return float32(1.0 / math.Sqrt(float64(v)))
	})
}

// Sin computes the sine of each element.
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat32("sin", x, func(v float32) float32 {
		return float32(math.Sin(float64(v)))
	})
}

// Cos computes the cosine of each element.
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat32("cos", x, func(v float32) float32 {
		return float32(math.Cos(float64(v)))
	})
}

// ReLU computes max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat32("relu", x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

func (cpu *CPUBackend) unaryFloat32(op string, x *tensor.RawTensor, fn func(float32) float32) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: only float32 supported, got %s", op, x.DType()))
	}

	result := tensor.MustNewRaw(x.Shape(), tensor.Float32, cpu.device)
	dst := result.AsFloat32()
	for i, v := range x.AsFloat32() {
		dst[i] = fn(v)
	}
	return result
}
