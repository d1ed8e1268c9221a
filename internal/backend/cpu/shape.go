package cpu

import (
	"fmt"

	"github.com/born-ml/transformer/internal/tensor"
)

// Reshape returns a tensor with the same data but a different shape.
// The data is copied so the result never aliases its input.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return t.Clone().WithShape(newShape)
}

// Unsqueeze inserts a dimension of size 1 at dim. Negative dims count from
// the end of the result, so -1 appends a trailing axis.
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	rank := len(shape) + 1
	if dim < 0 {
		dim += rank
	}
	if dim < 0 || dim >= rank {
		panic(fmt.Sprintf("unsqueeze: dimension %d out of range for result rank %d", dim, rank))
	}

	newShape := make(tensor.Shape, 0, rank)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return x.Clone().WithShape(newShape)
}

// Transpose permutes the tensor's dimensions. With no axes it reverses them.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	// Reading the source with permuted strides turns transpose into a gather.
	srcStrides := shape.ComputeStrides()
	permuted := make([]int, ndim)
	for i, ax := range axes {
		permuted[i] = srcStrides[ax]
	}

	result := tensor.MustNewRaw(newShape, t.DType(), cpu.device)
	gatherStrided(result, t, newShape.ComputeStrides(), permuted)
	return result
}

// Expand broadcasts x to shape, materializing repeated values.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	outShape, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil || !outShape.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot broadcast %v to %v", x.Shape(), shape))
	}

	result := tensor.MustNewRaw(shape, x.DType(), cpu.device)
	gatherStrided(result, x, shape.ComputeStrides(), computeBroadcastStridesForShape(x.Shape(), shape))
	return result
}

// gatherStrided fills dst so that dst[i] = src[computeFlatIndex(i, outStrides, inStrides)].
func gatherStrided(dst, src *tensor.RawTensor, outStrides, inStrides []int) {
	switch src.DType() {
	case tensor.Float32:
		gatherTyped(dst.AsFloat32(), src.AsFloat32(), outStrides, inStrides)
	case tensor.Int32:
		gatherTyped(dst.AsInt32(), src.AsInt32(), outStrides, inStrides)
	case tensor.Bool:
		gatherTyped(dst.AsBool(), src.AsBool(), outStrides, inStrides)
	default:
		panic(fmt.Sprintf("gather: unsupported dtype %s", src.DType()))
	}
}

func gatherTyped[T any](dst, src []T, outStrides, inStrides []int) {
	for i := range dst {
		dst[i] = src[computeFlatIndex(i, outStrides, inStrides)]
	}
}
