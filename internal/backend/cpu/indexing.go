package cpu

import (
	"fmt"

	"github.com/born-ml/transformer/internal/tensor"
)

// Where selects elements: result[i] = condition[i] ? x[i] : y[i].
// All three inputs broadcast against each other.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %s", condition.DType()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: dtype mismatch %s vs %s", x.DType(), y.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(condition.Shape(), x.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}
	outShape, _, err = tensor.BroadcastShapes(outShape, y.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}

	result := tensor.MustNewRaw(outShape, x.DType(), cpu.device)
	cond := condition.AsBool()

	outStrides := outShape.ComputeStrides()
	cStrides := computeBroadcastStridesForShape(condition.Shape(), outShape)
	xStrides := computeBroadcastStridesForShape(x.Shape(), outShape)
	yStrides := computeBroadcastStridesForShape(y.Shape(), outShape)

	switch x.DType() {
	case tensor.Float32:
		whereTyped(result.AsFloat32(), cond, x.AsFloat32(), y.AsFloat32(), outStrides, cStrides, xStrides, yStrides)
	case tensor.Int32:
		whereTyped(result.AsInt32(), cond, x.AsInt32(), y.AsInt32(), outStrides, cStrides, xStrides, yStrides)
	case tensor.Bool:
		whereTyped(result.AsBool(), cond, x.AsBool(), y.AsBool(), outStrides, cStrides, xStrides, yStrides)
	default:
		panic(fmt.Sprintf("where: unsupported dtype %s", x.DType()))
	}

	return result
}

func whereTyped[T any](dst []T, cond []bool, x, y []T, outStrides, cStrides, xStrides, yStrides []int) {
	for i := range dst {
		if cond[computeFlatIndex(i, outStrides, cStrides)] {
			dst[i] = x[computeFlatIndex(i, outStrides, xStrides)]
		} else {
			dst[i] = y[computeFlatIndex(i, outStrides, yStrides)]
		}
	}
}

// Embedding looks up rows of weight [numEmbeddings, dim] by int32 indices of
// any shape. The result has shape indices.Shape() + [dim].
// Panics if an index falls outside [0, numEmbeddings).
func (cpu *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	if weight.DType() != tensor.Float32 {
		panic(fmt.Sprintf("embedding: weight must be float32, got %s", weight.DType()))
	}
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("embedding: indices must be int32, got %s", indices.DType()))
	}
	wShape := weight.Shape()
	if len(wShape) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2D, got %v", wShape))
	}
	numEmbeddings, dim := wShape[0], wShape[1]

	outShape := append(indices.Shape().Clone(), dim)
	result := tensor.MustNewRaw(outShape, tensor.Float32, cpu.device)

	src := weight.AsFloat32()
	dst := result.AsFloat32()
	for i, idx := range indices.AsInt32() {
		row := int(idx)
		if row < 0 || row >= numEmbeddings {
			panic(fmt.Sprintf("embedding: index %d out of range [0, %d)", row, numEmbeddings))
		}
		copy(dst[i*dim:(i+1)*dim], src[row*dim:(row+1)*dim])
	}

	return result
}
