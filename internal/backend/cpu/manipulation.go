package cpu

import (
	"fmt"

	"github.com/born-ml/transformer/internal/tensor"
)

// Cat concatenates tensors along dim. All other dimensions must match.
//
// Tensors are contiguous row-major, so each input contributes one block of
// shape[dim:] per outer index and the copy can run on raw bytes.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	first := tensors[0]
	shape := first.Shape()
	dim = shape.NormalizeDim(dim)

	outShape := shape.Clone()
	outShape[dim] = 0
	for i, t := range tensors {
		ts := t.Shape()
		if len(ts) != len(shape) || t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: tensor %d has shape %v dtype %s, expected rank %d dtype %s",
				i, ts, t.DType(), len(shape), first.DType()))
		}
		for d := range ts {
			if d != dim && ts[d] != shape[d] {
				panic(fmt.Sprintf("cat: shape mismatch at dimension %d: %v vs %v", d, ts, shape))
			}
		}
		outShape[dim] += ts[dim]
	}

	result := tensor.MustNewRaw(outShape, first.DType(), cpu.device)

	elem := first.DType().Size()
	outer := shape[:dim].NumElements()
	inner := shape[dim+1:].NumElements()
	dst := result.Data()
	outBlock := outShape[dim] * inner * elem

	offset := 0
	for _, t := range tensors {
		block := t.Shape()[dim] * inner * elem
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*outBlock+offset:o*outBlock+offset+block], src[o*block:(o+1)*block])
		}
		offset += block
	}

	return result
}

// Chunk splits x into n equal parts along dim.
// Panics if the dimension size is not divisible by n.
func (cpu *CPUBackend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	if n <= 0 || shape[dim]%n != 0 {
		panic(fmt.Sprintf("chunk: dimension %d of size %d is not divisible by %d", dim, shape[dim], n))
	}

	partShape := shape.Clone()
	partShape[dim] = shape[dim] / n

	elem := x.DType().Size()
	outer := shape[:dim].NumElements()
	inner := shape[dim+1:].NumElements()
	srcBlock := shape[dim] * inner * elem
	partBlock := partShape[dim] * inner * elem
	src := x.Data()

	parts := make([]*tensor.RawTensor, n)
	for p := range parts {
		part := tensor.MustNewRaw(partShape, x.DType(), cpu.device)
		dst := part.Data()
		for o := 0; o < outer; o++ {
			start := o*srcBlock + p*partBlock
			copy(dst[o*partBlock:(o+1)*partBlock], src[start:start+partBlock])
		}
		parts[p] = part
	}

	return parts
}
