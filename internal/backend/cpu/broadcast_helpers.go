package cpu

import (
	"github.com/born-ml/transformer/internal/tensor"
)

// computeBroadcastStridesForShape computes strides for reading an inShape
// tensor as if it had outShape. Padded and size-1 dimensions get stride 0.
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	offset := outDim - len(inShape)
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		if inIdx < 0 || inShape[inIdx] == 1 {
			continue
		}
		strides[i] = origStrides[inIdx]
	}

	return strides
}

// computeFlatIndex maps a flat output index to the flat index of a broadcast input.
// outStrides are the output's row-major strides; inStrides come from
// computeBroadcastStridesForShape.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}
