package cpu

import (
	"fmt"

	"github.com/born-ml/transformer/internal/parallel"
	"github.com/born-ml/transformer/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication on 3D tensors:
// [B, M, K] @ [B, K, N] -> [B, M, N].
//
// Batches are independent, so they are distributed over the backend's workers.
// In attention the batch axis is heads*batch, which keeps every core busy.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 3 || len(bShape) != 3 {
		panic(fmt.Sprintf("BatchMatMul: inputs must be 3D, got %dD and %dD", len(aShape), len(bShape)))
	}
	if aShape[0] != bShape[0] {
		panic(fmt.Sprintf("BatchMatMul: batch dimension mismatch: %d vs %d", aShape[0], bShape[0]))
	}

	batchSize, m, k := aShape[0], aShape[1], aShape[2]
	k2, n := bShape[1], bShape[2]
	if k != k2 {
		panic(fmt.Sprintf("BatchMatMul: inner dimension mismatch: %d vs %d", k, k2))
	}
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("BatchMatMul: unsupported dtype %s", a.DType()))
	}

	result := tensor.MustNewRaw(tensor.Shape{batchSize, m, n}, tensor.Float32, cpu.device)

	aData, bData, cData := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
	sizeA, sizeB, sizeC := m*k, k*n, m*n

	parallel.For(batchSize, func(i int) {
		sgemm(
			cData[i*sizeC:(i+1)*sizeC],
			aData[i*sizeA:(i+1)*sizeA],
			bData[i*sizeB:(i+1)*sizeB],
			m, k, n,
		)
	}, cpu.parallel)

	return result
}
