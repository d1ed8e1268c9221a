// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// Element-wise kernels support NumPy broadcasting; matrix products run on
// gonum's SGEMM and batched products are spread across cores.
//
// The backend holds no mutable state and is safe for concurrent use.
package cpu

import (
	internalcpu "github.com/born-ml/transformer/internal/backend/cpu"
	"github.com/born-ml/transformer/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend that uses every core for batched matrix products.
//
// Example:
//
//	import (
//	    "github.com/born-ml/transformer/backend/cpu"
//	    "github.com/born-ml/transformer/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewSequential creates a CPU backend that runs every kernel on the calling goroutine.
func NewSequential() *Backend {
	return internalcpu.NewSequential()
}

// Features lists the SIMD extensions detected on the host CPU.
func Features() []string {
	return internalcpu.Features()
}
