// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the transformer building blocks.
//
// # Overview
//
// This package contains:
//   - LayerNorm: per-vector standardization with learned gamma and beta
//   - PositionalEncoding: fixed sinusoidal table of MaxPositions rows
//   - MultiHeadAttention: masked, optionally causal attention with residual and layer norm
//   - FeedForward: two width-1 convolutions with residual and layer norm
//   - LabelSmoothing: target softening for the loss
//   - Embedding, Dense, Conv1D, Dropout and mask helpers
//
// # Parameter scopes
//
// Learned weights live in a ParamStore keyed by hierarchical paths. Every
// constructor takes a Scope; in Create mode it allocates new parameters and
// in Reuse mode it binds to the ones already stored under the same path.
// Mixing the two inconsistently is a ScopeError.
//
// # Basic Usage
//
//	backend := cpu.New()
//	store := nn.NewParamStore(backend, 42)
//	enc := store.Root(nn.Create).Sub("encoder")
//
//	pe, _ := nn.NewPositionalEncoding(512, false, backend)
//	mha, _ := nn.NewMultiHeadAttention(enc.Sub(nn.DefaultAttentionScope), 512, 512, nn.DefaultAttentionConfig())
//	ff, _ := nn.NewFeedForward(enc.Sub(nn.DefaultFeedForwardScope), 512, nn.DefaultFeedForwardConfig())
//
//	pos, _ := pe.Forward(tensor.Shape{n, t})
//	x = x.Add(pos)
//	x, _ = mha.Forward(x, x, mask, mask)
//	x, _ = ff.Forward(x)
//
// Composition into encoder and decoder stacks is left to the caller.
package nn
