// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/transformer/internal/nn"
	"github.com/born-ml/transformer/tensor"
)

// Errors

// Sentinel errors for errors.Is checks.
var (
	ErrShape  = nn.ErrShape
	ErrScope  = nn.ErrScope
	ErrConfig = nn.ErrConfig
)

// ShapeError reports incompatible tensor ranks or dimensions.
type ShapeError = nn.ShapeError

// ScopeError reports a parameter create/reuse conflict.
type ScopeError = nn.ScopeError

// Parameters

// Parameter is a named learned tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// ParamStore is the registry of learned parameters keyed by hierarchical path.
type ParamStore[B tensor.Backend] = nn.ParamStore[B]

// Scope is a named position in a ParamStore plus its lookup mode.
type Scope[B tensor.Backend] = nn.Scope[B]

// ScopeMode selects whether a Scope creates or reuses parameters.
type ScopeMode = nn.ScopeMode

// Scope modes.
const (
	Create = nn.Create
	Reuse  = nn.Reuse
)

// Initializer fills a freshly created parameter.
type Initializer = nn.Initializer

// ParamOption configures parameter creation.
type ParamOption = nn.ParamOption

// NewParamStore creates an empty parameter store seeded for reproducible initialization.
//
// Example:
//
//	store := nn.NewParamStore(cpu.New(), 42)
//	scope := store.Root(nn.Create).Sub("encoder")
func NewParamStore[B tensor.Backend](backend B, seed int64) *ParamStore[B] {
	return nn.NewParamStore(backend, seed)
}

// Constant initializes every element to v.
func Constant(v float32) Initializer {
	return nn.Constant(v)
}

// GlorotUniform is the default weight initializer.
func GlorotUniform() Initializer {
	return nn.GlorotUniform()
}

// WithTrainable sets a new parameter's trainability flag.
func WithTrainable(trainable bool) ParamOption {
	return nn.WithTrainable(trainable)
}

// Layers

// Activation selects the nonlinearity after a projection.
type Activation = nn.Activation

// Activations.
const (
	Identity = nn.Identity
	ReLU     = nn.ReLU
)

// Dense is a fully connected layer over the last axis.
type Dense[B tensor.Backend] = nn.Dense[B]

// NewDense creates or binds a Dense layer.
func NewDense[B tensor.Backend](scope Scope[B], inFeatures, outFeatures int, act Activation) (*Dense[B], error) {
	return nn.NewDense(scope, inFeatures, outFeatures, act)
}

// Conv1D is a width-1 convolution over [N, T, C] sequences.
type Conv1D[B tensor.Backend] = nn.Conv1D[B]

// NewConv1D creates or binds a width-1 convolution.
func NewConv1D[B tensor.Backend](scope Scope[B], inChannels, outChannels int, act Activation) (*Conv1D[B], error) {
	return nn.NewConv1D(scope, inChannels, outChannels, act)
}

// LayerNorm normalizes over the last dimension with learned gamma and beta.
type LayerNorm[B tensor.Backend] = nn.LayerNorm[B]

// NewLayerNorm creates or binds a layer normalization.
//
// Example:
//
//	ln, err := nn.NewLayerNorm(scope.Sub("ln"), 512, nn.DefaultEpsilon)
func NewLayerNorm[B tensor.Backend](scope Scope[B], features int, epsilon float32) (*LayerNorm[B], error) {
	return nn.NewLayerNorm(scope, features, epsilon)
}

// PositionalEncoding is the fixed sinusoidal position table.
type PositionalEncoding[B tensor.Backend] = nn.PositionalEncoding[B]

// NewPositionalEncoding precomputes the [MaxPositions, numUnits] table.
//
// Example:
//
//	pe, err := nn.NewPositionalEncoding(512, true, backend)
//	pos, err := pe.Forward(ids.Shape()) // [N, T] -> [N, T, 512]
func NewPositionalEncoding[B tensor.Backend](numUnits int, scale bool, backend B) (*PositionalEncoding[B], error) {
	return nn.NewPositionalEncoding(numUnits, scale, backend)
}

// Embedding maps token ids to learned vectors.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// EmbeddingConfig controls zero padding and scaling of embeddings.
type EmbeddingConfig = nn.EmbeddingConfig

// DefaultEmbeddingConfig enables zero padding and scaling.
func DefaultEmbeddingConfig() EmbeddingConfig {
	return nn.DefaultEmbeddingConfig()
}

// NewEmbedding creates or binds a token embedding table.
func NewEmbedding[B tensor.Backend](scope Scope[B], vocabSize, numUnits int, cfg EmbeddingConfig) (*Embedding[B], error) {
	return nn.NewEmbedding(scope, vocabSize, numUnits, cfg)
}

// Dropout zeroes elements with probability 1-KeepProb.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a dropout layer. A nil seed draws one from the clock.
func NewDropout[B tensor.Backend](keepProb float32, seed *int64) (*Dropout[B], error) {
	return nn.NewDropout[B](keepProb, seed)
}

// Attention

// AttentionConfig holds the hyperparameters of a MultiHeadAttention layer.
type AttentionConfig = nn.AttentionConfig

// AttentionResult carries the output, masked scores and weights of one attention call.
type AttentionResult[B tensor.Backend] = nn.AttentionResult[B]

// MultiHeadAttention is masked scaled dot-product attention with residual and layer norm.
type MultiHeadAttention[B tensor.Backend] = nn.MultiHeadAttention[B]

// DefaultAttentionConfig returns 8 heads, no dropout and no causal masking.
func DefaultAttentionConfig() AttentionConfig {
	return nn.DefaultAttentionConfig()
}

// NewMultiHeadAttention creates or binds an attention layer.
//
// Example:
//
//	cfg := nn.DefaultAttentionConfig()
//	cfg.Causality = true
//	mha, err := nn.NewMultiHeadAttention(scope.Sub(nn.DefaultAttentionScope), 512, 512, cfg)
//	out, err := mha.Forward(dec, dec, decMask, decMask)
func NewMultiHeadAttention[B tensor.Backend](scope Scope[B], queryDim, keyDim int, cfg AttentionConfig) (*MultiHeadAttention[B], error) {
	return nn.NewMultiHeadAttention(scope, queryDim, keyDim, cfg)
}

// Feed-forward

// FeedForwardConfig holds the feed-forward sublayer sizes.
type FeedForwardConfig = nn.FeedForwardConfig

// FeedForward is the position-wise sublayer with residual and layer norm.
type FeedForward[B tensor.Backend] = nn.FeedForward[B]

// DefaultFeedForwardConfig returns {2048, 512}.
func DefaultFeedForwardConfig() FeedForwardConfig {
	return nn.DefaultFeedForwardConfig()
}

// NewFeedForward creates or binds a feed-forward sublayer.
func NewFeedForward[B tensor.Backend](scope Scope[B], inputDim int, cfg FeedForwardConfig) (*FeedForward[B], error) {
	return nn.NewFeedForward(scope, inputDim, cfg)
}

// Targets and masks

// LabelSmoothing softens one-hot targets: (1 - epsilon) * x + epsilon / V.
func LabelSmoothing[B tensor.Backend](inputs *tensor.Tensor[float32, B], epsilon float32) (*tensor.Tensor[float32, B], error) {
	return nn.LabelSmoothing(inputs, epsilon)
}

// PaddingMask builds a [N, T] mask with ones in the first lengths[n] positions of row n.
func PaddingMask[B tensor.Backend](lengths []int, maxLen int, backend B) (*tensor.Tensor[float32, B], error) {
	return nn.PaddingMask(lengths, maxLen, backend)
}

// LowerTriangular returns the [T_q, T_k] causal mask.
func LowerTriangular[B tensor.Backend](queryLen, keyLen int, backend B) (*tensor.Tensor[float32, B], error) {
	return nn.LowerTriangular(queryLen, keyLen, backend)
}

// Constants.
const (
	MaxPositions            = nn.MaxPositions
	DefaultEpsilon          = nn.DefaultEpsilon
	DefaultSmoothing        = nn.DefaultSmoothing
	DefaultLayerNormScope   = nn.DefaultLayerNormScope
	DefaultAttentionScope   = nn.DefaultAttentionScope
	DefaultFeedForwardScope = nn.DefaultFeedForwardScope
	DefaultEmbeddingScope   = nn.DefaultEmbeddingScope
)
