package nn

import (
	"math"

	"github.com/born-ml/transformer/internal/tensor"
)

// DefaultAttentionScope is the conventional scope name for an attention sublayer.
const DefaultAttentionScope = "multihead_attention"

// AttentionConfig holds the hyperparameters of a MultiHeadAttention layer.
type AttentionConfig struct {
	NumUnits        int     // Projection width; 0 means the query channel size
	NumHeads        int     // Must divide NumUnits
	DropoutKeepProb float32 // Keep probability for attention weights (1 disables dropout)
	Causality       bool    // Mask future key positions
	Seed            *int64  // Dropout seed; nil draws one from the clock
	Epsilon         float32 // LayerNorm epsilon
}

// DefaultAttentionConfig returns 8 heads, no dropout and no causal masking.
func DefaultAttentionConfig() AttentionConfig {
	return AttentionConfig{
		NumHeads:        8,
		DropoutKeepProb: 1,
		Epsilon:         DefaultEpsilon,
	}
}

// Validate checks the configuration for a given query channel size.
func (c AttentionConfig) Validate(queryDim int) error {
	units := c.units(queryDim)
	switch {
	case c.NumHeads <= 0:
		return configErrorf("num_heads must be positive, got %d", c.NumHeads)
	case c.DropoutKeepProb <= 0 || c.DropoutKeepProb > 1:
		return configErrorf("dropout_keep_prob must be in (0, 1], got %v", c.DropoutKeepProb)
	case units <= 0:
		return shapeErrorf(DefaultAttentionScope, "num_units must be positive, got %d", units)
	case units%c.NumHeads != 0:
		return shapeErrorf(DefaultAttentionScope, "num_units (%d) must be divisible by num_heads (%d)", units, c.NumHeads)
	case units != queryDim:
		return shapeErrorf(DefaultAttentionScope, "residual connection needs num_units (%d) == query channels (%d)", units, queryDim)
	}
	return nil
}

func (c AttentionConfig) units(queryDim int) int {
	if c.NumUnits == 0 {
		return queryDim
	}
	return c.NumUnits
}

// MultiHeadAttention is scaled dot-product attention over h heads with key,
// query and optional causal masking, followed by a residual connection and
// layer normalization.
//
// Parameters under its scope: "query", "key" and "value" Dense projections
// and "ln". All three projections use ReLU.
//
// Example:
//
//	cfg := nn.DefaultAttentionConfig()
//	cfg.Causality = true
//	mha, err := nn.NewMultiHeadAttention(scope.Sub(nn.DefaultAttentionScope), 512, 512, cfg)
//	out, err := mha.Forward(x, x, mask, mask) // [N, T, 512]
type MultiHeadAttention[B tensor.Backend] struct {
	Query   *Dense[B]
	Key     *Dense[B]
	Value   *Dense[B]
	Norm    *LayerNorm[B]
	Dropout *Dropout[B]

	NumUnits  int
	NumHeads  int
	HeadDim   int
	QueryDim  int
	KeyDim    int
	Causality bool
}

// AttentionResult is the output of ForwardWithWeights.
type AttentionResult[B tensor.Backend] struct {
	Output  *tensor.Tensor[float32, B] // [N, T_q, NumUnits]
	Scores  *tensor.Tensor[float32, B] // [h*N, T_q, T_k] scaled scores after key and causal masking
	Weights *tensor.Tensor[float32, B] // [h*N, T_q, T_k] weights after softmax, query masking and dropout
}

// NewMultiHeadAttention creates or binds an attention layer for queries with
// queryDim channels and keys with keyDim channels.
func NewMultiHeadAttention[B tensor.Backend](scope Scope[B], queryDim, keyDim int, cfg AttentionConfig) (*MultiHeadAttention[B], error) {
	if keyDim <= 0 {
		return nil, shapeErrorf(DefaultAttentionScope, "key channels must be positive, got %d", keyDim)
	}
	if err := cfg.Validate(queryDim); err != nil {
		return nil, err
	}
	units := cfg.units(queryDim)

	query, err := NewDense(scope.Sub("query"), queryDim, units, ReLU)
	if err != nil {
		return nil, err
	}
	key, err := NewDense(scope.Sub("key"), keyDim, units, ReLU)
	if err != nil {
		return nil, err
	}
	value, err := NewDense(scope.Sub("value"), keyDim, units, ReLU)
	if err != nil {
		return nil, err
	}
	norm, err := NewLayerNorm(scope.Sub(DefaultLayerNormScope), units, cfg.Epsilon)
	if err != nil {
		return nil, err
	}
	dropout, err := NewDropout[B](cfg.DropoutKeepProb, cfg.Seed)
	if err != nil {
		return nil, err
	}

	return &MultiHeadAttention[B]{
		Query:     query,
		Key:       key,
		Value:     value,
		Norm:      norm,
		Dropout:   dropout,
		NumUnits:  units,
		NumHeads:  cfg.NumHeads,
		HeadDim:   units / cfg.NumHeads,
		QueryDim:  queryDim,
		KeyDim:    keyDim,
		Causality: cfg.Causality,
	}, nil
}

// Forward attends queries [N, T_q, C_q] over keys [N, T_k, C_k].
//
// queryMasks [N, T_q] and keyMasks [N, T_k] hold 1 for real positions and 0
// for padding; nil means no padding. Rows of padded queries end up as the
// normalized queries themselves, since their attention weights are zeroed.
func (m *MultiHeadAttention[B]) Forward(
	queries, keys *tensor.Tensor[float32, B],
	queryMasks, keyMasks *tensor.Tensor[float32, B],
) (*tensor.Tensor[float32, B], error) {
	res, err := m.ForwardWithWeights(queries, keys, queryMasks, keyMasks)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}

// ForwardWithWeights is Forward that also returns the masked scores and the
// attention weights for inspection.
func (m *MultiHeadAttention[B]) ForwardWithWeights(
	queries, keys *tensor.Tensor[float32, B],
	queryMasks, keyMasks *tensor.Tensor[float32, B],
) (*AttentionResult[B], error) {
	n, tq, tk, err := m.checkInputs(queries, keys, queryMasks, keyMasks)
	if err != nil {
		return nil, err
	}
	h := m.NumHeads

	q, err := m.Query.Forward(queries) // [N, T_q, U]
	if err != nil {
		return nil, err
	}
	k, err := m.Key.Forward(keys) // [N, T_k, U]
	if err != nil {
		return nil, err
	}
	v, err := m.Value.Forward(keys) // [N, T_k, U]
	if err != nil {
		return nil, err
	}

	// Heads move to the batch axis: [h*N, T, U/h], head-major.
	q = tensor.Cat(q.Chunk(h, 2), 0)
	k = tensor.Cat(k.Chunk(h, 2), 0)
	v = tensor.Cat(v.Chunk(h, 2), 0)

	scores := q.BatchMatMul(k.Transpose(0, 2, 1)) // [h*N, T_q, T_k]
	scores = scores.MulScalar(float32(1 / math.Sqrt(float64(m.HeadDim))))

	if keyMasks != nil {
		km, err := ExpandKeyMask(keyMasks, h, tq)
		if err != nil {
			return nil, err
		}
		scores = applyMask(scores, km)
	}
	if m.Causality {
		tril, err := LowerTriangular(tq, tk, queries.Backend())
		if err != nil {
			return nil, err
		}
		scores = applyMask(scores, tril.Unsqueeze(0).Expand(tensor.Shape{h * n, tq, tk}))
	}

	weights := scores.Softmax(-1)
	if queryMasks != nil {
		qm, err := ExpandQueryMask(queryMasks, h, tk)
		if err != nil {
			return nil, err
		}
		weights = weights.Mul(qm)
	}
	weights = m.Dropout.Forward(weights)

	out := weights.BatchMatMul(v)        // [h*N, T_q, U/h]
	out = tensor.Cat(out.Chunk(h, 0), 2) // [N, T_q, U]
	out, err = m.Norm.Forward(out.Add(queries))
	if err != nil {
		return nil, err
	}

	return &AttentionResult[B]{Output: out, Scores: scores, Weights: weights}, nil
}

func (m *MultiHeadAttention[B]) checkInputs(
	queries, keys *tensor.Tensor[float32, B],
	queryMasks, keyMasks *tensor.Tensor[float32, B],
) (n, tq, tk int, err error) {
	const op = DefaultAttentionScope

	qs, ks := queries.Shape(), keys.Shape()
	if qs.Rank() != 3 || ks.Rank() != 3 {
		return 0, 0, 0, shapeErrorf(op, "queries and keys must be [N, T, C], got %v and %v", qs, ks)
	}
	if qs[0] != ks[0] {
		return 0, 0, 0, shapeErrorf(op, "batch size mismatch: queries %d, keys %d", qs[0], ks[0])
	}
	if qs[2] != m.QueryDim {
		return 0, 0, 0, shapeErrorf(op, "queries have %d channels, layer expects %d", qs[2], m.QueryDim)
	}
	if ks[2] != m.KeyDim {
		return 0, 0, 0, shapeErrorf(op, "keys have %d channels, layer expects %d", ks[2], m.KeyDim)
	}

	n, tq, tk = qs[0], qs[1], ks[1]
	if queryMasks != nil {
		if err := validateMask(op, "query mask", queryMasks, n, tq); err != nil {
			return 0, 0, 0, err
		}
	}
	if keyMasks != nil {
		if err := validateMask(op, "key mask", keyMasks, n, tk); err != nil {
			return 0, 0, 0, err
		}
	}
	return n, tq, tk, nil
}
