package nn

import (
	"math"

	"github.com/born-ml/transformer/internal/tensor"
)

// DefaultEmbeddingScope is the conventional scope name for a token embedding.
const DefaultEmbeddingScope = "embedding"

// EmbeddingConfig controls token embedding lookups.
type EmbeddingConfig struct {
	ZeroPad bool // id 0 is padding and always embeds to zeros
	Scale   bool // multiply outputs by sqrt(NumUnits)
}

// DefaultEmbeddingConfig enables zero padding and scaling.
func DefaultEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{ZeroPad: true, Scale: true}
}

// Embedding maps int32 token ids to learned vectors.
//
// Parameter: "lookup_table" [VocabSize, NumUnits], Glorot uniform.
type Embedding[B tensor.Backend] struct {
	Table     *Parameter[B]
	VocabSize int
	NumUnits  int
	Config    EmbeddingConfig
}

// NewEmbedding creates or binds the lookup table in scope.
func NewEmbedding[B tensor.Backend](scope Scope[B], vocabSize, numUnits int, cfg EmbeddingConfig) (*Embedding[B], error) {
	if vocabSize <= 0 || numUnits <= 0 {
		return nil, shapeErrorf(DefaultEmbeddingScope, "vocab size and num_units must be positive, got %d and %d", vocabSize, numUnits)
	}

	table, err := scope.Get("lookup_table", tensor.Shape{vocabSize, numUnits}, GlorotUniform())
	if err != nil {
		return nil, err
	}

	return &Embedding[B]{
		Table:     table,
		VocabSize: vocabSize,
		NumUnits:  numUnits,
		Config:    cfg,
	}, nil
}

// Forward embeds ids of any shape, returning ids.Shape() + [NumUnits].
func (e *Embedding[B]) Forward(ids *tensor.Tensor[int32, B]) (*tensor.Tensor[float32, B], error) {
	for _, id := range ids.Data() {
		if id < 0 || int(id) >= e.VocabSize {
			return nil, shapeErrorf(DefaultEmbeddingScope, "token id %d outside vocabulary of %d", id, e.VocabSize)
		}
	}

	out := e.Table.Tensor().Embedding(ids)
	backend := ids.Backend()

	if e.Config.ZeroPad {
		pad := ids.Equal(tensor.Zeros[int32](tensor.Shape{1}, backend)).Unsqueeze(-1)
		out = tensor.Where(pad, tensor.Zeros[float32](tensor.Shape{1}, backend), out)
	}
	if e.Config.Scale {
		out = out.MulScalar(float32(math.Sqrt(float64(e.NumUnits))))
	}
	return out, nil
}
