package nn

import (
	"math"

	"github.com/born-ml/transformer/internal/tensor"
)

// MaxPositions is the number of rows in the positional encoding table and
// therefore the longest supported sequence.
const MaxPositions = 1024

// PositionalEncoding adds no parameters; it gathers rows of a fixed
// sinusoidal table:
//
//	PE(pos, i) = sin(pos / 10000^(2i/C))  for even i
//	PE(pos, i) = cos(pos / 10000^(2i/C))  for odd i
//
// The exponent uses the column index i itself, not i/2, so sine and cosine
// columns do not share frequencies in pairs.
type PositionalEncoding[B tensor.Backend] struct {
	Table    *tensor.Tensor[float32, B] // [MaxPositions, NumUnits]
	NumUnits int
	Scale    bool // multiply outputs by sqrt(NumUnits)
	backend  B
}

// NewPositionalEncoding precomputes the [MaxPositions, numUnits] table.
func NewPositionalEncoding[B tensor.Backend](numUnits int, scale bool, backend B) (*PositionalEncoding[B], error) {
	if numUnits <= 0 {
		return nil, shapeErrorf("positional_encoding", "num_units must be positive, got %d", numUnits)
	}

	data := make([]float32, MaxPositions*numUnits)
	for pos := 0; pos < MaxPositions; pos++ {
		for i := 0; i < numUnits; i++ {
			angle := float64(pos) / math.Pow(10000, 2*float64(i)/float64(numUnits))
			if i%2 == 0 {
				data[pos*numUnits+i] = float32(math.Sin(angle))
			} else {
				data[pos*numUnits+i] = float32(math.Cos(angle))
			}
		}
	}

	table, err := tensor.FromSlice(data, tensor.Shape{MaxPositions, numUnits}, backend)
	if err != nil {
		return nil, err
	}

	return &PositionalEncoding[B]{
		Table:    table,
		NumUnits: numUnits,
		Scale:    scale,
		backend:  backend,
	}, nil
}

// Forward returns the encodings [N, T, NumUnits] for inputs of shape [N, T].
// Only the shape of the inputs matters, so callers pass ids.Shape().
func (p *PositionalEncoding[B]) Forward(inputs tensor.Shape) (*tensor.Tensor[float32, B], error) {
	if inputs.Rank() != 2 {
		return nil, shapeErrorf("positional_encoding", "inputs must be [N, T], got %v", inputs)
	}
	if err := inputs.Validate(); err != nil {
		return nil, shapeErrorf("positional_encoding", "%v", err)
	}
	n, t := inputs[0], inputs[1]
	if t > MaxPositions {
		return nil, shapeErrorf("positional_encoding", "sequence length %d exceeds %d positions", t, MaxPositions)
	}

	//nolint:gosec // G115: t <= MaxPositions.
	positions := tensor.Arange(0, int32(t), p.backend).Unsqueeze(0).Expand(tensor.Shape{n, t})
	out := p.Table.Embedding(positions)
	if p.Scale {
		out = out.MulScalar(float32(math.Sqrt(float64(p.NumUnits))))
	}
	return out, nil
}
