package nn

import (
	"github.com/born-ml/transformer/internal/tensor"
)

// maskSentinel replaces masked attention scores: -(2^32 - 1).
// After softmax its weight underflows to exactly zero.
const maskSentinel float32 = -4294967295

// TileHeads repeats a [N, T] mask once per head along the batch axis,
// giving [h*N, T]. Row r of the result is row r mod N of the input, which
// matches the head-major batch layout attention uses.
func TileHeads[B tensor.Backend](mask *tensor.Tensor[float32, B], numHeads int) (*tensor.Tensor[float32, B], error) {
	if mask.Shape().Rank() != 2 {
		return nil, shapeErrorf("tile_heads", "mask must be [N, T], got %v", mask.Shape())
	}
	if numHeads <= 0 {
		return nil, shapeErrorf("tile_heads", "num_heads must be positive, got %d", numHeads)
	}

	copies := make([]*tensor.Tensor[float32, B], numHeads)
	for i := range copies {
		copies[i] = mask
	}
	return tensor.Cat(copies, 0), nil
}

// ExpandKeyMask turns a key mask [N, T_k] into [h*N, T_q, T_k]:
// every query row sees the same key mask.
func ExpandKeyMask[B tensor.Backend](keyMask *tensor.Tensor[float32, B], numHeads, queryLen int) (*tensor.Tensor[float32, B], error) {
	tiled, err := TileHeads(keyMask, numHeads)
	if err != nil {
		return nil, err
	}
	if queryLen <= 0 {
		return nil, shapeErrorf("expand_key_mask", "query length must be positive, got %d", queryLen)
	}
	rows, keyLen := tiled.Shape()[0], tiled.Shape()[1]
	return tiled.Unsqueeze(1).Expand(tensor.Shape{rows, queryLen, keyLen}), nil
}

// ExpandQueryMask turns a query mask [N, T_q] into [h*N, T_q, T_k]:
// the mask value of query t fills row t.
func ExpandQueryMask[B tensor.Backend](queryMask *tensor.Tensor[float32, B], numHeads, keyLen int) (*tensor.Tensor[float32, B], error) {
	tiled, err := TileHeads(queryMask, numHeads)
	if err != nil {
		return nil, err
	}
	if keyLen <= 0 {
		return nil, shapeErrorf("expand_query_mask", "key length must be positive, got %d", keyLen)
	}
	rows, queryLen := tiled.Shape()[0], tiled.Shape()[1]
	return tiled.Unsqueeze(-1).Expand(tensor.Shape{rows, queryLen, keyLen}), nil
}

// LowerTriangular returns the [T_q, T_k] causal mask: 1 where t_k <= t_q, else 0.
func LowerTriangular[B tensor.Backend](queryLen, keyLen int, backend B) (*tensor.Tensor[float32, B], error) {
	if queryLen <= 0 || keyLen <= 0 {
		return nil, shapeErrorf("lower_triangular", "lengths must be positive, got %dx%d", queryLen, keyLen)
	}

	m := tensor.Zeros[float32](tensor.Shape{queryLen, keyLen}, backend)
	data := m.Data()
	for q := 0; q < queryLen; q++ {
		for k := 0; k <= q && k < keyLen; k++ {
			data[q*keyLen+k] = 1
		}
	}
	return m, nil
}

// PaddingMask builds a [N, T] mask from sequence lengths: row n has ones in
// its first lengths[n] positions and zeros after.
func PaddingMask[B tensor.Backend](lengths []int, maxLen int, backend B) (*tensor.Tensor[float32, B], error) {
	if len(lengths) == 0 || maxLen <= 0 {
		return nil, shapeErrorf("padding_mask", "need at least one length and a positive max length, got %d lengths, max %d", len(lengths), maxLen)
	}

	m := tensor.Zeros[float32](tensor.Shape{len(lengths), maxLen}, backend)
	data := m.Data()
	for n, l := range lengths {
		if l < 0 || l > maxLen {
			return nil, shapeErrorf("padding_mask", "length %d of row %d outside [0, %d]", l, n, maxLen)
		}
		for t := 0; t < l; t++ {
			data[n*maxLen+t] = 1
		}
	}
	return m, nil
}

// validateMask checks that mask is [n, t] with values in {0, 1}.
func validateMask[B tensor.Backend](op, name string, mask *tensor.Tensor[float32, B], n, t int) error {
	if !mask.Shape().Equal(tensor.Shape{n, t}) {
		return shapeErrorf(op, "%s must be [%d, %d], got %v", name, n, t, mask.Shape())
	}
	for i, v := range mask.Data() {
		if v != 0 && v != 1 {
			return shapeErrorf(op, "%s value %v at flat index %d is not 0 or 1", name, v, i)
		}
	}
	return nil
}

// applyMask replaces scores wherever mask is 0 with maskSentinel.
// mask must broadcast against scores.
func applyMask[B tensor.Backend](scores, mask *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := scores.Backend()
	zero := tensor.Zeros[float32](tensor.Shape{1}, backend)
	paddings := tensor.Full(tensor.Shape{1}, maskSentinel, backend)
	return tensor.Where(mask.Equal(zero), paddings, scores)
}
