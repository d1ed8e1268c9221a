package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_Basics(t *testing.T) {
	s := Shape{2, 3, 4}

	assert.Equal(t, 3, s.Rank())
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, 4, s.Last())
	assert.Equal(t, []int{12, 4, 1}, s.ComputeStrides())
	assert.Equal(t, "[2, 3, 4]", s.String())
	assert.Equal(t, 0, Shape{}.Last())
	assert.Equal(t, 1, Shape{}.NumElements())
}

func TestShape_CloneIsIndependent(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 7

	assert.Equal(t, 2, s[0])
	assert.False(t, s.Equal(c))
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{1, 2}.Validate())
	assert.Error(t, Shape{1, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShape_NormalizeDim(t *testing.T) {
	s := Shape{2, 3, 4}

	assert.Equal(t, 2, s.NormalizeDim(-1))
	assert.Equal(t, 0, s.NormalizeDim(-3))
	assert.Equal(t, 1, s.NormalizeDim(1))
	assert.Panics(t, func() { s.NormalizeDim(3) })
	assert.Panics(t, func() { s.NormalizeDim(-4) })
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		expected  Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"rank mismatch", Shape{4, 1, 6}, Shape{5, 1}, Shape{4, 5, 6}, true, false},
		{"scalar-like", Shape{1}, Shape{2, 2}, Shape{2, 2}, true, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestRawTensor_WithShapeSharesData(t *testing.T) {
	r := MustNewRaw(Shape{2, 3}, Float32, CPU)
	v := r.WithShape(Shape{6})

	v.AsFloat32()[4] = 9
	assert.Equal(t, float32(9), r.AsFloat32()[4])
	assert.Panics(t, func() { r.WithShape(Shape{4}) })
}

func TestRawTensor_Clone(t *testing.T) {
	r := MustNewRaw(Shape{3}, Int32, CPU)
	copy(r.AsInt32(), []int32{1, 2, 3})

	c := r.Clone()
	c.AsInt32()[0] = 42
	assert.Equal(t, int32(1), r.AsInt32()[0])
}

func TestRawTensor_WrongViewPanics(t *testing.T) {
	r := MustNewRaw(Shape{2}, Float32, CPU)
	assert.Panics(t, func() { r.AsInt32() })
	assert.Panics(t, func() { r.AsBool() })
}

func TestDataType(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, 1, Bool.Size())
	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, "bool", Bool.String())
	assert.Equal(t, "CPU", CPU.String())
}
