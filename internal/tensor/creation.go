package tensor

import (
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	return New[T, B](MustNewRaw(shape, inferDataType(dummy), b.Device()), b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	paddings := tensor.Full[float32](Shape{16, 10, 10}, -4294967295, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Ones creates a float32 tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[float32, B] {
	return Full[float32, B](shape, 1, b)
}

// Randn creates a float32 tensor with values drawn from N(0, 1) using rng.
//
// Passing an explicit source keeps test fixtures reproducible.
func Randn[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[float32, B] {
	t := Zeros[float32, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	return t
}

// RandUniform creates a float32 tensor with values drawn uniformly from [low, high).
func RandUniform[B Backend](shape Shape, low, high float32, rng *rand.Rand, b B) *Tensor[float32, B] {
	t := Zeros[float32, B](shape, b)
	data := t.Data()
	span := float64(high - low)
	for i := range data {
		data[i] = low + float32(rng.Float64()*span)
	}
	return t
}

// Arange creates a 1D int32 tensor [start, start+1, ..., end-1].
// Panics if end <= start.
func Arange[B Backend](start, end int32, b B) *Tensor[int32, B] {
	if end <= start {
		panic("end must be greater than start")
	}
	t := Zeros[int32, B](Shape{int(end - start)}, b)
	data := t.Data()
	for i := range data {
		data[i] = start + int32(i) //nolint:gosec // G115: bounded by end-start.
	}
	return t
}
