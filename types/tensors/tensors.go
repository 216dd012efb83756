// Package tensors implements a `Tensor`, a representation of a multi-dimensional array.
//
// Tensors are multidimensional arrays (from scalar with 0 dimensions, to arbitrarily large
// dimensions), defined by their shape (a data type and its axes' dimensions) and their actual
// content, stored as a flat (1D) slice of the Go type corresponding to the DType.
//
// There are various ways to construct a Tensor:
//
//   - FromShape(shape shapes.Shape): creates a tensor with the given shape, and zero values.
//
//   - FromScalarAndDimensions[T dtypes.Supported](value T, dimensions ...int): creates a Tensor
//     with the given dimensions, filled with the scalar value given. `T` must be one of the
//     supported types.
//
//   - FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int): creates a
//     Tensor with the given dimensions, and set the flattened values with the given data.
//     Example:
//
//     t := FromFlatDataAndDimensions([]int8{1, 2, 3, 4}, 2, 2) // Tensor with [[1,2], [3,4]]
//
// Unlike an accelerator-backed tensor, this Tensor is host-only, and it supports being
// resized in place (see Tensor.Resize): filler operators resolve their output shape at
// execution time and resize the caller-owned output before writing into it.
package tensors

import (
	"reflect"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/fillers/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
)

// Tensor represents a multidimensional array of one of the supported DTypes.
//
// The data is stored as a flat slice, in row-major order, and accessed with the
// ConstFlatData/MutableFlatData accessors, which hold the Tensor lock for the duration
// of the access.
type Tensor struct {
	// mu protects flat and shape during accessors and Resize.
	mu sync.Mutex

	shape shapes.Shape

	// flat is always a slice of the Go type corresponding to shape.DType.
	flat any
}

// FromShape returns a Tensor with the given shape, with the data initialized with zeros.
func FromShape(shape shapes.Shape) *Tensor {
	if !shape.Ok() {
		exceptions.Panicf("tensors.FromShape(%s): invalid shape", shape)
	}
	return &Tensor{
		shape: shape.Clone(),
		flat:  newFlatSlice(shape),
	}
}

// newFlatSlice allocates the flat backing slice for the given shape.
func newFlatSlice(shape shapes.Shape) any {
	return reflect.MakeSlice(reflect.SliceOf(shape.DType.GoType()), shape.Size(), shape.Size()).Interface()
}

// FromScalarAndDimensions creates a tensor with the given dimensions, filled with the
// scalar value given. `T` must be one of the supported types.
func FromScalarAndDimensions[T dtypes.Supported](value T, dimensions ...int) *Tensor {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	t := FromShape(shape)
	flat := t.flat.([]T)
	for ii := range flat {
		flat[ii] = value
	}
	return t
}

// FromFlatDataAndDimensions creates a tensor with the given dimensions, filled with the
// flattened values given in `data`. The data is copied, not aliased.
func FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) *Tensor {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if len(data) != shape.Size() {
		exceptions.Panicf("FromFlatDataAndDimensions(%s): data size is %d, but dimensions size is %d",
			shape, len(data), shape.Size())
	}
	t := FromShape(shape)
	copy(t.flat.([]T), data)
	return t
}

// Shape of the Tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the Tensor's shape.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Rank of the Tensor's shape. It is a shortcut to t.Shape().Rank().
func (t *Tensor) Rank() int { return t.shape.Rank() }

// IsScalar returns whether the Tensor represents a scalar value.
func (t *Tensor) IsScalar() bool { return t.shape.IsScalar() }

// Size returns the number of elements in the tensor. It is a shortcut to t.Shape().Size().
func (t *Tensor) Size() int { return t.shape.Size() }

// Memory returns the number of bytes used to store the tensor data.
func (t *Tensor) Memory() uintptr { return t.shape.Memory() }

// String returns a descriptor of the tensor, its shape only, not the values.
func (t *Tensor) String() string { return "Tensor" + t.shape.String() }

// AssertValid panics if the tensor is in an invalid state: no flat data associated.
func (t *Tensor) AssertValid() {
	if t == nil {
		exceptions.Panicf("Tensor is nil")
	}
	if t.flat == nil {
		exceptions.Panicf("Tensor%s has no data associated", t.shape)
	}
}

// Resize changes the tensor shape in place, to be used before overwriting its contents.
//
// If the new shape has the same dtype and total size, the backing data is reused (only the
// dimensions change) and the current values are preserved. Otherwise the data is reallocated
// and reset to zeros -- the previous contents are discarded, there is no attempt at
// converting them.
func (t *Tensor) Resize(shape shapes.Shape) {
	if !shape.Ok() {
		exceptions.Panicf("Tensor.Resize(%s): invalid shape", shape)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.flat != nil && t.shape.DType == shape.DType && t.shape.Size() == shape.Size() {
		t.shape = shape.Clone()
		return
	}
	t.shape = shape.Clone()
	t.flat = newFlatSlice(shape)
}

// ConstFlatData calls accessFn with the flattened data as a slice of the Go type
// corresponding to the DType. Even scalar values have a flattened data representation of
// one element. It locks the Tensor until accessFn returns.
//
// This provides accessFn with the actual Tensor data (not a copy), owned by the Tensor;
// it should not be changed -- see Tensor.MutableFlatData for that.
func (t *Tensor) ConstFlatData(accessFn func(flat any)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.AssertValid()
	accessFn(t.flat)
}

// MutableFlatData calls accessFn with a flat slice pointing to the Tensor data. The type
// of the slice corresponds to the DType of the tensor. The contents of the slice can be
// changed until accessFn returns. During this time the Tensor is locked.
func (t *Tensor) MutableFlatData(accessFn func(flat any)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.AssertValid()
	accessFn(t.flat)
}

// ConstFlatData calls accessFn with the flattened data as a slice of the Go type T.
//
// It is the "generics" version of Tensor.ConstFlatData. It panics if T doesn't match
// the tensor's dtype.
func ConstFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	if t.shape.DType != dtypes.FromGenericsType[T]() {
		var v T
		exceptions.Panicf("ConstFlatData[%T] is incompatible with Tensor's dtype %s -- expected dtype %s",
			v, t.shape.DType, dtypes.FromGenericsType[T]())
	}
	t.ConstFlatData(func(anyFlat any) {
		accessFn(anyFlat.([]T))
	})
}

// MutableFlatData calls accessFn with a mutable flat slice of the Go type T pointing to
// the Tensor data.
//
// It is the "generics" version of Tensor.MutableFlatData. It panics if T doesn't match
// the tensor's dtype.
func MutableFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	if t.shape.DType != dtypes.FromGenericsType[T]() {
		var v T
		exceptions.Panicf("MutableFlatData[%T] is incompatible with Tensor's dtype %s",
			v, t.shape.DType)
	}
	t.MutableFlatData(func(anyFlat any) {
		accessFn(anyFlat.([]T))
	})
}

// CopyFlatData returns a copy of the flat data of the Tensor.
//
// It will panic if the given generic type doesn't match the DType of the tensor.
func CopyFlatData[T dtypes.Supported](t *Tensor) []T {
	var flatCopy []T
	ConstFlatData(t, func(flat []T) {
		flatCopy = make([]T, len(flat))
		copy(flatCopy, flat)
	})
	return flatCopy
}

// ToScalar returns the scalar value of the Tensor.
//
// It will panic if the given generic type doesn't match the DType of the tensor, or if
// the tensor is not a scalar.
func ToScalar[T dtypes.Supported](t *Tensor) T {
	if !t.shape.IsScalar() {
		var v T
		exceptions.Panicf("ToScalar[%T] requires scalar Tensor, got shape %s instead", v, t.shape)
	}
	var value T
	ConstFlatData(t, func(flat []T) {
		value = flat[0]
	})
	return value
}
