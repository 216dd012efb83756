package fillers

import (
	"github.com/gomlx/fillers/backends"
	"github.com/gomlx/fillers/types/shapes"
	"github.com/gomlx/fillers/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// RangeFill fills the output sequentially with 0, 1, 2, ..., in linear (row-major)
// buffer order. This is mostly a debugging aid: it makes element indices directly
// readable, e.g. to check reshape operations.
type RangeFill[T podNumericConstraints] struct{}

// NewRangeFill creates a sequential range fill strategy.
func NewRangeFill[T podNumericConstraints]() *RangeFill[T] { return &RangeFill[T]{} }

// DType implements Filler.
func (f *RangeFill[T]) DType() dtypes.DType { return dtypes.FromGenericsType[T]() }

// Fill implements Filler.
func (f *RangeFill[T]) Fill(_ *backends.Context, output *tensors.Tensor) error {
	tensors.MutableFlatData(output, func(flat []T) {
		for ii := range flat {
			flat[ii] = T(ii)
		}
	})
	return nil
}

// LengthsRangeFillOp expands a vector of lengths into concatenated integer ranges: for
// each input element with value len, it emits the sequence 0, 1, ..., len-1 into the
// output at the running offset. The output is a vector of size sum(lengths).
//
// E.g. lengths [4, 0, 2] produce [0, 1, 2, 3, 0, 1].
//
// It is not a FillerOp: its output shape comes from the input's values, not from a
// Config.
type LengthsRangeFillOp struct{}

// Run reads the rank-1 Int32 input of non-negative lengths and resizes and fills output.
func (LengthsRangeFillOp) Run(input, output *tensors.Tensor) error {
	if input == nil {
		return errors.Wrap(ErrConfiguration, "lengths range fill requires an input")
	}
	if output == nil {
		return errors.Wrap(ErrConfiguration, "output tensor is nil")
	}
	if input.Rank() != 1 {
		return errors.Wrapf(ErrShape, "lengths range fill input must be a vector, got shape %s",
			input.Shape())
	}
	if input.DType() != dtypes.Int32 {
		return errors.Wrapf(ErrShape, "lengths range fill input must be of dtype Int32, got %s",
			input.DType())
	}
	lengths := tensors.CopyFlatData[int32](input)
	total := 0
	for _, length := range lengths {
		if length < 0 {
			return errors.Wrapf(ErrShape, "lengths range fill got negative length %d", length)
		}
		total += int(length)
	}
	output.Resize(shapes.Make(dtypes.Int32, total))
	tensors.MutableFlatData(output, func(flat []int32) {
		offset := 0
		for _, length := range lengths {
			for ii := int32(0); ii < length; ii++ {
				flat[offset] = ii
				offset++
			}
		}
	})
	return nil
}
