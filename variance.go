package fillers

import (
	"math"

	"github.com/gomlx/fillers/backends"
	"github.com/gomlx/fillers/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// XavierFill implements the Xavier (Glorot) uniform initializer: every element is drawn
// uniformly from [-scale, scale] with scale = sqrt(3 / fanIn), where fanIn is the output
// size divided by its first dimension -- axis 0 is taken as the fan-out axis of a weight
// tensor.
//
// It has no parameters: the scale is derived from the resolved output shape at each fill.
type XavierFill[T backends.Float] struct{}

// NewXavierFill creates a Xavier (Glorot) uniform fill strategy.
func NewXavierFill[T backends.Float]() *XavierFill[T] { return &XavierFill[T]{} }

// DType implements Filler.
func (f *XavierFill[T]) DType() dtypes.DType { return dtypes.FromGenericsType[T]() }

// Fill implements Filler.
func (f *XavierFill[T]) Fill(ctx *backends.Context, output *tensors.Tensor) error {
	shape := output.Shape()
	if shape.Rank() < 1 {
		return errors.Wrapf(ErrShape, "xavier fill requires at least 1 axis, got a scalar output")
	}
	if shape.Dim(0) == 0 {
		return errors.Wrapf(ErrDivideByZero, "xavier fill: axis 0 of the output shape %s is zero", shape)
	}
	if shape.Size() == 0 {
		return nil
	}
	fanIn := shape.Size() / shape.Dim(0)
	scale := T(math.Sqrt(3.0 / float64(fanIn)))
	tensors.MutableFlatData(output, func(flat []T) {
		backends.RandUniform(ctx, flat, -scale, scale)
	})
	return nil
}

// MSRAFill implements the MSRA (He et al.) gaussian initializer: every element is drawn
// from a normal distribution with mean 0 and standard deviation sqrt(2 / fan), where fan
// is the output size divided by its second dimension. It requires the output to have at
// least 2 axes.
//
// Note the divisor axis is 1, not 0: for a rank-2 weight tensor the fan is the first
// dimension, not the second.
type MSRAFill[T backends.Float] struct{}

// NewMSRAFill creates an MSRA (He et al.) gaussian fill strategy.
func NewMSRAFill[T backends.Float]() *MSRAFill[T] { return &MSRAFill[T]{} }

// DType implements Filler.
func (f *MSRAFill[T]) DType() dtypes.DType { return dtypes.FromGenericsType[T]() }

// Fill implements Filler.
func (f *MSRAFill[T]) Fill(ctx *backends.Context, output *tensors.Tensor) error {
	shape := output.Shape()
	if shape.Rank() < 2 {
		return errors.Wrapf(ErrShape, "msra fill requires at least 2 axes, got shape %s", shape)
	}
	if shape.Dim(1) == 0 {
		return errors.Wrapf(ErrDivideByZero, "msra fill: axis 1 of the output shape %s is zero", shape)
	}
	if shape.Size() == 0 {
		return nil
	}
	fan := shape.Size() / shape.Dim(1)
	stddev := T(math.Sqrt(2.0 / float64(fan)))
	tensors.MutableFlatData(output, func(flat []T) {
		backends.RandGaussian(ctx, flat, 0, stddev)
	})
	return nil
}
