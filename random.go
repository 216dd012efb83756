package fillers

import (
	"github.com/gomlx/fillers/backends"
	"github.com/gomlx/fillers/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// UniformFill draws every element i.i.d. uniformly from the half-open interval
// [min, max). The conventional defaults, when exposed through a configuration surface,
// are min=0 and max=1.
type UniformFill[T backends.Float] struct {
	min, max T
}

// NewUniformFill creates a uniform fill strategy. It fails if min >= max.
func NewUniformFill[T backends.Float](min, max T) (*UniformFill[T], error) {
	if min >= max {
		return nil, errors.Wrapf(ErrConfiguration,
			"uniform fill requires min < max, got min=%v, max=%v", min, max)
	}
	return &UniformFill[T]{min: min, max: max}, nil
}

// DType implements Filler.
func (f *UniformFill[T]) DType() dtypes.DType { return dtypes.FromGenericsType[T]() }

// Fill implements Filler.
func (f *UniformFill[T]) Fill(ctx *backends.Context, output *tensors.Tensor) error {
	tensors.MutableFlatData(output, func(flat []T) {
		backends.RandUniform(ctx, flat, f.min, f.max)
	})
	return nil
}

// GaussianFill draws every element i.i.d. from a normal distribution with the given
// mean and standard deviation. The conventional defaults are mean=0 and std=1.
type GaussianFill[T backends.Float] struct {
	mean, stddev T
}

// NewGaussianFill creates a gaussian fill strategy. It fails if stddev <= 0.
func NewGaussianFill[T backends.Float](mean, stddev T) (*GaussianFill[T], error) {
	if stddev <= 0 {
		return nil, errors.Wrapf(ErrConfiguration,
			"gaussian fill requires a positive standard deviation, got std=%v", stddev)
	}
	return &GaussianFill[T]{mean: mean, stddev: stddev}, nil
}

// DType implements Filler.
func (f *GaussianFill[T]) DType() dtypes.DType { return dtypes.FromGenericsType[T]() }

// Fill implements Filler.
func (f *GaussianFill[T]) Fill(ctx *backends.Context, output *tensors.Tensor) error {
	tensors.MutableFlatData(output, func(flat []T) {
		backends.RandGaussian(ctx, flat, f.mean, f.stddev)
	})
	return nil
}
