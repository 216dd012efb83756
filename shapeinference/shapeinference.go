// Package shapeinference predicts the output shape of the filler operators from their
// static configuration and the declared shapes of their inputs, without executing
// anything.
//
// It is consumed by graph-shape-propagation passes at compile time. It mirrors the
// runtime shape resolution of fillers.FillerOp, with one deliberate weaker guarantee:
// when the configuration reads the input as the output shape (Config.InputAsShape),
// the output dimensions depend on the input's values, which are not available
// statically -- the shape is then reported as unknown (shapes.Invalid()) rather than
// guessed.
package shapeinference

import (
	"github.com/gomlx/fillers"
	"github.com/gomlx/fillers/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// FillerOutput returns the declared output shape of a filler operator, given its
// configuration, its declared element type and the declared shapes of its inputs
// (at most one).
//
// The operator's arity is taken from len(inputs), overriding config.HasInput. dtype is
// the declared element type of the output, coming from the operator's configuration;
// InvalidDType means unset and defaults to Float32 -- unlike the runtime constant fill,
// no inference from a value's runtime type is attempted here.
//
// The returned shape is shapes.Invalid() when the output shape cannot be known
// statically (with a nil error), or when the configuration itself is invalid (with the
// error saying why).
func FillerOutput(config fillers.Config, dtype dtypes.DType, inputs []shapes.Shape) (shapes.Shape, error) {
	if dtype == dtypes.InvalidDType {
		dtype = dtypes.Float32
	}
	if len(inputs) > 1 {
		return shapes.Invalid(), errors.Errorf(
			"filler operators take at most one input, got %d declared input shapes", len(inputs))
	}
	config.HasInput = len(inputs) == 1
	if err := config.Validate(); err != nil {
		return shapes.Invalid(), err
	}
	var inputDims []int
	if config.HasInput {
		inputDims = inputs[0].Dimensions
	}
	dims, known, err := config.OutputDims(inputDims, nil)
	if err != nil {
		return shapes.Invalid(), err
	}
	if !known {
		return shapes.Invalid(), nil
	}
	return shapes.Make(dtype, dims...), nil
}
