// Package fillers implements tensor filler operators: components that populate a
// freshly resolved multidimensional buffer with values according to a statistical or
// deterministic rule -- uniform random, gaussian random, constant, variance-scaled
// random for neural-network weight initialization (Xavier/Glorot and MSRA/He), and
// sequential range filling.
//
// All fillers share the same shape resolution step, configured through Config: the
// output shape comes either from the static Config.Shape (when the operator takes no
// input), or from its single input tensor -- whose own dimensions are copied, or, with
// Config.InputAsShape, whose values are read as the output dimensions. See Config for
// the exact rules.
//
// A strategy (UniformFill, GaussianFill, ConstantFill, XavierFill, MSRAFill, RangeFill)
// is bound to a FillerOp, which orchestrates each execution: resolve the output shape,
// resize the caller-owned output tensor in place, and delegate the writing to the
// strategy. Random values come from a backends.Context, the host random-number kernel.
//
// The companion package shapeinference predicts the same output shapes statically,
// from declared shapes only, for graph-compile-time shape propagation.
package fillers

import (
	"slices"

	"github.com/pkg/errors"
)

// Error kinds returned by the filler operators. Returned errors wrap one of these, so
// they can be tested with errors.Is; the wrapping adds context and a stack trace.
var (
	// ErrConfiguration indicates mutually exclusive or missing-prerequisite
	// configuration, detected when the operator is constructed.
	ErrConfiguration = errors.New("invalid filler configuration")

	// ErrShape indicates a runtime shape that violates a structural precondition of
	// the strategy, e.g. a non-vector input where the input is read as a shape.
	// Detected at execution; the operator itself remains valid and can be retried
	// with a different input.
	ErrShape = errors.New("invalid shape")

	// ErrDivideByZero indicates that a dimension used as a divisor in a
	// variance-scaling formula is zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrType indicates that the constant fill could not resolve its element type.
	ErrType = errors.New("cannot resolve element type")
)

// Config determines how a filler operator resolves its output shape. Exactly one shape
// source is active:
//
//   - No input tensor: the output shape is Shape, verbatim. ExtraShape and InputAsShape
//     are not allowed.
//   - One input tensor, InputAsShape false: the output shape is the input's own
//     dimensions with ExtraShape appended at the end. Shape must be empty.
//   - One input tensor, InputAsShape true: the input must be a vector (rank-1) of
//     integers, and its values become the output dimensions, with ExtraShape still
//     appended. Shape must be empty.
//
// HasInput records the operator's arity, fixed at construction, so that the exclusivity
// rules above are checked once by Validate and not at every execution.
type Config struct {
	// Shape is the static output shape, used only when there is no input.
	Shape []int

	// ExtraShape is appended to a shape derived from the input tensor.
	ExtraShape []int

	// InputAsShape interprets the input tensor as a 1D array of dimension sizes,
	// instead of as a template whose own dimensions are copied.
	InputAsShape bool

	// HasInput indicates whether the operator is given an input tensor.
	HasInput bool
}

// Validate checks the exclusivity rules of the configuration. It only depends on the
// static configuration and arity, so it runs once, when an operator is constructed.
func (c Config) Validate() error {
	if c.HasInput {
		if len(c.Shape) != 0 {
			return errors.Wrap(ErrConfiguration,
				"cannot set the shape argument and pass in an input at the same time")
		}
	} else {
		if len(c.ExtraShape) != 0 {
			return errors.Wrap(ErrConfiguration, "cannot set extra_shape when there is no input")
		}
		if c.InputAsShape {
			return errors.Wrap(ErrConfiguration, "an input must be given if input_as_shape is true")
		}
	}
	for _, dim := range c.Shape {
		if dim < 0 {
			return errors.Wrapf(ErrConfiguration, "shape has negative dimension %d", dim)
		}
	}
	for _, dim := range c.ExtraShape {
		if dim < 0 {
			return errors.Wrapf(ErrConfiguration, "extra_shape has negative dimension %d", dim)
		}
	}
	return nil
}

// DimensionValuesFn provides the concrete values of the input tensor, read as dimension
// sizes, for the InputAsShape resolution mode. See Config.OutputDims.
type DimensionValuesFn func() ([]int, error)

// OutputDims resolves the output dimensions for the configuration. It is the one pure
// resolution rule shared by the runtime path (FillerOp.Run) and the static path
// (shapeinference.FillerOutput); the two differ only in whether the input's concrete
// values are available.
//
// inputDims are the (declared or concrete) dimensions of the input tensor, nil when
// there is no input. valuesFn provides the input's values when InputAsShape is set;
// pass nil when only declared shapes are known, in which case the dimensions cannot be
// resolved and known=false is returned, with no error.
//
// It assumes the configuration was validated (see Config.Validate).
func (c Config) OutputDims(inputDims []int, valuesFn DimensionValuesFn) (dims []int, known bool, err error) {
	if !c.HasInput {
		return slices.Clone(c.Shape), true, nil
	}
	if c.InputAsShape {
		if valuesFn == nil {
			// The output dimensions are the input's values, unavailable here.
			return nil, false, nil
		}
		if len(inputDims) != 1 {
			return nil, false, errors.Wrapf(ErrShape,
				"when input_as_shape is true, the input must be a 1D tensor of dimension sizes, got rank %d",
				len(inputDims))
		}
		dims, err = valuesFn()
		if err != nil {
			return nil, false, err
		}
		for _, dim := range dims {
			if dim < 0 {
				return nil, false, errors.Wrapf(ErrShape,
					"input used as shape has negative dimension %d", dim)
			}
		}
	} else {
		dims = slices.Clone(inputDims)
	}
	dims = append(dims, c.ExtraShape...)
	return dims, true, nil
}
