package fillers

import (
	"github.com/gomlx/fillers/backends"
	"github.com/gomlx/fillers/types/shapes"
	"github.com/gomlx/fillers/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Filler is the strategy that writes the values of an already shape-resolved, allocated
// output tensor. Implementations are UniformFill, GaussianFill, ConstantFill,
// XavierFill, MSRAFill and RangeFill.
type Filler interface {
	// DType of the elements the filler writes. FillerOp resizes the output to this
	// element type before calling Fill.
	DType() dtypes.DType

	// Fill overwrites every element of output. The output was already resized to the
	// resolved shape; a zero-size output must succeed performing no writes.
	Fill(ctx *backends.Context, output *tensors.Tensor) error
}

// FillerOp orchestrates a filler: at construction it validates the configuration and
// binds a strategy; at each Run it resolves the output shape, resizes the output in
// place and delegates the writing to the strategy.
//
// A FillerOp owns no shared mutable state besides its backends.Context: instances with
// distinct contexts and distinct outputs can run concurrently.
type FillerOp struct {
	config Config
	ctx    *backends.Context
	filler Filler
}

// NewFillerOp creates an operator for the given strategy. It fails if the configuration
// violates the shape-source exclusivity rules (see Config).
//
// ctx provides the random number generation; if nil, a new clock-seeded context is
// created.
func NewFillerOp(ctx *backends.Context, config Config, filler Filler) (*FillerOp, error) {
	if filler == nil {
		return nil, errors.Wrap(ErrConfiguration, "filler strategy is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = backends.New()
	}
	return &FillerOp{config: config, ctx: ctx, filler: filler}, nil
}

// Config returns the operator's configuration.
func (op *FillerOp) Config() Config { return op.config }

// Run resolves the output shape from the (optional) input, resizes output in place and
// fills it.
//
// Any resolution or fill error propagates unchanged, and in that case the output
// contents are undefined: the resize is not rolled back.
func (op *FillerOp) Run(input, output *tensors.Tensor) error {
	if output == nil {
		return errors.Wrap(ErrConfiguration, "output tensor is nil")
	}
	if (input != nil) != op.config.HasInput {
		return errors.Wrapf(ErrConfiguration,
			"operator was configured with an arity of %d inputs, Run got %d",
			boolToInt(op.config.HasInput), boolToInt(input != nil))
	}
	var inputDims []int
	var valuesFn DimensionValuesFn
	if input != nil {
		inputDims = input.Shape().Dimensions
		if op.config.InputAsShape {
			valuesFn = func() ([]int, error) { return dimensionsFromValues(input) }
		}
	}
	dims, _, err := op.config.OutputDims(inputDims, valuesFn)
	if err != nil {
		return err
	}
	output.Resize(shapes.Make(op.filler.DType(), dims...))
	return op.filler.Fill(op.ctx, output)
}

// dimensionsFromValues reads the input tensor as a 1D array of dimension sizes.
func dimensionsFromValues(input *tensors.Tensor) ([]int, error) {
	dims := make([]int, 0, input.Size())
	switch input.DType() {
	case dtypes.Int32:
		tensors.ConstFlatData(input, func(flat []int32) {
			for _, d := range flat {
				dims = append(dims, int(d))
			}
		})
	case dtypes.Int64:
		tensors.ConstFlatData(input, func(flat []int64) {
			for _, d := range flat {
				dims = append(dims, int(d))
			}
		})
	default:
		return nil, errors.Wrapf(ErrShape,
			"when input_as_shape is true, the input must hold integer dimension sizes (Int32 or Int64), got %s",
			input.DType())
	}
	return dims, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
