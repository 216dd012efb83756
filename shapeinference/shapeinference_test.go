package shapeinference

import (
	"testing"

	"github.com/gomlx/fillers"
	"github.com/gomlx/fillers/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

// Aliases
var (
	F32 = dtypes.Float32
	I64 = dtypes.Int64

	MS = shapes.Make
)

func TestFillerOutputStaticShape(t *testing.T) {
	// No input: the static shape, with dtype defaulting to Float32.
	output, err := FillerOutput(fillers.Config{Shape: []int{2, 3}}, dtypes.InvalidDType, nil)
	require.NoError(t, err)
	require.True(t, output.Equal(MS(F32, 2, 3)))

	// An explicit dtype is kept.
	output, err = FillerOutput(fillers.Config{Shape: []int{2, 3}}, I64, nil)
	require.NoError(t, err)
	require.True(t, output.Equal(MS(I64, 2, 3)))

	// An empty static shape declares a scalar.
	output, err = FillerOutput(fillers.Config{}, F32, nil)
	require.NoError(t, err)
	require.True(t, output.Equal(MS(F32)))
}

func TestFillerOutputFromInput(t *testing.T) {
	// The declared input dims are copied, with ExtraShape appended.
	output, err := FillerOutput(fillers.Config{ExtraShape: []int{16}}, F32,
		[]shapes.Shape{MS(I64, 4, 5)})
	require.NoError(t, err)
	require.True(t, output.Equal(MS(F32, 4, 5, 16)))

	// The arity comes from the declared inputs: HasInput is overridden either way.
	output, err = FillerOutput(fillers.Config{HasInput: true}, F32,
		[]shapes.Shape{MS(F32, 7)})
	require.NoError(t, err)
	require.True(t, output.Equal(MS(F32, 7)))
	output, err = FillerOutput(fillers.Config{HasInput: true, Shape: []int{3}}, F32, nil)
	require.NoError(t, err)
	require.True(t, output.Equal(MS(F32, 3)))
}

func TestFillerOutputInputAsShape(t *testing.T) {
	// The output dimensions would be the input's values: unknown, for any declared
	// input shape.
	cfg := fillers.Config{InputAsShape: true}
	output, err := FillerOutput(cfg, F32, []shapes.Shape{MS(I64, 2)})
	require.NoError(t, err)
	require.False(t, output.Ok())

	output, err = FillerOutput(cfg, F32, []shapes.Shape{MS(I64, 3, 3)})
	require.NoError(t, err)
	require.False(t, output.Ok())
}

func TestFillerOutputErrors(t *testing.T) {
	// Shape and input are mutually exclusive.
	output, err := FillerOutput(fillers.Config{Shape: []int{2}}, F32,
		[]shapes.Shape{MS(F32, 4)})
	require.ErrorIs(t, err, fillers.ErrConfiguration)
	require.False(t, output.Ok())

	// At most one input.
	_, err = FillerOutput(fillers.Config{}, F32, []shapes.Shape{MS(F32, 4), MS(F32, 4)})
	require.Error(t, err)

	// ExtraShape without an input.
	_, err = FillerOutput(fillers.Config{ExtraShape: []int{2}}, F32, nil)
	require.ErrorIs(t, err, fillers.ErrConfiguration)
}
