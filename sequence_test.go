package fillers

import (
	"testing"

	"github.com/gomlx/fillers/types/shapes"
	"github.com/gomlx/fillers/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestRangeFill(t *testing.T) {
	filler := NewRangeFill[float32]()
	require.Equal(t, dtypes.Float32, filler.DType())
	op, err := NewFillerOp(nil, Config{Shape: []int{5}}, filler)
	require.NoError(t, err)
	output := newOutput()
	require.NoError(t, op.Run(nil, output))
	require.Equal(t, []float32{0, 1, 2, 3, 4}, tensors.CopyFlatData[float32](output))

	// Values follow the linear buffer order, whatever the rank.
	intFiller := NewRangeFill[int32]()
	op, err = NewFillerOp(nil, Config{Shape: []int{2, 3}}, intFiller)
	require.NoError(t, err)
	require.NoError(t, op.Run(nil, output))
	require.Equal(t, []int32{0, 1, 2, 3, 4, 5}, tensors.CopyFlatData[int32](output))
}

func TestLengthsRangeFill(t *testing.T) {
	var op LengthsRangeFillOp
	output := newOutput()

	input := tensors.FromFlatDataAndDimensions([]int32{4, 0, 2}, 3)
	require.NoError(t, op.Run(input, output))
	require.True(t, output.Shape().Equal(shapes.Make(dtypes.Int32, 6)))
	require.Equal(t, []int32{0, 1, 2, 3, 0, 1}, tensors.CopyFlatData[int32](output))

	// An empty lengths vector produces an empty output.
	input = tensors.FromFlatDataAndDimensions([]int32{}, 0)
	require.NoError(t, op.Run(input, output))
	require.Equal(t, 0, output.Size())

	// The input must be a vector of Int32.
	input = tensors.FromFlatDataAndDimensions([]int32{1, 2, 3, 4}, 2, 2)
	require.ErrorIs(t, op.Run(input, output), ErrShape)
	input = tensors.FromFlatDataAndDimensions([]int64{1, 2}, 2)
	require.ErrorIs(t, op.Run(input, output), ErrShape)

	// Negative lengths are rejected.
	input = tensors.FromFlatDataAndDimensions([]int32{3, -1}, 2)
	require.ErrorIs(t, op.Run(input, output), ErrShape)

	// Nil input or output.
	require.ErrorIs(t, op.Run(nil, output), ErrConfiguration)
	require.ErrorIs(t, op.Run(input, nil), ErrConfiguration)
}
