package fillers

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	// Static shape, no input.
	require.NoError(t, Config{Shape: []int{2, 3}}.Validate())

	// Input-derived shapes.
	require.NoError(t, Config{HasInput: true}.Validate())
	require.NoError(t, Config{HasInput: true, ExtraShape: []int{16}}.Validate())
	require.NoError(t, Config{HasInput: true, InputAsShape: true}.Validate())

	// Shape and input are mutually exclusive.
	err := Config{Shape: []int{2}, HasInput: true}.Validate()
	require.ErrorIs(t, err, ErrConfiguration)

	// ExtraShape and InputAsShape require an input.
	require.ErrorIs(t, Config{ExtraShape: []int{2}}.Validate(), ErrConfiguration)
	require.ErrorIs(t, Config{InputAsShape: true}.Validate(), ErrConfiguration)

	// Negative dimensions are rejected.
	require.ErrorIs(t, Config{Shape: []int{2, -1}}.Validate(), ErrConfiguration)
	require.ErrorIs(t, Config{HasInput: true, ExtraShape: []int{-3}}.Validate(), ErrConfiguration)
}

func TestConfigOutputDims(t *testing.T) {
	// No input: the static shape, verbatim.
	dims, known, err := Config{Shape: []int{2, 3}}.OutputDims(nil, nil)
	require.NoError(t, err)
	require.True(t, known)
	require.Equal(t, []int{2, 3}, dims)

	// Input dims are copied, with ExtraShape appended.
	dims, known, err = Config{HasInput: true, ExtraShape: []int{16}}.OutputDims([]int{4, 5}, nil)
	require.NoError(t, err)
	require.True(t, known)
	require.Equal(t, []int{4, 5, 16}, dims)

	// A scalar input contributes no dimensions.
	dims, known, err = Config{HasInput: true, ExtraShape: []int{16}}.OutputDims(nil, nil)
	require.NoError(t, err)
	require.True(t, known)
	require.Equal(t, []int{16}, dims)

	// InputAsShape with values available: the values become the dims, ExtraShape still
	// appended.
	cfg := Config{HasInput: true, InputAsShape: true, ExtraShape: []int{7}}
	dims, known, err = cfg.OutputDims([]int{3}, func() ([]int, error) { return []int{2, 5}, nil })
	require.NoError(t, err)
	require.True(t, known)
	require.Equal(t, []int{2, 5, 7}, dims)

	// InputAsShape without values: unknown, no error, regardless of the declared rank.
	dims, known, err = cfg.OutputDims([]int{3}, nil)
	require.NoError(t, err)
	require.False(t, known)
	require.Nil(t, dims)
	_, known, err = cfg.OutputDims([]int{3, 3}, nil)
	require.NoError(t, err)
	require.False(t, known)

	// InputAsShape with values requires a rank-1 input.
	_, _, err = cfg.OutputDims([]int{3, 3}, func() ([]int, error) { return []int{2, 5}, nil })
	require.ErrorIs(t, err, ErrShape)

	// Negative values cannot be dimensions.
	_, _, err = cfg.OutputDims([]int{2}, func() ([]int, error) { return []int{2, -5}, nil })
	require.ErrorIs(t, err, ErrShape)

	// Errors reading the values propagate unchanged.
	boom := errors.New("boom")
	_, _, err = cfg.OutputDims([]int{2}, func() ([]int, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}
