package fillers

import (
	"github.com/gomlx/fillers/backends"
	"github.com/gomlx/fillers/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

// ConstantFill sets every element of the output to a constant value.
//
// The element type is resolved once, at construction: an explicit dtype
// (NewConstantFillWithDType) wins; otherwise it is inferred from the Go type of the
// value -- floats map to Float32 and integers to Int64 (NewConstantFill). The value is
// converted and bound to a typed fill function at the same time, through a dispatch
// table keyed by dtype, so no type branching happens per fill call.
type ConstantFill struct {
	dtype dtypes.DType
	fill  boundConstantFill
}

// boundConstantFill is a fill function with the converted value already bound.
type boundConstantFill func(output *tensors.Tensor) error

// NewConstantFill creates a constant fill strategy, inferring the element type from the
// Go type of value: float32/float64 resolve to Float32, int/int32/int64 to Int64. Any
// other value type fails.
func NewConstantFill(value any) (*ConstantFill, error) {
	var dtype dtypes.DType
	switch value.(type) {
	case float32, float64:
		dtype = dtypes.Float32
	case int, int32, int64:
		dtype = dtypes.Int64
	default:
		return nil, errors.Wrapf(ErrType, "constant fill value is of unexpected type %T", value)
	}
	klog.V(1).Infof("ConstantFill: dtype not given, assuming %s based on the type of the value (%T)",
		dtype, value)
	return newConstantFill(value, dtype)
}

// NewConstantFillWithDType creates a constant fill strategy with an explicit element
// type. A nil value counts as zero. It fails if dtype is InvalidDType or not supported,
// or if value cannot represent an element of dtype.
func NewConstantFillWithDType(value any, dtype dtypes.DType) (*ConstantFill, error) {
	if dtype == dtypes.InvalidDType {
		return nil, errors.Wrap(ErrType, "constant fill cannot take an undefined dtype")
	}
	return newConstantFill(value, dtype)
}

func newConstantFill(value any, dtype dtypes.DType) (*ConstantFill, error) {
	binder, found := constantFillBinders[dtype]
	if !found {
		return nil, errors.Wrapf(ErrType, "unexpected dtype %s for constant fill", dtype)
	}
	fill, err := binder(value)
	if err != nil {
		return nil, err
	}
	return &ConstantFill{dtype: dtype, fill: fill}, nil
}

// DType implements Filler.
func (f *ConstantFill) DType() dtypes.DType { return f.dtype }

// Fill implements Filler.
func (f *ConstantFill) Fill(_ *backends.Context, output *tensors.Tensor) error {
	return f.fill(output)
}

// constantFillBinders maps each supported element type to a function that converts the
// configured value and returns the typed fill bound to it.
var constantFillBinders = map[dtypes.DType]func(value any) (boundConstantFill, error){
	dtypes.Bool:     bindBoolConstant,
	dtypes.Int8:     bindNumericConstant[int8],
	dtypes.Int16:    bindNumericConstant[int16],
	dtypes.Int32:    bindNumericConstant[int32],
	dtypes.Int64:    bindNumericConstant[int64],
	dtypes.Uint8:    bindNumericConstant[uint8],
	dtypes.Uint16:   bindNumericConstant[uint16],
	dtypes.Uint32:   bindNumericConstant[uint32],
	dtypes.Uint64:   bindNumericConstant[uint64],
	dtypes.Float32:  bindNumericConstant[float32],
	dtypes.Float64:  bindNumericConstant[float64],
	dtypes.Float16:  bindFloat16Constant,
	dtypes.BFloat16: bindBFloat16Constant,
}

// bindTypedConstant returns the fill for one converted value.
func bindTypedConstant[T dtypes.Supported](value T) boundConstantFill {
	return func(output *tensors.Tensor) error {
		if output.Size() == 0 {
			return nil
		}
		tensors.MutableFlatData(output, func(flat []T) {
			backends.Set(flat, value)
		})
		return nil
	}
}

func bindNumericConstant[T podNumericConstraints](value any) (boundConstantFill, error) {
	converted, err := convertNumeric[T](value)
	if err != nil {
		return nil, err
	}
	return bindTypedConstant(converted), nil
}

func bindFloat16Constant(value any) (boundConstantFill, error) {
	converted, err := convertNumeric[float32](value)
	if err != nil {
		return nil, err
	}
	return bindTypedConstant(float16.Fromfloat32(converted)), nil
}

func bindBFloat16Constant(value any) (boundConstantFill, error) {
	converted, err := convertNumeric[float32](value)
	if err != nil {
		return nil, err
	}
	return bindTypedConstant(bfloat16.FromFloat32(converted)), nil
}

func bindBoolConstant(value any) (boundConstantFill, error) {
	switch v := value.(type) {
	case nil:
		return bindTypedConstant(false), nil
	case bool:
		return bindTypedConstant(v), nil
	}
	return nil, errors.Wrapf(ErrType, "cannot use value of type %T as a Bool constant", value)
}

// podNumericConstraints are the Go plain-old-data numeric types. Float16 and BFloat16
// are not included because they are specialized types, not natively supported by Go.
type podNumericConstraints interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// convertNumeric converts the configured value to the resolved element type. A nil
// value counts as zero.
func convertNumeric[T podNumericConstraints](value any) (T, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float32:
		return T(v), nil
	case float64:
		return T(v), nil
	case int:
		return T(v), nil
	case int32:
		return T(v), nil
	case int64:
		return T(v), nil
	}
	var zero T
	return zero, errors.Wrapf(ErrType, "cannot use value of type %T as a %T constant", value, zero)
}
