// Package backends provides the host numeric kernels consumed by the filler operators:
// the random-uniform, random-gaussian and elementwise-set primitives that write into the
// flat data of a tensor.
//
// The random kernels are parameterized by a Context, which owns the random number
// generator state. A Context is not safe for concurrent use: either give each goroutine
// (e.g. each parallel graph-execution worker) its own Context, or serialize access
// externally.
package backends

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gomlx/gopjrt/dtypes"
	"gonum.org/v1/gonum/stat/distuv"
)

// Context holds the random number generator state used by the random fill kernels.
//
// It plays the role of a device context: the filler operators receive one at
// construction and thread it through to every fill call.
type Context struct {
	rng *rand.Rand
}

// New returns a Context seeded from the nanosecond clock.
func New() *Context {
	return NewFromSeed(time.Now().UTC().UnixNano())
}

// NewFromSeed returns a Context with a deterministic random number generator state
// derived from seed. Two contexts created with the same seed generate the same
// sequence of values.
func NewFromSeed(seed int64) *Context {
	return &Context{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)*0x9E3779B97F4A7C15))}
}

// Rand returns the underlying random number generator.
func (c *Context) Rand() *rand.Rand { return c.rng }

// Float are the floating point types handled by the random kernels.
type Float interface {
	float32 | float64
}

// RandUniform fills flat with i.i.d. values uniformly distributed in the half-open
// interval [min, max). It requires min < max, which the filler constructors validate.
func RandUniform[T Float](ctx *Context, flat []T, min, max T) {
	if len(flat) == 0 {
		return
	}
	dist := distuv.Uniform{Min: float64(min), Max: float64(max), Src: ctx.rng}
	switch typed := any(flat).(type) {
	case []float32:
		// Rounding the float64 sample down to float32 can land exactly on max;
		// clamp to keep the interval half-open.
		top := math.Nextafter32(float32(max), float32(min))
		for ii := range typed {
			v := float32(dist.Rand())
			if v > top {
				v = top
			}
			typed[ii] = v
		}
	case []float64:
		top := math.Nextafter(float64(max), float64(min))
		for ii := range typed {
			v := dist.Rand()
			if v > top {
				v = top
			}
			typed[ii] = v
		}
	}
}

// RandGaussian fills flat with i.i.d. values drawn from a normal distribution with the
// given mean and standard deviation. It requires stddev > 0, which the filler
// constructors validate.
func RandGaussian[T Float](ctx *Context, flat []T, mean, stddev T) {
	dist := distuv.Normal{Mu: float64(mean), Sigma: float64(stddev), Src: ctx.rng}
	for ii := range flat {
		flat[ii] = T(dist.Rand())
	}
}

// Set sets every element of flat to value.
func Set[T dtypes.Supported](flat []T, value T) {
	for ii := range flat {
		flat[ii] = value
	}
}
