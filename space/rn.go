package space

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sampleplan/planning/logging"
)

// RealVector is a configuration in R^n: a fixed-length ordered sequence of
// reals. Grounded on oxmpl/src/base/states/real_vector_state.rs.
type RealVector []float64

// Clone returns an independent copy of v.
func (v RealVector) Clone() Configuration {
	out := make(RealVector, len(v))
	copy(out, v)
	return out
}

// Bound is an inclusive (Lower, Upper) range for one dimension of an R^n
// space. Either end may be +/-Inf, but an unbounded dimension disables
// SampleUniform (spec.md §3).
type Bound struct {
	Lower, Upper float64
}

// RealVectorSpace is the R^n configuration space: a fixed dimension plus
// per-dimension bounds. Grounded on
// oxmpl/src/base/spaces/real_vector_state_space.rs.
type RealVectorSpace struct {
	dim      int
	bounds   []Bound
	fraction float64
}

// NewRealVectorSpace constructs an n-dimensional Euclidean configuration
// space with the given per-dimension bounds. len(bounds) must equal
// dimension. A dimension of 0 is always rejected: with empty bounds it
// returns ErrZeroDimensionUnbounded (spec.md §7), with non-empty bounds
// ErrDimensionMismatch. Every invalid (lower, upper)
// pair is reported together via multierr, not just the first, so a caller
// validating a hand-written config sees every mistake in one pass.
// longestValidSegmentFraction is clamped per spec.md §6 (logged at Warn
// through logger, or a development logger if logger is nil); pass
// DefaultLongestValidSegmentFraction for the spec's recommended value.
func NewRealVectorSpace(dimension int, bounds []Bound, longestValidSegmentFraction float64, logger logging.Logger) (*RealVectorSpace, error) {
	if dimension == 0 && len(bounds) == 0 {
		return nil, ErrZeroDimensionUnbounded
	}
	if len(bounds) != dimension {
		return nil, dimensionMismatchError(dimension, len(bounds))
	}

	var errs error
	for _, b := range bounds {
		if !(b.Lower < b.Upper) {
			errs = multierr.Append(errs, invalidBoundError(b.Lower, b.Upper))
		}
	}
	if errs != nil {
		return nil, errs
	}

	fraction := resolveFraction(longestValidSegmentFraction, defaultLogger(logger))

	boundsCopy := make([]Bound, len(bounds))
	copy(boundsCopy, bounds)
	return &RealVectorSpace{dim: dimension, bounds: boundsCopy, fraction: fraction}, nil
}

// Dimension returns the space's fixed dimension n.
func (s *RealVectorSpace) Dimension() int { return s.dim }

// Bounds returns a copy of the per-dimension bounds.
func (s *RealVectorSpace) Bounds() []Bound {
	out := make([]Bound, len(s.bounds))
	copy(out, s.bounds)
	return out
}

// NewConfiguration returns a zero vector of this space's dimension.
func (s *RealVectorSpace) NewConfiguration() Configuration {
	return make(RealVector, s.dim)
}

// Distance is the L2 (Euclidean) norm of the difference, computed with
// gonum/floats so the hot inner-loop distance call reuses a vetted,
// allocation-aware norm implementation rather than a hand-rolled loop.
func (s *RealVectorSpace) Distance(a, b Configuration) float64 {
	av, bv := a.(RealVector), b.(RealVector)
	return floats.Distance(av, bv, 2)
}

// Interpolate performs per-component linear interpolation.
func (s *RealVectorSpace) Interpolate(from, to Configuration, t float64, out Configuration) {
	fv, tv, ov := from.(RealVector), to.(RealVector), out.(RealVector)
	for i := range fv {
		ov[i] = fv[i] + t*(tv[i]-fv[i])
	}
}

// EnforceBounds clamps each component to its (lower, upper) range.
func (s *RealVectorSpace) EnforceBounds(cfg Configuration) {
	v := cfg.(RealVector)
	for i, b := range s.bounds {
		v[i] = math.Max(b.Lower, math.Min(b.Upper, v[i]))
	}
}

// SatisfiesBounds reports whether every component lies within its bound,
// with a small floating-point tolerance.
func (s *RealVectorSpace) SatisfiesBounds(cfg Configuration) bool {
	const tol = 1e-9
	v := cfg.(RealVector)
	for i, b := range s.bounds {
		if v[i] < b.Lower-tol || v[i] > b.Upper+tol {
			return false
		}
	}
	return true
}

// SampleUniform draws each component independently from Uniform(lower,
// upper) via gonum/stat/distuv, returning ErrUnboundedDimension or
// ErrZeroVolume if the space cannot be sampled this way.
func (s *RealVectorSpace) SampleUniform(rng *rand.Rand) (Configuration, error) {
	out := make(RealVector, s.dim)
	for i, b := range s.bounds {
		if math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0) {
			return nil, fmt.Errorf("%w: dimension %d", ErrUnboundedDimension, i)
		}
		if b.Upper <= b.Lower {
			return nil, fmt.Errorf("%w: dimension %d", ErrZeroVolume, i)
		}
		u := distuv.Uniform{Min: b.Lower, Max: b.Upper, Src: rng}
		out[i] = u.Rand()
	}
	return out, nil
}

// MaxExtent returns the bounding-box diagonal length, or 1 if any
// dimension is unbounded (spec.md §4.1).
func (s *RealVectorSpace) MaxExtent() float64 {
	sumSq := 0.0
	for _, b := range s.bounds {
		if math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0) {
			return 1
		}
		d := b.Upper - b.Lower
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}

// LongestValidSegmentLength returns MaxExtent() scaled by this space's
// configured fraction.
func (s *RealVectorSpace) LongestValidSegmentLength() float64 {
	return s.MaxExtent() * s.fraction
}
