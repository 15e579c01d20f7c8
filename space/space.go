// Package space defines the abstract configuration-space interface (C2)
// that every planner in this module is written against, plus the three
// concrete configuration types and spaces the library ships (C1): R^n,
// SO(2), and SO(3). Grounded on spec.md §3/§4.1 and
// oxmpl/src/base/space.rs's StateSpace trait.
package space

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sampleplan/planning/logging"
)

// Configuration is a point in some manifold. Concrete configuration types
// (RealVector, SO2, SO3) satisfy this trivially; it exists so generic code
// can be written against "a configuration" without committing to a type
// parameter, matching the role oxmpl's State trait plays.
type Configuration interface {
	// Clone returns an independent copy, so planners can safely hold
	// configurations across iterations without aliasing caller state.
	Clone() Configuration
}

// Space is the polymorphic configuration-space contract every concrete
// space (and every user-defined space) implements. See spec.md §4.1.
type Space interface {
	// Distance returns a non-negative, symmetric distance between a and b
	// that is zero exactly when a and b represent the same point on the
	// manifold.
	Distance(a, b Configuration) float64

	// Interpolate writes into out the configuration that is t of the way
	// from "from" to "to" along the space's natural geodesic. t=0 yields
	// "from", t=1 yields "to" (up to manifold identity). The planners and
	// the motion validator in this module only pass t in [0, 1].
	Interpolate(from, to Configuration, t float64, out Configuration)

	// EnforceBounds mutates cfg in place so that SatisfiesBounds(cfg) holds
	// afterward.
	EnforceBounds(cfg Configuration)

	// SatisfiesBounds reports whether cfg lies within the space's bounds,
	// with a small floating-point tolerance.
	SatisfiesBounds(cfg Configuration) bool

	// SampleUniform draws a configuration uniformly distributed within the
	// space's bounds. Returns an error (never propagated out of a planner
	// loop — see spec.md §7) if the space cannot be sampled, e.g. an
	// unbounded dimension or zero-volume bounds.
	SampleUniform(rng *rand.Rand) (Configuration, error)

	// NewConfiguration allocates a zero-valued configuration of this
	// space's type, suitable for use as the "out" parameter to Interpolate.
	NewConfiguration() Configuration

	// MaxExtent returns an upper bound on the distance between any two
	// in-bounds configurations.
	MaxExtent() float64

	// LongestValidSegmentLength returns MaxExtent() * fraction, where
	// fraction is the space's configured longest-valid-segment-fraction.
	// Used by the motion validator (C7) to pick its check resolution.
	LongestValidSegmentLength() float64
}

// Construction-time error sentinels (spec.md §7 "Bounds construction").
// Grounded on oxmpl/src/base/error.rs's StateSpaceError variants.
var (
	// ErrDimensionMismatch is returned when a bounds slice's length does
	// not match a space's declared dimension.
	ErrDimensionMismatch = errors.New("bounds length does not match space dimension")
	// ErrInvalidBound is returned when a (lower, upper) pair has lower >= upper.
	ErrInvalidBound = errors.New("lower bound is not less than upper bound")
	// ErrZeroDimensionUnbounded is returned when a 0-dimensional space is
	// requested with an empty bounds slice.
	ErrZeroDimensionUnbounded = errors.New("cannot create a 0-dimensional unbounded space")
	// ErrInvalidAngularDistance is returned when an SO(3) cone's max angle
	// is negative or greater than pi.
	ErrInvalidAngularDistance = errors.New("cone-of-freedom max angle must be non-negative")
	// ErrZeroMagnitude is returned normalizing a null quaternion.
	ErrZeroMagnitude = errors.New("cannot normalize a zero-magnitude quaternion")
)

// Sampling-loop error sentinels (spec.md §7 "Sampling"). These are never
// surfaced from Solve; a planner iteration that receives one simply retries
// with a fresh draw.
var (
	ErrUnboundedDimension = errors.New("cannot sample uniformly: dimension is unbounded")
	ErrZeroVolume         = errors.New("cannot sample uniformly: space has zero volume")
)

// DimensionMismatchError reports the expected vs. found bounds length.
func dimensionMismatchError(expected, found int) error {
	return fmt.Errorf("%w: expected %d, found %d", ErrDimensionMismatch, expected, found)
}

// invalidBoundError reports a specific offending (lower, upper) pair.
func invalidBoundError(lower, upper float64) error {
	return fmt.Errorf("%w: lower=%v upper=%v", ErrInvalidBound, lower, upper)
}

// clampFraction implements spec.md §6's clamping rule for
// longest_valid_segment_fraction: <=0 clamps to a degenerate-but-valid 0
// (which collapses the motion check to a single endpoint test), >1 clamps
// to 1. wasClamped reports whether the input was outside (0, 1].
func clampFraction(f float64) (clamped float64, wasClamped bool) {
	switch {
	case f <= 0:
		return 0, f != 0
	case f > 1:
		return 1, true
	default:
		return f, false
	}
}

// resolveFraction clamps f per clampFraction and logs a Warn through
// logger when the clamp actually changed the requested value, per
// SPEC_FULL.md §2's "clamp logged at Warn" commitment. Unlike the
// zero-means-default ergonomic this replaces, a requested fraction of
// exactly 0 clamps to 0 rather than silently becoming
// DefaultLongestValidSegmentFraction, keeping spec.md §6's degenerate
// endpoint-only motion check reachable through the public constructors.
func resolveFraction(f float64, logger logging.Logger) float64 {
	clamped, wasClamped := clampFraction(f)
	if wasClamped {
		logger.Warnw("longest_valid_segment_fraction out of (0, 1], clamped", "requested", f, "used", clamped)
	}
	return clamped
}

// defaultLogger returns logger, or a development logger named "space" if
// logger is nil, matching the planner package's own nil-logger defaulting.
func defaultLogger(logger logging.Logger) logging.Logger {
	if logger == nil {
		return logging.NewDevelopmentLogger("space")
	}
	return logger
}

// DefaultLongestValidSegmentFraction is the value spec.md §3 recommends
// when a caller has no policy of its own (0.05). It is not applied
// implicitly by any constructor in this package; pass it explicitly.
const DefaultLongestValidSegmentFraction = 0.05
