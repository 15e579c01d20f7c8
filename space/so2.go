package space

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sampleplan/planning/logging"
)

// SO2 is a configuration in SO(2): a single angle, canonically normalised
// into [-pi, pi). Grounded on oxmpl/src/base/states/so2_state.rs. Callers
// pass *SO2 as the Configuration, matching RealVector's pattern of a
// mutable, addressable value for Interpolate's "out" parameter.
type SO2 struct {
	Theta float64
}

// Clone returns an independent copy.
func (a *SO2) Clone() Configuration { return &SO2{Theta: a.Theta} }

// normalizeSO2 wraps theta into [-pi, pi). Idempotent: applying it twice is
// the same as applying it once (spec.md §8).
func normalizeSO2(theta float64) float64 {
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// SO2Space is the circle, optionally restricted to a sub-arc of
// [-pi, pi). Grounded on oxmpl/src/base/spaces/so2_state_space.rs.
type SO2Space struct {
	lower, upper float64 // sub-arc bounds; full circle when fullCircle is true
	fullCircle   bool
	fraction     float64
}

// NewSO2Space constructs the full circle, the default per spec.md §3.
// longestValidSegmentFraction is clamped per spec.md §6 (logged at Warn
// through logger, or a development logger if logger is nil).
func NewSO2Space(longestValidSegmentFraction float64, logger logging.Logger) *SO2Space {
	fraction := resolveFraction(longestValidSegmentFraction, defaultLogger(logger))
	return &SO2Space{lower: -math.Pi, upper: math.Pi, fullCircle: true, fraction: fraction}
}

// NewSO2ArcSpace restricts the space to the sub-arc [lower, upper) of
// [-pi, pi); the arc may wrap through +/-pi. Both bounds are normalised.
func NewSO2ArcSpace(lower, upper, longestValidSegmentFraction float64, logger logging.Logger) *SO2Space {
	fraction := resolveFraction(longestValidSegmentFraction, defaultLogger(logger))
	return &SO2Space{
		lower:    normalizeSO2(lower),
		upper:    normalizeSO2(upper),
		fraction: fraction,
	}
}

// NewConfiguration returns the zero angle.
func (s *SO2Space) NewConfiguration() Configuration { return &SO2{} }

// Distance is the absolute shortest angular difference on the circle.
func (s *SO2Space) Distance(a, b Configuration) float64 {
	av, bv := a.(*SO2).Theta, b.(*SO2).Theta
	return math.Abs(normalizeSO2(av - bv))
}

// Interpolate adds the shortest signed delta scaled by t, then
// re-normalises.
func (s *SO2Space) Interpolate(from, to Configuration, t float64, out Configuration) {
	fv, tv := from.(*SO2).Theta, to.(*SO2).Theta
	delta := normalizeSO2(tv - fv)
	out.(*SO2).Theta = normalizeSO2(fv + t*delta)
}

// inArc reports whether theta (already normalised) lies in [lower, upper),
// accounting for arcs that wrap through +/-pi.
func (s *SO2Space) inArc(theta float64) bool {
	if s.fullCircle || s.lower == s.upper {
		return true
	}
	if s.lower <= s.upper {
		return theta >= s.lower && theta < s.upper
	}
	return theta >= s.lower || theta < s.upper
}

// EnforceBounds snaps an out-of-arc angle to whichever arc endpoint is
// nearer.
func (s *SO2Space) EnforceBounds(cfg Configuration) {
	c := cfg.(*SO2)
	theta := normalizeSO2(c.Theta)
	if s.inArc(theta) {
		c.Theta = theta
		return
	}
	dLower := math.Abs(normalizeSO2(theta - s.lower))
	dUpper := math.Abs(normalizeSO2(theta - s.upper))
	if dLower <= dUpper {
		c.Theta = s.lower
	} else {
		c.Theta = s.upper
	}
}

// SatisfiesBounds reports whether cfg's angle lies within the sub-arc.
func (s *SO2Space) SatisfiesBounds(cfg Configuration) bool {
	return s.inArc(normalizeSO2(cfg.(*SO2).Theta))
}

// SampleUniform draws uniformly from the configured sub-arc.
func (s *SO2Space) SampleUniform(rng *rand.Rand) (Configuration, error) {
	lower, upper := s.lower, s.upper
	if !s.fullCircle && lower > upper {
		upper += 2 * math.Pi
	}
	u := distuv.Uniform{Min: lower, Max: upper, Src: rng}
	return &SO2{Theta: normalizeSO2(u.Rand())}, nil
}

// MaxExtent is pi: the greatest possible shortest-arc distance on a circle.
func (s *SO2Space) MaxExtent() float64 { return math.Pi }

// LongestValidSegmentLength returns MaxExtent() scaled by this space's
// configured fraction.
func (s *SO2Space) LongestValidSegmentLength() float64 {
	return s.MaxExtent() * s.fraction
}
