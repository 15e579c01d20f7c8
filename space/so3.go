package space

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"

	"github.com/sampleplan/planning/logging"
)

// SO3 is a configuration in SO(3): a unit quaternion (x, y, z, w).
// Antipodal quaternions represent the same rotation. Grounded on
// oxmpl/src/base/states/so3_state.rs. Wraps github.com/go-gl/mathgl's
// mgl64.Quat, the teacher's rotation-math dependency.
type SO3 struct {
	Q mgl64.Quat
}

// Clone returns an independent copy.
func (s *SO3) Clone() Configuration { return &SO3{Q: s.Q} }

// NewSO3 builds a configuration from an (x, y, z, w) quaternion, returning
// ErrZeroMagnitude if it is (approximately) null.
func NewSO3(x, y, z, w float64) (*SO3, error) {
	q := mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
	if quatNorm(q) < 1e-12 {
		return nil, ErrZeroMagnitude
	}
	return &SO3{Q: normalizeQuat(q)}, nil
}

func quatNorm(q mgl64.Quat) float64 {
	return math.Sqrt(q.W*q.W + q.V[0]*q.V[0] + q.V[1]*q.V[1] + q.V[2]*q.V[2])
}

func normalizeQuat(q mgl64.Quat) mgl64.Quat {
	n := quatNorm(q)
	return mgl64.Quat{W: q.W / n, V: mgl64.Vec3{q.V[0] / n, q.V[1] / n, q.V[2] / n}}
}

func quatDot(a, b mgl64.Quat) float64 {
	return a.W*b.W + a.V[0]*b.V[0] + a.V[1]*b.V[1] + a.V[2]*b.V[2]
}

// SO3Space is SO(3), optionally restricted to a cone of freedom: every
// rotation within maxAngle of a center rotation. Grounded on
// oxmpl/src/base/spaces/so3_state_space.rs.
type SO3Space struct {
	center     mgl64.Quat
	maxAngle   float64 // in [0, pi]; pi means unrestricted
	restricted bool
	fraction   float64
}

// NewSO3Space constructs the unrestricted SO(3) space (the default per
// spec.md §3). longestValidSegmentFraction is clamped per spec.md §6
// (logged at Warn through logger, or a development logger if logger is
// nil).
func NewSO3Space(longestValidSegmentFraction float64, logger logging.Logger) *SO3Space {
	fraction := resolveFraction(longestValidSegmentFraction, defaultLogger(logger))
	return &SO3Space{center: mgl64.QuatIdent(), maxAngle: math.Pi, fraction: fraction}
}

// NewSO3ConeSpace restricts the space to rotations within maxAngle of
// center. maxAngle must be in [0, pi]; otherwise ErrInvalidAngularDistance
// (aggregated with any other bounds error via multierr, matching
// RealVectorSpace's construction-time aggregation) is returned.
func NewSO3ConeSpace(center *SO3, maxAngle, longestValidSegmentFraction float64, logger logging.Logger) (*SO3Space, error) {
	var errs error
	if maxAngle < 0 || maxAngle > math.Pi {
		errs = multierr.Append(errs, ErrInvalidAngularDistance)
	}
	if errs != nil {
		return nil, errs
	}
	fraction := resolveFraction(longestValidSegmentFraction, defaultLogger(logger))
	return &SO3Space{
		center:     center.Q,
		maxAngle:   maxAngle,
		restricted: maxAngle < math.Pi,
		fraction:   fraction,
	}, nil
}

// NewConfiguration returns the identity rotation.
func (s *SO3Space) NewConfiguration() Configuration { return &SO3{Q: mgl64.QuatIdent()} }

// Distance is arccos(|a.b|), collapsing the antipodal double-cover.
func (s *SO3Space) Distance(a, b Configuration) float64 {
	av, bv := a.(*SO3).Q, b.(*SO3).Q
	d := math.Abs(quatDot(av, bv))
	if d > 1 {
		d = 1
	}
	return math.Acos(d)
}

// Interpolate performs spherical linear interpolation with a short-way
// sign flip, falling back to normalised linear interpolation once the
// quaternions are nearly coincident to avoid the numerically unstable
// slerp denominator.
func (s *SO3Space) Interpolate(from, to Configuration, t float64, out Configuration) {
	a, b := from.(*SO3).Q, to.(*SO3).Q
	dot := quatDot(a, b)
	if dot < 0 {
		b = mgl64.Quat{W: -b.W, V: mgl64.Vec3{-b.V[0], -b.V[1], -b.V[2]}}
		dot = -dot
	}

	const closeThreshold = 0.9995
	var result mgl64.Quat
	if dot > closeThreshold {
		result = mgl64.Quat{
			W: a.W + t*(b.W-a.W),
			V: mgl64.Vec3{a.V[0] + t*(b.V[0]-a.V[0]), a.V[1] + t*(b.V[1]-a.V[1]), a.V[2] + t*(b.V[2]-a.V[2])},
		}
		result = normalizeQuat(result)
	} else {
		theta0 := math.Acos(dot)
		theta := theta0 * t
		sinTheta0 := math.Sin(theta0)
		s0 := math.Cos(theta) - dot*math.Sin(theta)/sinTheta0
		s1 := math.Sin(theta) / sinTheta0
		result = mgl64.Quat{
			W: s0*a.W + s1*b.W,
			V: mgl64.Vec3{s0*a.V[0] + s1*b.V[0], s0*a.V[1] + s1*b.V[1], s0*a.V[2] + s1*b.V[2]},
		}
	}
	out.(*SO3).Q = result
}

// EnforceBounds renormalises cfg and, if it is a cone-restricted space and
// the rotation falls outside the cone, projects it back onto the cone
// boundary by slerp-ing toward the center until the angle equals maxAngle.
func (s *SO3Space) EnforceBounds(cfg Configuration) {
	c := cfg.(*SO3)
	c.Q = normalizeQuat(c.Q)
	if !s.restricted {
		return
	}
	angle := s.angleFromCenter(c.Q)
	if angle <= s.maxAngle {
		return
	}
	t := s.maxAngle / angle
	centerCfg := &SO3{Q: s.center}
	outBox := &SO3{}
	s.Interpolate(centerCfg, c, t, outBox)
	c.Q = outBox.Q
}

func (s *SO3Space) angleFromCenter(q mgl64.Quat) float64 {
	d := math.Abs(quatDot(s.center, q))
	if d > 1 {
		d = 1
	}
	return math.Acos(d)
}

// SatisfiesBounds reports whether cfg is (approximately) unit norm and, if
// restricted, within the cone of freedom.
func (s *SO3Space) SatisfiesBounds(cfg Configuration) bool {
	const tol = 1e-6
	q := cfg.(*SO3).Q
	if math.Abs(quatNorm(q)-1) > tol {
		return false
	}
	if !s.restricted {
		return true
	}
	return s.angleFromCenter(q) <= s.maxAngle+tol
}

// SampleUniform uses rejection sampling in the 4-cube: draw a point in
// [-1,1]^4, reject if outside the unit ball (or outside the cone, once
// normalised), else normalise. Grounded on spec.md §4.1's description of
// oxmpl's SO(3) sampler.
func (s *SO3Space) SampleUniform(rng *rand.Rand) (Configuration, error) {
	const maxAttempts = 10000
	for i := 0; i < maxAttempts; i++ {
		x := rng.Float64()*2 - 1
		y := rng.Float64()*2 - 1
		z := rng.Float64()*2 - 1
		w := rng.Float64()*2 - 1
		normSq := x*x + y*y + z*z + w*w
		if normSq > 1 || normSq < 1e-12 {
			continue
		}
		q := normalizeQuat(mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}})
		if s.restricted && s.angleFromCenter(q) > s.maxAngle {
			continue
		}
		return &SO3{Q: q}, nil
	}
	return nil, ErrZeroVolume
}

// MaxExtent is pi: arccos(|dot|) never exceeds pi/2 in principle, but the
// space's reported extent is conventionally pi to match spec.md's
// "max_angle in [0, pi]" framing for the SO(3) bound.
func (s *SO3Space) MaxExtent() float64 { return math.Pi }

// LongestValidSegmentLength returns MaxExtent() scaled by this space's
// configured fraction.
func (s *SO3Space) LongestValidSegmentLength() float64 {
	return s.MaxExtent() * s.fraction
}
