package goal

import (
	"math/rand"

	"github.com/sampleplan/planning/space"
)

// These constructors supplement spec.md's bare interfaces with the
// concrete goal-region shapes every one of spec.md §8's end-to-end
// scenarios needs (a ball around a point, an arc on a circle, a cone on
// SO(3)). Grounded on the ad hoc goal construction in oxmpl's own test
// suites — see SPEC_FULL.md §4.

// euclideanBallGoal is a ball of the given radius around a center
// configuration in any space that reports a Euclidean-style distance
// (R^n, SO(2), SO(3) all qualify — the ball is defined purely in terms of
// the space's own Distance).
type euclideanBallGoal struct {
	space  space.Space
	center space.Configuration
	radius float64

	maxSampleAttempts int
}

// NewEuclideanBallGoal builds a sampleable goal region: every
// configuration within radius of center, measured by sp.Distance. Works
// for any space (R^n, SO(2), SO(3)) since it only uses the space's
// distance and sampling primitives — for SO(2)/SO(3) "ball" reads as
// "angular neighborhood".
func NewEuclideanBallGoal(sp space.Space, center space.Configuration, radius float64) SampleableRegion {
	return &euclideanBallGoal{space: sp, center: center, radius: radius, maxSampleAttempts: 1000}
}

func (g *euclideanBallGoal) IsSatisfied(cfg space.Configuration) bool {
	return g.space.Distance(g.center, cfg) <= g.radius
}

func (g *euclideanBallGoal) DistanceToGoal(cfg space.Configuration) float64 {
	d := g.space.Distance(g.center, cfg) - g.radius
	if d < 0 {
		return 0
	}
	return d
}

// SampleGoal rejection-samples the space's uniform sampler, keeping the
// first draw that falls inside the ball. This is a generically-correct but
// inefficient strategy for goal regions that are a small fraction of the
// space's volume; it's the same approach spec.md describes for SO(3)'s
// cone-of-freedom bound sampling, applied here to any Space.
func (g *euclideanBallGoal) SampleGoal(rng *rand.Rand) (space.Configuration, error) {
	for i := 0; i < g.maxSampleAttempts; i++ {
		cand, err := g.space.SampleUniform(rng)
		if err != nil {
			continue
		}
		if g.IsSatisfied(cand) {
			return cand, nil
		}
	}
	return nil, ErrGoalSamplingTimeout
}

// angularArcGoal is a goal region on SO(2): all angles within tolerance of
// a target angle. Unlike euclideanBallGoal's rejection sampling, this
// samples directly from the target arc, since SO(2)'s uniform sampler can
// already be restricted to an arc (space.SO2Space.SampleUniform).
type angularArcGoal struct {
	so2Space  *space.SO2Space
	target    float64
	tolerance float64
}

// NewAngularArcGoal builds a goal region centered on target (radians) with
// the given angular tolerance, sampled directly from the
// [target-tolerance, target+tolerance) arc rather than by rejection.
func NewAngularArcGoal(sp *space.SO2Space, target, tolerance float64) SampleableRegion {
	return &angularArcGoal{so2Space: sp, target: target, tolerance: tolerance}
}

func (g *angularArcGoal) IsSatisfied(cfg space.Configuration) bool {
	return g.so2Space.Distance(&space.SO2{Theta: g.target}, cfg) <= g.tolerance
}

func (g *angularArcGoal) DistanceToGoal(cfg space.Configuration) float64 {
	d := g.so2Space.Distance(&space.SO2{Theta: g.target}, cfg) - g.tolerance
	if d < 0 {
		return 0
	}
	return d
}

func (g *angularArcGoal) SampleGoal(rng *rand.Rand) (space.Configuration, error) {
	arcSpace := space.NewSO2ArcSpace(g.target-g.tolerance, g.target+g.tolerance, 1, nil)
	return arcSpace.SampleUniform(rng)
}

// so3ConeGoal is a goal region on SO(3): all rotations within tolerance of
// a target rotation, sampled directly via an SO3Space cone rather than by
// rejection, for the same reason as angularArcGoal.
type so3ConeGoal struct {
	target    *space.SO3
	tolerance float64
	coneSpace *space.SO3Space
}

// NewSO3ConeGoal builds a goal region centered on target with the given
// angular tolerance (radians).
func NewSO3ConeGoal(target *space.SO3, tolerance float64) (SampleableRegion, error) {
	coneSpace, err := space.NewSO3ConeSpace(target, tolerance, 1, nil)
	if err != nil {
		return nil, err
	}
	return &so3ConeGoal{target: target, tolerance: tolerance, coneSpace: coneSpace}, nil
}

func (g *so3ConeGoal) IsSatisfied(cfg space.Configuration) bool {
	return g.coneSpace.Distance(g.target, cfg) <= g.tolerance
}

func (g *so3ConeGoal) DistanceToGoal(cfg space.Configuration) float64 {
	d := g.coneSpace.Distance(g.target, cfg) - g.tolerance
	if d < 0 {
		return 0
	}
	return d
}

func (g *so3ConeGoal) SampleGoal(rng *rand.Rand) (space.Configuration, error) {
	return g.coneSpace.SampleUniform(rng)
}
