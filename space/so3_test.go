package space

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"

	"github.com/sampleplan/planning/logging"
)

func TestSO3ZeroMagnitudeRejected(t *testing.T) {
	_, err := NewSO3(0, 0, 0, 0)
	test.That(t, err, test.ShouldBeError, ErrZeroMagnitude)
}

func TestSO3ConeInvalidAngle(t *testing.T) {
	center, err := NewSO3(0, 0, 0, 1)
	test.That(t, err, test.ShouldBeNil)
	_, err = NewSO3ConeSpace(center, -0.1, 0.05, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeError, ErrInvalidAngularDistance)
}

func TestSO3DistanceAxioms(t *testing.T) {
	sp := NewSO3Space(0.05, logging.NewTestLogger(t))
	a, err := NewSO3(0, 0, 0, 1)
	test.That(t, err, test.ShouldBeNil)
	b, err := NewSO3(0, 0.7071, 0, 0.7071)
	test.That(t, err, test.ShouldBeNil)
	c, err := NewSO3(0.5, 0.5, 0.5, 0.5)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, sp.Distance(a, b), test.ShouldBeGreaterThanOrEqualTo, 0.0)
	test.That(t, sp.Distance(a, b), test.ShouldAlmostEqual, sp.Distance(b, a))
	test.That(t, sp.Distance(a, a), test.ShouldAlmostEqual, 0.0)
	test.That(t, sp.Distance(a, c), test.ShouldBeLessThanOrEqualTo, sp.Distance(a, b)+sp.Distance(b, c)+1e-6)
}

func TestSO3AntipodalIdentity(t *testing.T) {
	sp := NewSO3Space(0.05, logging.NewTestLogger(t))
	a, err := NewSO3(0, 0, 0, 1)
	test.That(t, err, test.ShouldBeNil)
	negA := &SO3{Q: mgl64.Quat{W: -a.Q.W, V: mgl64.Vec3{-a.Q.V[0], -a.Q.V[1], -a.Q.V[2]}}}
	test.That(t, sp.Distance(a, negA), test.ShouldAlmostEqual, 0.0)
}

func TestSO3SlerpEndpointsAndUnitNorm(t *testing.T) {
	sp := NewSO3Space(0.05, logging.NewTestLogger(t))
	from, err := NewSO3(0, 0, 0, 1)
	test.That(t, err, test.ShouldBeNil)
	to, err := NewSO3(0, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	out := sp.NewConfiguration()

	sp.Interpolate(from, to, 0, out)
	test.That(t, sp.Distance(out, from), test.ShouldAlmostEqual, 0.0)

	sp.Interpolate(from, to, 1, out)
	test.That(t, sp.Distance(out, to), test.ShouldAlmostEqual, 0.0)

	for _, tVal := range []float64{0, 0.25, 0.5, 0.75, 1} {
		sp.Interpolate(from, to, tVal, out)
		q := out.(*SO3).Q
		norm := math.Sqrt(q.W*q.W + q.V[0]*q.V[0] + q.V[1]*q.V[1] + q.V[2]*q.V[2])
		test.That(t, norm, test.ShouldAlmostEqual, 1.0, 1e-9)
	}
}

func TestSO3ConeEnforceBoundsProjectsOntoBoundary(t *testing.T) {
	center, err := NewSO3(0, 0, 0, 1)
	test.That(t, err, test.ShouldBeNil)
	maxAngle := 20 * math.Pi / 180
	sp, err := NewSO3ConeSpace(center, maxAngle, 0.05, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	outside, err := NewSO3(0, 1, 0, 0) // a pi rotation about Y, well outside a 20deg cone
	test.That(t, err, test.ShouldBeNil)
	sp.EnforceBounds(outside)
	test.That(t, sp.SatisfiesBounds(outside), test.ShouldBeTrue)
}

func TestSO3ConeSampleUniformInBounds(t *testing.T) {
	center, err := NewSO3(0, 0, 0, 1)
	test.That(t, err, test.ShouldBeNil)
	sp, err := NewSO3ConeSpace(center, 40*math.Pi/180, 0.05, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		cfg, err := sp.SampleUniform(rng)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sp.SatisfiesBounds(cfg), test.ShouldBeTrue)
	}
}
