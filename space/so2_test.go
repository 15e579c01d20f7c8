package space

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/sampleplan/planning/logging"
)

func TestSO2NormalizationIdempotence(t *testing.T) {
	for _, theta := range []float64{0, math.Pi, -math.Pi, 3 * math.Pi, -7.5, 100} {
		once := normalizeSO2(theta)
		twice := normalizeSO2(once)
		test.That(t, twice, test.ShouldAlmostEqual, once)
		test.That(t, once, test.ShouldBeGreaterThanOrEqualTo, -math.Pi)
		test.That(t, once, test.ShouldBeLessThan, math.Pi)
	}
}

func TestSO2DistanceAxioms(t *testing.T) {
	sp := NewSO2Space(0.05, logging.NewTestLogger(t))
	a := &SO2{Theta: 0.1}
	b := &SO2{Theta: 3.0}
	c := &SO2{Theta: -2.9}

	test.That(t, sp.Distance(a, b), test.ShouldBeGreaterThanOrEqualTo, 0.0)
	test.That(t, sp.Distance(a, b), test.ShouldAlmostEqual, sp.Distance(b, a))
	test.That(t, sp.Distance(a, a), test.ShouldAlmostEqual, 0.0)
	test.That(t, sp.Distance(a, c), test.ShouldBeLessThanOrEqualTo, sp.Distance(a, b)+sp.Distance(b, c)+1e-9)
}

func TestSO2InterpolateEndpoints(t *testing.T) {
	sp := NewSO2Space(0.05, logging.NewTestLogger(t))
	from := &SO2{Theta: -3.0}
	to := &SO2{Theta: 2.9}
	out := sp.NewConfiguration()

	sp.Interpolate(from, to, 0, out)
	test.That(t, sp.Distance(out, from), test.ShouldAlmostEqual, 0.0)

	sp.Interpolate(from, to, 1, out)
	test.That(t, sp.Distance(out, to), test.ShouldAlmostEqual, 0.0)
}

func TestSO2ArcEnforceBounds(t *testing.T) {
	sp := NewSO2ArcSpace(-0.5, 0.5, 0.05, logging.NewTestLogger(t))
	cfg := &SO2{Theta: math.Pi}
	sp.EnforceBounds(cfg)
	test.That(t, sp.SatisfiesBounds(cfg), test.ShouldBeTrue)
}

func TestSO2ArcSampleUniformInBounds(t *testing.T) {
	sp := NewSO2ArcSpace(-0.5, 0.5, 0.05, logging.NewTestLogger(t))
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		cfg, err := sp.SampleUniform(rng)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sp.SatisfiesBounds(cfg), test.ShouldBeTrue)
	}
}

func TestSO2WrappingArcSampleUniformInBounds(t *testing.T) {
	// an arc that wraps through +/-pi, e.g. the "valid" side of a forbidden
	// [-0.5, 0.5] band centred at 0 (spec.md §8 scenario 3).
	sp := NewSO2ArcSpace(0.5, -0.5, 0.05, logging.NewTestLogger(t))
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 10000; i++ {
		cfg, err := sp.SampleUniform(rng)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sp.SatisfiesBounds(cfg), test.ShouldBeTrue)
	}
}
