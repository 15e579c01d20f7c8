package planner

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/sampleplan/planning/goal"
	"github.com/sampleplan/planning/logging"
	"github.com/sampleplan/planning/problem"
	"github.com/sampleplan/planning/space"
)

func TestPRMSolveBeforeBuildRoadmap(t *testing.T) {
	sp, err := wallGapSpace()
	test.That(t, err, test.ShouldBeNil)
	checker := wallGapChecker()
	p, err := NewPRM(PRMOptions{ConstructionTimeout: time.Second, ConnectionRadius: 0.5}, rand.New(rand.NewSource(1)), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Configure(mustBundle(t, sp, space.RealVector{1, 5}), checker), test.ShouldBeNil)

	goalRegion := goal.NewEuclideanBallGoal(sp, space.RealVector{9, 5}, 0.5)
	bundle := mustBundle(t, sp, space.RealVector{1, 5})
	_, err = p.Solve(bundle, goalRegion, time.Second)
	test.That(t, err, test.ShouldBeError, ErrUnsampledStateSpace)
}

// TestPRMWallGap grounds spec.md §8 scenario 1: R^2 wall gap via PRM.
func TestPRMWallGap(t *testing.T) {
	sp, err := wallGapSpace()
	test.That(t, err, test.ShouldBeNil)
	checker := wallGapChecker()
	start := space.RealVector{1, 5}
	goalRegion := goal.NewEuclideanBallGoal(sp, space.RealVector{9, 5}, 0.5)
	bundle, err := problem.NewBundle(sp, []space.Configuration{start}, goalRegion)
	test.That(t, err, test.ShouldBeNil)

	p, err := NewPRM(PRMOptions{ConstructionTimeout: 5 * time.Second, ConnectionRadius: 0.5}, rand.New(rand.NewSource(42)), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Configure(bundle, checker), test.ShouldBeNil)
	test.That(t, p.BuildRoadmap(5*time.Second), test.ShouldBeNil)

	path, err := p.Solve(bundle, goalRegion, 5*time.Second)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path.First(), test.ShouldResemble, start)
	test.That(t, goalRegion.IsSatisfied(path.Last()), test.ShouldBeTrue)
	for _, cfg := range path.Configurations {
		test.That(t, checker.IsValid(cfg), test.ShouldBeTrue)
	}
}

// TestPRMQueryOnlyFailure grounds spec.md §8 scenario 6: a query whose
// start lies beyond connection_radius of every milestone.
func TestPRMQueryOnlyFailure(t *testing.T) {
	sp, err := wallGapSpace()
	test.That(t, err, test.ShouldBeNil)
	checker := wallGapChecker()
	goalRegion := goal.NewEuclideanBallGoal(sp, space.RealVector{9, 5}, 0.5)

	buildBundle, err := problem.NewBundle(sp, []space.Configuration{space.RealVector{5, 5}}, goalRegion)
	test.That(t, err, test.ShouldBeNil)

	p, err := NewPRM(PRMOptions{ConstructionTimeout: 500 * time.Millisecond, ConnectionRadius: 0.01}, rand.New(rand.NewSource(5)), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Configure(buildBundle, checker), test.ShouldBeNil)
	test.That(t, p.BuildRoadmap(500*time.Millisecond), test.ShouldBeNil)

	// A start point whose exact coordinates were never part of the
	// construction-phase sampling: with a 0.01 connection radius over a
	// continuous [0,10]^2 square, the probability any milestone falls
	// within range of this exact point is negligible.
	isolatedStart := space.RealVector{0.0001234, 0.0005678}
	queryBundle, err := problem.NewBundle(sp, []space.Configuration{isolatedStart}, goalRegion)
	test.That(t, err, test.ShouldBeNil)

	_, err = p.Solve(queryBundle, goalRegion, time.Second)
	test.That(t, errors.Is(err, ErrNoSolutionFound), test.ShouldBeTrue)
}

func mustBundle(t *testing.T, sp space.Space, start space.Configuration) *problem.Bundle {
	t.Helper()
	b, err := problem.NewBundle(sp, []space.Configuration{start}, nil)
	test.That(t, err, test.ShouldBeNil)
	return b
}
