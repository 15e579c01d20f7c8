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

func TestRRTRejectsInvalidOptions(t *testing.T) {
	_, err := NewRRT(RRTOptions{MaxDistance: 0, GoalBias: 0.05}, rand.New(rand.NewSource(1)), nil)
	test.That(t, errors.Is(err, ErrMaxDistanceNotPositive), test.ShouldBeTrue)
}

func TestRRTSolveBeforeConfigure(t *testing.T) {
	p, err := NewRRT(RRTOptions{MaxDistance: 0.5, GoalBias: 0.05}, rand.New(rand.NewSource(1)), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	_, err = p.Solve(time.Second)
	test.That(t, err, test.ShouldBeError, ErrPlannerUninitialised)
}

func TestRRTRejectsInvalidStart(t *testing.T) {
	sp, err := wallGapSpace()
	test.That(t, err, test.ShouldBeNil)
	checker := wallGapChecker()
	bundle, err := problem.NewBundle(sp, []space.Configuration{space.RealVector{5, 5}}, nil)
	test.That(t, err, test.ShouldBeNil)

	p, err := NewRRT(RRTOptions{MaxDistance: 0.5, GoalBias: 0.05}, rand.New(rand.NewSource(1)), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	goalRegion := goal.NewEuclideanBallGoal(sp, space.RealVector{9, 5}, 0.5)
	err = p.Configure(bundle, goalRegion, checker)
	test.That(t, err, test.ShouldBeError, ErrInvalidStartState)
}

// TestRRTWallGap grounds spec.md §8 scenario 2: R^2 wall gap via RRT.
func TestRRTWallGap(t *testing.T) {
	sp, err := wallGapSpace()
	test.That(t, err, test.ShouldBeNil)
	checker := wallGapChecker()
	start := space.RealVector{1, 5}
	goalRegion := goal.NewEuclideanBallGoal(sp, space.RealVector{9, 5}, 0.5)
	bundle, err := problem.NewBundle(sp, []space.Configuration{start}, goalRegion)
	test.That(t, err, test.ShouldBeNil)

	p, err := NewRRT(RRTOptions{MaxDistance: 0.5, GoalBias: 0.05}, rand.New(rand.NewSource(42)), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Configure(bundle, goalRegion, checker), test.ShouldBeNil)

	path, err := p.Solve(5 * time.Second)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path.Len(), test.ShouldBeGreaterThanOrEqualTo, 1)
	test.That(t, goalRegion.IsSatisfied(path.Last()), test.ShouldBeTrue)
	test.That(t, path.First(), test.ShouldResemble, start)

	for i := 1; i < len(path.Configurations); i++ {
		test.That(t, checker.IsValid(path.Configurations[i]), test.ShouldBeTrue)
	}
}
