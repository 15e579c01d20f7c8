package motion

import (
	"testing"

	"go.viam.com/test"

	"github.com/sampleplan/planning/logging"
	"github.com/sampleplan/planning/space"
	"github.com/sampleplan/planning/validity"
)

func wallChecker(cfg space.Configuration) bool {
	v := cfg.(space.RealVector)
	return !(v[0] >= 4.75 && v[0] <= 5.25)
}

func TestCheckMotionRejectsCrossingWall(t *testing.T) {
	sp, err := space.NewRealVectorSpace(2, []space.Bound{{Lower: 0, Upper: 10}, {Lower: 0, Upper: 10}}, 0.05, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	v := New(sp, validity.CheckerFunc(wallChecker))

	ok := v.CheckMotion(space.RealVector{1, 5}, space.RealVector{9, 5})
	test.That(t, ok, test.ShouldBeFalse)
}

func TestCheckMotionAcceptsValidSegment(t *testing.T) {
	sp, err := space.NewRealVectorSpace(2, []space.Bound{{Lower: 0, Upper: 10}, {Lower: 0, Upper: 10}}, 0.05, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	v := New(sp, validity.CheckerFunc(wallChecker))

	ok := v.CheckMotion(space.RealVector{1, 1}, space.RealVector{2, 2})
	test.That(t, ok, test.ShouldBeTrue)
}

func TestStepCountDegenerateFraction(t *testing.T) {
	// a fraction of 0 clamps to 0 (spec.md §6), collapsing LongestValidSegmentLength
	// to 0 and so the motion check to a single endpoint test.
	sp, err := space.NewRealVectorSpace(1, []space.Bound{{Lower: 0, Upper: 10}}, 0, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	v := New(sp, validity.CheckerFunc(func(space.Configuration) bool { return true }))

	// stepCount(d, 0) must degenerate to a single endpoint test (spec.md §9).
	test.That(t, v.stepCount(5, 0), test.ShouldEqual, 1)
}

func TestCheckMotionEndpointOnlyWhenClose(t *testing.T) {
	sp, err := space.NewRealVectorSpace(2, []space.Bound{{Lower: 0, Upper: 10}, {Lower: 0, Upper: 10}}, 0.05, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	calls := 0
	checker := validity.CheckerFunc(func(cfg space.Configuration) bool {
		calls++
		return true
	})
	v := New(sp, checker)

	ok := v.CheckMotion(space.RealVector{1, 1}, space.RealVector{1.001, 1})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, calls, test.ShouldEqual, 1)
}
