package planner

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/sampleplan/planning/space"
	"github.com/sampleplan/planning/validity"
)

// wallMin/wallMax describe the scenario-2 wall obstacle as an axis-aligned
// box in r3.Vector form, matching the teacher's own test convention of
// building scenario geometry out of github.com/golang/geo/r3 vectors
// (motionplan/tpSpaceRRT_test.go's spatialmath.NewBox(..., r3.Vector{...})).
// Only X/Y are meaningful here; Z is unused padding so the box reads as a
// genuine r3.Vector pair rather than a 2-vector shoehorned into it.
var (
	wallMin = r3.Vector{X: 4.75, Y: 2, Z: 0}
	wallMax = r3.Vector{X: 5.25, Y: 8, Z: 0}
)

func insideWall(v space.RealVector) bool {
	p := r3.Vector{X: v[0], Y: v[1], Z: 0}
	return p.X >= wallMin.X && p.X <= wallMax.X && p.Y >= wallMin.Y && p.Y <= wallMax.Y
}

// newUnboundedRn builds an R^n space with effectively unbounded per-
// dimension extent, for tree/neighbor plumbing tests that don't care
// about bounds.
func newUnboundedRn(dim int) (*space.RealVectorSpace, error) {
	bounds := make([]space.Bound, dim)
	for i := range bounds {
		bounds[i] = space.Bound{Lower: -1e6, Upper: 1e6}
	}
	return space.NewRealVectorSpace(dim, bounds, 0.05, nil)
}

// wallGapSpace and wallGapChecker ground spec.md §8 scenarios 1 and 2: a
// 10x10 square with a thin wall at x in [4.75, 5.25], y in [2, 8],
// leaving a gap above and below.
func wallGapSpace() (*space.RealVectorSpace, error) {
	return space.NewRealVectorSpace(2, []space.Bound{{Lower: 0, Upper: 10}, {Lower: 0, Upper: 10}}, 0.05, nil)
}

func wallGapChecker() validity.Checker {
	return validity.CheckerFunc(func(cfg space.Configuration) bool {
		return !insideWall(cfg.(space.RealVector))
	})
}

// forbiddenArcChecker grounds spec.md §8 scenario 3: invalid angles in
// [-0.5, 0.5] on the full SO(2) circle.
func forbiddenArcChecker() validity.Checker {
	return validity.CheckerFunc(func(cfg space.Configuration) bool {
		theta := cfg.(*space.SO2).Theta
		return !(theta >= -0.5 && theta <= 0.5)
	})
}

// forbiddenConeChecker grounds spec.md §8 scenario 4: rotations within
// 40 degrees of identity are invalid.
func forbiddenConeChecker() (validity.Checker, error) {
	identity, err := space.NewSO3(0, 0, 0, 1)
	if err != nil {
		return nil, err
	}
	so3Space := space.NewSO3Space(0.05, nil)
	forbidden := 40 * math.Pi / 180
	return validity.CheckerFunc(func(cfg space.Configuration) bool {
		return so3Space.Distance(identity, cfg) > forbidden
	}), nil
}
