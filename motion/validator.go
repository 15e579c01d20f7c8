// Package motion implements the discretised straight-line motion
// validator (C7) every planner builds on top of. Grounded on spec.md §4.2
// verbatim and oxmpl/src/geometric/planners/prm.rs's check_motion, the
// clearest reference implementation of the sweep in the original source
// (RRT/RRT-Connect/RRT* each re-implement the same logic inline there; this
// module centralizes it once, as the teacher centralizes
// CheckSegmentAndStateValidityFS for reuse across its planner family).
package motion

import (
	"math"

	"github.com/sampleplan/planning/space"
	"github.com/sampleplan/planning/validity"
)

// resolutionFactor is the fixed design constant from spec.md §4.2/§9: the
// per-step check is ten times finer than the space's nominal
// longest-valid-segment length. Kept as a named constant rather than
// folded into the space's own fraction, per spec.md §9's explicit
// instruction not to collapse the two.
const resolutionFactor = 0.1

// Validator decides whether the straight-line transition between two
// configurations is admissible, by discretising it at a resolution derived
// from the configuration space's longest-valid-segment length.
type Validator struct {
	space   space.Space
	checker validity.Checker
}

// New builds a Validator over sp using checker to classify intermediate
// configurations.
func New(sp space.Space, checker validity.Checker) *Validator {
	return &Validator{space: sp, checker: checker}
}

// CheckMotion reports whether the straight-line path from a to b is valid.
// a is assumed already valid (the caller's invariant — the tree root and
// every previously accepted node are valid); only trailing samples are
// checked, by design (spec.md §4.2), to avoid redundant re-validation work
// on every extension.
func (v *Validator) CheckMotion(a, b space.Configuration) bool {
	d := v.space.Distance(a, b)
	segLen := v.space.LongestValidSegmentLength()
	n := v.stepCount(d, segLen)

	if n <= 1 {
		return v.checker.IsValid(b)
	}

	tmp := v.space.NewConfiguration()
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		v.space.Interpolate(a, b, t, tmp)
		if !v.checker.IsValid(tmp) {
			return false
		}
	}
	return true
}

// stepCount computes N = ceil(d / (segLen * resolutionFactor)), per
// spec.md §4.2. When segLen is zero (a fully degenerate
// longest_valid_segment_fraction of 0, per spec.md §6), every motion is
// checked only at its endpoint, matching the spec's stated
// degenerate behavior "a zero fraction degenerates the motion check to a
// single endpoint test".
func (v *Validator) stepCount(d, segLen float64) int {
	if segLen <= 0 {
		return 1
	}
	n := int(math.Ceil(d / (segLen * resolutionFactor)))
	if n < 1 {
		n = 1
	}
	return n
}
