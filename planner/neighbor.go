package planner

import "github.com/sampleplan/planning/space"

// nearest performs the linear scan spec.md §4.4 step 2 names explicitly:
// the tree node whose configuration minimises distance to target, with
// ties broken by lowest index. Grounded on the teacher's
// neighborManager.nearestNeighbor (cBiRRT.go), stripped of its
// goroutine/channel-based parallelism — spec.md §5 mandates single-
// threaded cooperative execution per planner instance, so the concurrent
// nearest-neighbor search is not carried forward (see DESIGN.md).
//
// spec.md §9 notes this linear scan as an optimisation opportunity (a k-d
// tree for R^n, an approximate-NN structure for SO(3)) that would not
// change results modulo tie-breaking; this module keeps the reference
// linear-scan behavior since it is the contract every property test in
// spec.md §8 is written against.
func nearest(sp space.Space, t *tree, target space.Configuration) int {
	best := 0
	bestDist := sp.Distance(t.configuration(0), target)
	for i := 1; i < t.len(); i++ {
		d := sp.Distance(t.configuration(i), target)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// near collects every tree index within radius of target, used by RRT*'s
// choose-parent and rewire steps (spec.md §4.6 steps 5-8).
func near(sp space.Space, t *tree, target space.Configuration, radius float64) []int {
	var out []int
	for i := 0; i < t.len(); i++ {
		if sp.Distance(t.configuration(i), target) <= radius {
			out = append(out, i)
		}
	}
	return out
}
