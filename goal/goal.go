// Package goal implements the three-tier goal hierarchy (C4): a bare
// predicate, a region with a distance function, and a sampleable region
// that can produce its own members. Grounded on spec.md §3/§4.3 and
// oxmpl/src/base/goal.rs's Goal/GoalRegion/GoalSampleableRegion traits.
package goal

import (
	"errors"
	"math/rand"

	"github.com/sampleplan/planning/space"
)

// Predicate is the minimum capability every goal offers: a boolean
// membership test. All four planners need at least this tier for
// termination detection (spec.md §4.3).
type Predicate interface {
	// IsSatisfied reports whether cfg lies in the goal set.
	IsSatisfied(cfg space.Configuration) bool
}

// Region extends Predicate with a distance-to-goal function, zero inside
// the region. PRM uses only the Predicate tier; goal-biased tree planners
// use Region indirectly via SampleableRegion.
type Region interface {
	Predicate
	// DistanceToGoal returns a non-negative distance to the goal region,
	// zero iff IsSatisfied would report true.
	DistanceToGoal(cfg space.Configuration) float64
}

// SampleableRegion extends Region with the ability to produce a random
// member of the goal set directly, which RRT, RRT-Connect, and RRT* use to
// goal-bias their sampling (spec.md §4.4-4.6).
type SampleableRegion interface {
	Region
	// SampleGoal draws a configuration from the goal region. Returns an
	// error if the region cannot be realised as a sample: for example
	// ErrGoalRegionUnsatisfiable, or ErrGoalSamplingTimeout when rejection
	// sampling exhausts its attempts.
	SampleGoal(rng *rand.Rand) (space.Configuration, error)
}

// ErrGoalRegionUnsatisfiable signals that SampleGoal could not produce a
// member of the goal region. A planner loop must treat this as "skip the
// biased sample and draw uniformly instead" (spec.md §4.3), except during
// RRT-Connect setup, where this error aborts Configure.
var ErrGoalRegionUnsatisfiable = errors.New("goal region cannot be realised as a sample")

// ErrGoalSamplingTimeout signals that SampleGoal gave up after repeated
// rejection-sampling attempts without error; treated identically to
// ErrGoalRegionUnsatisfiable by every planner loop.
var ErrGoalSamplingTimeout = errors.New("goal sampling exceeded its attempt budget")
