package goal

import "github.com/sampleplan/planning/space"

// predicateGoal adapts a bare predicate function to the Predicate
// interface, for callers whose goal condition has no natural distance
// metric (e.g. "configuration is in this discrete set").
type predicateGoal struct {
	fn func(cfg space.Configuration) bool
}

// NewPredicateGoal builds a Predicate-tier goal from a plain membership
// function. It satisfies only Predicate, not Region or SampleableRegion —
// it cannot be passed to a goal-biased planner's Configure, whose goal
// parameter is typed goal.SampleableRegion (spec.md §4.3).
func NewPredicateGoal(fn func(cfg space.Configuration) bool) Predicate {
	return &predicateGoal{fn: fn}
}

func (g *predicateGoal) IsSatisfied(cfg space.Configuration) bool { return g.fn(cfg) }
