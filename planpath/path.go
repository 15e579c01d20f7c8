// Package planpath defines Path (C6): the ordered sequence of
// configurations a planner returns. Grounded on spec.md §3 and
// oxmpl/src/base/planner.rs's Path<S>, generalized from the teacher's own
// [][]frame.Input step-list return shape (motionPlanInternal in
// AdamMagaluk-rdk/motionplan/motionPlanner.go).
package planpath

import "github.com/sampleplan/planning/space"

// Path is a non-empty, ordered sequence of configurations. Consecutive
// configurations are guaranteed straight-line reachable under the motion
// validator used to plan them (spec.md §3/§8).
type Path struct {
	Configurations []space.Configuration
}

// New wraps a non-empty slice of configurations as a Path.
func New(configurations []space.Configuration) Path {
	return Path{Configurations: configurations}
}

// Len returns the number of configurations in the path.
func (p Path) Len() int { return len(p.Configurations) }

// First returns the path's first configuration.
func (p Path) First() space.Configuration { return p.Configurations[0] }

// Last returns the path's last configuration.
func (p Path) Last() space.Configuration { return p.Configurations[len(p.Configurations)-1] }

// Reversed returns a new Path with configurations in reverse order,
// leaving the receiver untouched. Used by RRT-Connect to flip the goal
// tree's root-to-meeting walk into a meeting-to-goal-root segment.
func (p Path) Reversed() Path {
	out := make([]space.Configuration, len(p.Configurations))
	for i, cfg := range p.Configurations {
		out[len(out)-1-i] = cfg
	}
	return Path{Configurations: out}
}
