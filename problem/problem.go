// Package problem defines the immutable problem bundle (C5): a space, one
// or more start configurations, and a goal. Grounded on spec.md §3 and
// oxmpl/src/base/problem_definition.rs's ProblemDefinition struct.
package problem

import (
	"errors"

	"github.com/sampleplan/planning/goal"
	"github.com/sampleplan/planning/space"
)

// ErrNoStartConfiguration is returned building a Bundle with no starts.
var ErrNoStartConfiguration = errors.New("problem bundle requires at least one start configuration")

// Bundle aggregates everything a planner needs to begin solving, shared by
// reference and never mutated by a planner (spec.md §3: "Shared by
// reference. Planners never mutate it"). Starts holds every supplied start
// configuration, but per spec.md §3 every planner in this module reads
// only Starts[0] — later entries exist so a caller's multi-start bundle
// round-trips unchanged, not because any planner here is multi-start
// aware (see DESIGN.md Open Question 2).
type Bundle struct {
	Space  space.Space
	Starts []space.Configuration
	Goal   goal.Predicate
}

// NewBundle validates and constructs a problem bundle.
func NewBundle(sp space.Space, starts []space.Configuration, g goal.Predicate) (*Bundle, error) {
	if len(starts) == 0 {
		return nil, ErrNoStartConfiguration
	}
	startsCopy := make([]space.Configuration, len(starts))
	copy(startsCopy, starts)
	return &Bundle{Space: sp, Starts: startsCopy, Goal: g}, nil
}

// Start returns the first (and, per spec.md §3, only planned-from) start
// configuration.
func (b *Bundle) Start() space.Configuration {
	return b.Starts[0]
}
