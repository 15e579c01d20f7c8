package planner

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/sampleplan/planning/planpath"
)

// Parameter validation errors (spec.md §6 "Parameter ranges"). These are
// construction-time errors, surfaced eagerly from each planner's New*
// constructor (NewRRT, NewRRTConnect, NewRRTStar, NewPRM), matching the
// teacher's newCBiRRTMotionPlanner rejecting a nil *PlannerOptions with
// errNoPlannerOptions before ever touching the planning loop.
var (
	ErrMaxDistanceNotPositive      = errors.New("planner: max_distance must be > 0")
	ErrGoalBiasOutOfRange          = errors.New("planner: goal_bias must be in [0, 1]")
	ErrSearchRadiusNotPositive     = errors.New("planner: search_radius must be > 0")
	ErrConnectionRadiusNotPositive = errors.New("planner: connection_radius must be > 0")
)

func validateMaxDistance(v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: got %v", ErrMaxDistanceNotPositive, v)
	}
	return nil
}

func validateGoalBias(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: got %v", ErrGoalBiasOutOfRange, v)
	}
	return nil
}

// RRTOptions parametrizes C8 (spec.md §4.4).
type RRTOptions struct {
	// MaxDistance is the steer step size; must be > 0.
	MaxDistance float64
	// GoalBias is the probability of drawing a goal sample instead of a
	// uniform one each iteration; must be in [0, 1].
	GoalBias float64
}

// Validate enforces spec.md §6's ranges.
func (o RRTOptions) Validate() error {
	return multierr.Combine(validateMaxDistance(o.MaxDistance), validateGoalBias(o.GoalBias))
}

// RRTConnectOptions parametrizes C9 (spec.md §4.5). Same parameter set as
// RRT, kept as a distinct type so the two planners' options can't be
// passed to one another by accident.
type RRTConnectOptions struct {
	MaxDistance float64
	GoalBias    float64
}

// Validate enforces spec.md §6's ranges.
func (o RRTConnectOptions) Validate() error {
	return multierr.Combine(validateMaxDistance(o.MaxDistance), validateGoalBias(o.GoalBias))
}

// RRTStarOptions parametrizes C10 (spec.md §4.6).
type RRTStarOptions struct {
	MaxDistance float64
	GoalBias    float64
	// SearchRadius bounds the near-set scan for choose-parent/rewire; must
	// be > 0.
	SearchRadius float64
	// PropagateRewireCost opts into the cost-cascade variant documented in
	// DESIGN.md's Open Question 1 / SPEC_FULL.md §4: when a rewire lowers a
	// node's cost, walk its subtree and update descendant costs too. The
	// spec's default (false) leaves descendant costs locally stale, which
	// is the standard RRT* simplification.
	PropagateRewireCost bool
}

// Validate enforces spec.md §6's ranges.
func (o RRTStarOptions) Validate() error {
	err := multierr.Combine(validateMaxDistance(o.MaxDistance), validateGoalBias(o.GoalBias))
	if o.SearchRadius <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: got %v", ErrSearchRadiusNotPositive, o.SearchRadius))
	}
	return err
}

// PRMOptions parametrizes C11 (spec.md §4.7).
type PRMOptions struct {
	// ConstructionTimeout is stored with the options but not read by
	// BuildRoadmap, whose sampling loop is bounded by its own timeout
	// argument.
	ConstructionTimeout time.Duration
	// ConnectionRadius is the maximum distance at which two roadmap nodes
	// may be linked; must be > 0.
	ConnectionRadius float64
}

// Validate enforces spec.md §6's ranges.
func (o PRMOptions) Validate() error {
	if o.ConnectionRadius <= 0 {
		return fmt.Errorf("%w: got %v", ErrConnectionRadiusNotPositive, o.ConnectionRadius)
	}
	return nil
}

// Result is returned by SolveDetailed alongside (or instead of) a bare
// Path, supplementing spec.md's path-or-error contract with the solve
// diagnostics oxmpl's language bindings expose across their FFI boundary
// (oxmpl-py/src/geometric.rs returns iteration/timing info to Python
// callers) — see SPEC_FULL.md §4. Solve's own contract is unchanged: it
// returns exactly a planpath.Path or an error.
type Result struct {
	Path       planpath.Path
	Iterations int
	Elapsed    time.Duration
}
