// Package planner implements the four sampling-based planning algorithms
// (C8-C11): single-tree RRT, bidirectional RRT-Connect, asymptotically
// optimal RRT*, and multi-query PRM. Grounded throughout on spec.md §4.4-
// §4.7 and the corresponding oxmpl Rust sources; structural choices
// (indexed trees, sequential loops) are cited per-file in DESIGN.md.
package planner

import "errors"

// Planning error taxonomy (spec.md §7 "Planning"). These are the only
// errors Solve ever returns; every other error condition is detected
// earlier: bad parameters by the planner constructors, invalid bounds by the
// space constructors, and RRT-Connect's goal-seeding failure by Configure.
// Grounded on the teacher's
// sentinel-error style (errPlannerFailed, errNoPlannerOptions in
// daoran-rdk/motionplan/armplanning/cBiRRT.go) and
// oxmpl/src/base/error.rs's PlanningError enum.
var (
	// ErrTimeout is returned when a solve call's deadline elapses before a
	// path is found. No partial path is ever returned alongside it.
	ErrTimeout = errors.New("planner: solve timed out before finding a path")
	// ErrNoSolutionFound is returned when a planner exhausts its search
	// (e.g. PRM's roadmap has no connection between start and goal) without
	// a timeout being the proximate cause.
	ErrNoSolutionFound = errors.New("planner: no solution found")
	// ErrPlannerUninitialised is returned calling Solve (or, for PRM,
	// BuildRoadmap) before Configure.
	ErrPlannerUninitialised = errors.New("planner: Configure was not called")
	// ErrInvalidStartState is returned when the problem bundle's start
	// configuration fails the validity predicate.
	ErrInvalidStartState = errors.New("planner: start configuration is invalid")
	// ErrUnsampledStateSpace is returned by PRM's Solve when BuildRoadmap
	// has not yet produced any milestones.
	ErrUnsampledStateSpace = errors.New("planner: roadmap has not been sampled")
)
