package planner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sampleplan/planning/goal"
	"github.com/sampleplan/planning/logging"
	"github.com/sampleplan/planning/motion"
	"github.com/sampleplan/planning/planpath"
	"github.com/sampleplan/planning/problem"
	"github.com/sampleplan/planning/space"
	"github.com/sampleplan/planning/validity"
)

// RRT is a single-tree, goal-biased, step-limited planner (C8, spec.md
// §4.4). Grounded on the sequential iterate-sample-extend-check-insert
// shape of the teacher's rrtBackgroundRunner (cBiRRT.go), stripped of its
// bidirectionality and goroutine/channel concurrency (spec.md §5).
type RRT struct {
	opts   RRTOptions
	logger logging.Logger
	rng    *rand.Rand

	sp         space.Space
	goalRegion goal.SampleableRegion
	checker    validity.Checker
	validator  *motion.Validator
	start      space.Configuration

	tree *tree
}

// NewRRT constructs an RRT planner. rng is owned exclusively by this
// planner (spec.md §5 "the random-number generator is owned by the
// planner and not shared"); seed it explicitly for deterministic tests.
func NewRRT(opts RRTOptions, rng *rand.Rand, logger logging.Logger) (*RRT, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDevelopmentLogger("planner.rrt")
	}
	return &RRT{opts: opts, logger: logger.Sublogger("rrt"), rng: rng}, nil
}

// Configure initialises the planner's tree from bundle and checker,
// clearing any previous run's state (spec.md §6 "Planner lifecycle").
// goalRegion must implement goal.SampleableRegion: RRT is a goal-biased
// planner (spec.md §4.3).
func (p *RRT) Configure(bundle *problem.Bundle, goalRegion goal.SampleableRegion, checker validity.Checker) error {
	if !checker.IsValid(bundle.Start()) {
		return ErrInvalidStartState
	}
	p.sp = bundle.Space
	p.goalRegion = goalRegion
	p.checker = checker
	p.validator = motion.New(bundle.Space, checker)
	p.start = bundle.Start()
	p.tree = newTree(p.start.Clone())
	return nil
}

// Solve runs the main loop of spec.md §4.4 until a path is found, the
// deadline elapses, or timeout is reached. Returns exactly a
// planpath.Path or an error per spec.md §6.
func (p *RRT) Solve(timeout time.Duration) (planpath.Path, error) {
	result, err := p.SolveDetailed(timeout)
	return result.Path, err
}

// SolveDetailed is Solve, additionally returning iteration/timing
// diagnostics (SPEC_FULL.md §4 "planner.Result").
func (p *RRT) SolveDetailed(timeout time.Duration) (Result, error) {
	if p.tree == nil {
		return Result{}, ErrPlannerUninitialised
	}

	log := logging.NewCorrelatedLogger(p.logger)
	started := time.Now()
	deadline := started.Add(timeout)

	iterations := 0
	for time.Now().Before(deadline) {
		iterations++

		qRand, ok := p.sample()
		if !ok {
			continue
		}

		near := nearest(p.sp, p.tree, qRand)
		qNear := p.tree.configuration(near)

		qNew := p.steer(qNear, qRand)

		if !p.validator.CheckMotion(qNear, qNew) {
			continue
		}

		newIdx := p.tree.add(qNew, near, 0)

		if p.goalRegion.IsSatisfied(qNew) {
			elapsed := time.Since(started)
			log.Infow("rrt solved", "iterations", iterations, "elapsed", elapsed)
			return Result{
				Path:       planpath.New(p.tree.pathTo(newIdx)),
				Iterations: iterations,
				Elapsed:    elapsed,
			}, nil
		}
	}

	log.Debugw("rrt timed out", "iterations", iterations)
	return Result{Iterations: iterations, Elapsed: time.Since(started)}, fmt.Errorf("rrt: %w", ErrTimeout)
}

// sample draws a goal-biased or uniform sample (spec.md §4.4 step 1). A
// failed goal or uniform sample is never propagated (spec.md §7); the
// caller discards the iteration.
func (p *RRT) sample() (space.Configuration, bool) {
	if p.rng.Float64() < p.opts.GoalBias {
		cfg, err := p.goalRegion.SampleGoal(p.rng)
		if err == nil {
			return cfg, true
		}
		p.logger.Debugw("goal sample skipped", "error", err)
	}
	cfg, err := p.sp.SampleUniform(p.rng)
	if err != nil {
		p.logger.Debugw("uniform sample skipped", "error", err)
		return nil, false
	}
	return cfg, true
}

// steer implements spec.md §4.4 step 3: move at most MaxDistance from
// qNear toward qRand.
func (p *RRT) steer(qNear, qRand space.Configuration) space.Configuration {
	d := p.sp.Distance(qNear, qRand)
	if d <= p.opts.MaxDistance {
		return qRand
	}
	out := p.sp.NewConfiguration()
	p.sp.Interpolate(qNear, qRand, p.opts.MaxDistance/d, out)
	return out
}
