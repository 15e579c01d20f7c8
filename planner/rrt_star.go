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

// RRTStar is a near-neighbour rewiring, cost-aware planner (C10, spec.md
// §4.6). Grounded on oxmpl's rrt_star.rs near-set/choose-parent/rewire
// sequence, sharing RRT's single-tree loop shape.
type RRTStar struct {
	opts   RRTStarOptions
	logger logging.Logger
	rng    *rand.Rand

	sp         space.Space
	goalRegion goal.SampleableRegion
	checker    validity.Checker
	validator  *motion.Validator
	start      space.Configuration

	tree *tree
}

// NewRRTStar constructs an RRT* planner. rng is owned exclusively by this
// planner (spec.md §5).
func NewRRTStar(opts RRTStarOptions, rng *rand.Rand, logger logging.Logger) (*RRTStar, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDevelopmentLogger("planner.rrt_star")
	}
	return &RRTStar{opts: opts, logger: logger.Sublogger("rrt_star"), rng: rng}, nil
}

// Configure initialises the cost-tracking tree; the root has cost 0
// (spec.md §4.6).
func (p *RRTStar) Configure(bundle *problem.Bundle, goalRegion goal.SampleableRegion, checker validity.Checker) error {
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

// Solve runs spec.md §4.6's main loop, returning the first solution found
// (this planner does not continue improving after a solution is reached,
// per spec.md §4.6 step 9).
func (p *RRTStar) Solve(timeout time.Duration) (planpath.Path, error) {
	result, err := p.SolveDetailed(timeout)
	return result.Path, err
}

// SolveDetailed is Solve, additionally returning diagnostics.
func (p *RRTStar) SolveDetailed(timeout time.Duration) (Result, error) {
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

		nearIdx := nearest(p.sp, p.tree, qRand)
		qNear := p.tree.configuration(nearIdx)
		qNew := p.steer(qNear, qRand)

		if !p.validator.CheckMotion(qNear, qNew) {
			continue
		}

		neighbours := near(p.sp, p.tree, qNew, p.opts.SearchRadius)
		parentIdx, parentCost := p.chooseParent(neighbours, nearIdx, qNew)

		newIdx := p.tree.add(qNew, parentIdx, parentCost)
		p.rewire(neighbours, parentIdx, newIdx, qNew)

		if p.goalRegion.IsSatisfied(qNew) {
			elapsed := time.Since(started)
			log.Infow("rrt_star solved", "iterations", iterations, "elapsed", elapsed, "cost", parentCost)
			return Result{
				Path:       planpath.New(p.tree.pathTo(newIdx)),
				Iterations: iterations,
				Elapsed:    elapsed,
			}, nil
		}
	}

	log.Debugw("rrt_star timed out", "iterations", iterations)
	return Result{Iterations: iterations, Elapsed: time.Since(started)}, fmt.Errorf("rrt_star: %w", ErrTimeout)
}

func (p *RRTStar) sample() (space.Configuration, bool) {
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

func (p *RRTStar) steer(qNear, qRand space.Configuration) space.Configuration {
	d := p.sp.Distance(qNear, qRand)
	if d <= p.opts.MaxDistance {
		return qRand
	}
	out := p.sp.NewConfiguration()
	p.sp.Interpolate(qNear, qRand, p.opts.MaxDistance/d, out)
	return out
}

// chooseParent implements spec.md §4.6 steps 5-6: start from the nearest
// neighbour as the candidate parent, then test every other near-set
// member for a cheaper, motion-valid connection.
func (p *RRTStar) chooseParent(neighbours []int, nearIdx int, qNew space.Configuration) (int, float64) {
	bestParent := nearIdx
	bestCost := p.tree.cost(nearIdx) + p.sp.Distance(p.tree.configuration(nearIdx), qNew)

	for _, n := range neighbours {
		if n == nearIdx {
			continue
		}
		candCost := p.tree.cost(n) + p.sp.Distance(p.tree.configuration(n), qNew)
		if candCost < bestCost && p.validator.CheckMotion(p.tree.configuration(n), qNew) {
			bestParent = n
			bestCost = candCost
		}
	}
	return bestParent, bestCost
}

// rewire implements spec.md §4.6 step 8: for every neighbour other than
// the chosen parent, re-parent it through the new node when that lowers
// its cost. Descendant costs below a rewired node are not eagerly updated
// by default (spec.md §9's documented Open Question); setting
// RRTStarOptions.PropagateRewireCost walks the subtree and fixes them up.
func (p *RRTStar) rewire(neighbours []int, chosenParent, newIdx int, qNew space.Configuration) {
	for _, n := range neighbours {
		if n == chosenParent {
			continue
		}
		cand := p.tree.cost(newIdx) + p.sp.Distance(qNew, p.tree.configuration(n))
		if cand < p.tree.cost(n) && p.validator.CheckMotion(qNew, p.tree.configuration(n)) {
			delta := cand - p.tree.cost(n)
			p.tree.setParent(n, newIdx, cand)
			if p.opts.PropagateRewireCost {
				p.propagateCost(n, delta)
			}
		}
	}
}

// propagateCost walks the subtree rooted at n, applying delta to every
// descendant's recorded cost. Only reached when PropagateRewireCost is
// set.
func (p *RRTStar) propagateCost(n int, delta float64) {
	for _, child := range p.tree.children(n) {
		p.tree.nodes[child].cost += delta
		p.propagateCost(child, delta)
	}
}
