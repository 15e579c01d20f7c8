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

// roadmapNode is a PRM milestone: a configuration plus the adjacency list
// of every other milestone it connects to directly. Grounded on spec.md
// §3 "PRM roadmap (C11 internal)", stored the same indexed-slice way as
// planner.tree (spec.md §9).
type roadmapNode struct {
	configuration space.Configuration
	adjacency     []int
}

// PRM is the multi-query roadmap planner (C11, spec.md §4.7): a
// construction phase that builds an undirected roadmap, and a query phase
// that runs BFS over it. Grounded on oxmpl's prm.rs construction loop and
// VecDeque-based BFS, the queue here kept as a plain Go slice to match the
// teacher's own plain-slice style rather than reaching for container/list.
type PRM struct {
	opts   PRMOptions
	logger logging.Logger
	rng    *rand.Rand

	sp        space.Space
	checker   validity.Checker
	validator *motion.Validator

	nodes []roadmapNode
}

// NewPRM constructs a PRM planner. rng is owned exclusively by this
// planner (spec.md §5).
func NewPRM(opts PRMOptions, rng *rand.Rand, logger logging.Logger) (*PRM, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDevelopmentLogger("planner.prm")
	}
	return &PRM{opts: opts, logger: logger.Sublogger("prm"), rng: rng}, nil
}

// Configure resets the roadmap. PRM's goal handling uses only the
// Predicate tier (spec.md §4.3 "PRM uses the predicate tier to identify
// goal nodes in the roadmap"), so Configure takes no goal at all and Solve
// takes a goal.Predicate rather than a SampleableRegion.
func (p *PRM) Configure(bundle *problem.Bundle, checker validity.Checker) error {
	p.sp = bundle.Space
	p.checker = checker
	p.validator = motion.New(bundle.Space, checker)
	p.nodes = nil
	return nil
}

// BuildRoadmap runs the construction phase (spec.md §4.7). Idempotent: a
// no-op if the roadmap is already non-empty. Returns
// ErrPlannerUninitialised if called before Configure.
func (p *PRM) BuildRoadmap(timeout time.Duration) error {
	if p.sp == nil {
		return ErrPlannerUninitialised
	}
	if len(p.nodes) > 0 {
		return nil
	}

	deadline := time.Now().Add(timeout)
	sampled := 0
	for time.Now().Before(deadline) {
		qRand, err := p.sp.SampleUniform(p.rng)
		if err != nil {
			p.logger.Debugw("uniform sample skipped", "error", err)
			continue
		}
		if !p.checker.IsValid(qRand) {
			continue
		}

		var neighbours []int
		for i, existing := range p.nodes {
			if p.sp.Distance(qRand, existing.configuration) < p.opts.ConnectionRadius &&
				p.validator.CheckMotion(qRand, existing.configuration) {
				neighbours = append(neighbours, i)
			}
		}

		newIdx := len(p.nodes)
		p.nodes = append(p.nodes, roadmapNode{configuration: qRand, adjacency: neighbours})
		for _, n := range neighbours {
			p.nodes[n].adjacency = append(p.nodes[n].adjacency, newIdx)
		}
		sampled++
	}

	p.logger.Infow("roadmap constructed", "milestones", len(p.nodes), "sampled", sampled)
	return nil
}

// Solve runs the query phase (spec.md §4.7).
func (p *PRM) Solve(bundle *problem.Bundle, goalPred goal.Predicate, timeout time.Duration) (planpath.Path, error) {
	result, err := p.SolveDetailed(bundle, goalPred, timeout)
	return result.Path, err
}

// SolveDetailed is Solve, additionally returning diagnostics. The number
// of BFS dequeues stands in for "iterations" here, since PRM's query
// phase has no per-sample loop the way the tree planners do.
func (p *PRM) SolveDetailed(bundle *problem.Bundle, goalPred goal.Predicate, timeout time.Duration) (Result, error) {
	log := logging.NewCorrelatedLogger(p.logger)
	started := time.Now()

	if len(p.nodes) == 0 {
		return Result{}, ErrUnsampledStateSpace
	}
	start := bundle.Start()
	if !p.checker.IsValid(start) {
		return Result{}, ErrInvalidStartState
	}

	var frontier []int
	for i, n := range p.nodes {
		if p.sp.Distance(start, n.configuration) < p.opts.ConnectionRadius &&
			p.validator.CheckMotion(start, n.configuration) {
			frontier = append(frontier, i)
		}
	}
	goalSet := make(map[int]bool)
	for i, n := range p.nodes {
		if goalPred.IsSatisfied(n.configuration) {
			goalSet[i] = true
		}
	}
	if len(frontier) == 0 || len(goalSet) == 0 {
		return Result{}, fmt.Errorf("prm: %w", ErrNoSolutionFound)
	}

	deadline := started.Add(timeout)
	parent := make(map[int]int, len(p.nodes))
	visited := make(map[int]bool, len(p.nodes))
	queue := make([]int, 0, len(frontier))
	for _, f := range frontier {
		visited[f] = true
		parent[f] = noParent
		queue = append(queue, f)
	}

	iterations := 0
	for len(queue) > 0 {
		iterations++
		if time.Now().After(deadline) {
			return Result{Iterations: iterations, Elapsed: time.Since(started)}, fmt.Errorf("prm: %w", ErrTimeout)
		}

		current := queue[0]
		queue = queue[1:]

		if goalSet[current] {
			elapsed := time.Since(started)
			log.Infow("prm solved", "iterations", iterations, "elapsed", elapsed)
			return Result{
				Path:       p.reconstruct(start, current, parent),
				Iterations: iterations,
				Elapsed:    elapsed,
			}, nil
		}

		for _, next := range p.nodes[current].adjacency {
			if !visited[next] {
				visited[next] = true
				parent[next] = current
				queue = append(queue, next)
			}
		}
	}

	log.Debugw("prm found no solution", "iterations", iterations)
	return Result{Iterations: iterations, Elapsed: time.Since(started)}, fmt.Errorf("prm: %w", ErrNoSolutionFound)
}

// reconstruct walks the BFS parent map from goalIdx back to its frontier
// seed and prepends the start configuration (spec.md §4.7 step 6).
func (p *PRM) reconstruct(start space.Configuration, goalIdx int, parent map[int]int) planpath.Path {
	var reversed []space.Configuration
	for idx := goalIdx; idx != noParent; idx = parent[idx] {
		reversed = append(reversed, p.nodes[idx].configuration)
	}
	configs := make([]space.Configuration, len(reversed)+1)
	configs[0] = start
	for i, cfg := range reversed {
		configs[len(configs)-1-i] = cfg
	}
	return planpath.New(configs)
}
