package search

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/bsetsearch/bigint"
	"github.com/katalvlaran/bsetsearch/logging"
	"github.com/katalvlaran/bsetsearch/sumset"
)

// ErrInvalidTargetN is returned when Config.TargetN < 1.
var ErrInvalidTargetN = errors.New("search: target_n must be >= 1")

// Engine runs one branch-and-bound solve. An Engine is single-use: construct
// a fresh one (New) for each Solve call, matching spec.md §3's lifecycle
// ("Oracle and Engine instances live for the duration of one solve()").
type Engine struct {
	cfg    Config
	oracle sumset.Oracle

	initialBound bigint.Int
	bestMax      bigint.Int
	bestSolution []bigint.Int
	hasSolution  bool
	optima       [][]bigint.Int

	stats Stats

	interrupted bool
	timedOut    bool
}

// New constructs an Engine for cfg, selecting the oracle backend per
// sumset.Select's Auto/Indexed/Exhaustive policy (spec.md §4.3 "Oracle
// selection"), logging a warning if an explicit Indexed request was
// downgraded.
func New(cfg Config) *Engine {
	oracle, downgraded := sumset.Select(cfg.OracleKind, cfg.TargetN)
	if downgraded {
		logging.Warnf("search: n=%d >= %d requested Indexed oracle; downgrading to Exhaustive", cfg.TargetN, sumset.IndexedMaxN)
	}

	bound := cfg.InitialBound
	if bound.IsZero() {
		bound = defaultInitialBound(cfg.TargetN)
	}

	return &Engine{
		cfg:          cfg,
		oracle:       oracle,
		initialBound: bound,
		bestMax:      bound,
	}
}

// Solve runs the search to completion (or until ctx is done) and returns the
// outcome. ctx carries the engine's only cancellation mechanism: spec.md
// §4.3's "external stop flag" is this context, polled at recursion entry and
// at the top of the candidate loop (spec.md §4.3, §5).
func (e *Engine) Solve(ctx context.Context) (Result, error) {
	if e.cfg.TargetN < 1 {
		return Result{}, ErrInvalidTargetN
	}

	e.stats.StartWallclock = time.Now()
	e.stats.LastLogWallclock = e.stats.StartWallclock
	e.stats.BestMaxSoFar = e.bestMax

	e.oracle.Reset()

	if e.cfg.TargetN == 1 {
		one := bigint.One()
		e.adoptLeaf(ctx, []bigint.Int{one}, one)
	} else {
		e.dfs(ctx, 0, bigint.One())
	}

	return e.finalize(), nil
}

// dfs mirrors spec.md §4.3's pseudocode: depth counts committed elements,
// minNext is the smallest legal value for the next element.
func (e *Engine) dfs(ctx context.Context, depth int, minNext bigint.Int) {
	if e.stopped(ctx) {
		return
	}

	if depth == e.cfg.TargetN {
		e.onFullDepth(ctx)

		return
	}

	remaining := e.cfg.TargetN - depth - 1
	minPossible := bigint.AddUint64(minNext, uint64(remaining))
	if e.hasSolution && e.exceedsBestMax(minPossible) {
		return
	}

	candidate := minNext
	for {
		if e.stopped(ctx) {
			return
		}

		if e.hasSolution {
			if e.exceedsBestMax(candidate) {
				break
			}
		} else if bigint.Cmp(candidate, e.initialBound) >= 0 {
			break
		}

		completionFloor := bigint.AddUint64(candidate, uint64(remaining))
		if e.hasSolution && e.exceedsBestMax(completionFloor) {
			break
		}

		e.recordNode(ctx)

		if e.oracle.TryPush(candidate) {
			e.dfs(ctx, depth+1, bigint.AddUint64(candidate, 1))
			e.oracle.Pop()

			if e.cfg.FirstOnly && e.hasSolution {
				return
			}
		} else if ex, ok := e.oracle.(*sumset.ExhaustiveOracle); ok && ex.Oversized() {
			logging.Errorf("search: n=%d exhaustive oracle exceeds %d elements; candidate %s treated as colliding",
				e.cfg.TargetN, sumset.MaxExhaustiveN, candidate.String())
		}

		candidate = bigint.AddUint64(candidate, 1)
	}
}

// exceedsBestMax reports whether value rules out a branch given the current
// bestMax. In single-best mode a completion must strictly improve on
// bestMax, so value == bestMax already rules the branch out. In
// FindAllOptima mode an equal-max completion is still wanted, so only
// value > bestMax rules the branch out — otherwise the candidate/completion
// cuts in dfs would break before ever trying the final element that ties
// the current best, and adoptLeaf's equal-max append would never fire.
func (e *Engine) exceedsBestMax(value bigint.Int) bool {
	if e.cfg.FindAllOptima {
		return bigint.Cmp(value, e.bestMax) > 0
	}

	return bigint.Cmp(value, e.bestMax) >= 0
}

// onFullDepth handles a leaf: depth == TargetN, so the oracle holds a
// complete, admissible, strictly-increasing length-N sequence.
func (e *Engine) onFullDepth(ctx context.Context) {
	n := e.oracle.Len()
	currentMax := e.oracle.Get(n - 1)
	solution := e.oracle.Snapshot(make([]bigint.Int, 0, n))
	e.adoptLeaf(ctx, solution, currentMax)
}

// adoptLeaf implements spec.md §4.3's adopt-or-append logic, shared by the
// N==1 base case and onFullDepth.
func (e *Engine) adoptLeaf(ctx context.Context, solution []bigint.Int, currentMax bigint.Int) {
	e.stats.SolutionsFound++

	if !e.cfg.FindAllOptima {
		if !e.hasSolution || bigint.Cmp(currentMax, e.bestMax) < 0 {
			e.hasSolution = true
			e.bestMax = currentMax
			e.bestSolution = solution
			e.stats.BestMaxSoFar = currentMax
			if e.cfg.OnSolution != nil {
				e.cfg.OnSolution(solution, currentMax)
			}
			logging.Infof("search: n=%d improved best_max=%s nodes=%s", e.cfg.TargetN, currentMax.String(), logging.GroupDigits(e.stats.NodesExplored))
		}

		return
	}

	switch {
	case !e.hasSolution || bigint.Cmp(currentMax, e.bestMax) < 0:
		e.hasSolution = true
		e.bestMax = currentMax
		e.bestSolution = solution
		e.stats.BestMaxSoFar = currentMax
		e.optima = [][]bigint.Int{solution}
		if e.cfg.OnSolution != nil {
			e.cfg.OnSolution(solution, currentMax)
		}
	case bigint.Cmp(currentMax, e.bestMax) == 0:
		e.optima = append(e.optima, solution)
	}
}

// recordNode increments the node counter and, on the adaptive cadence from
// spec.md §4.3, emits a progress record.
func (e *Engine) recordNode(ctx context.Context) {
	e.stats.NodesExplored++
	e.stats.CurrentDepth = e.oracle.Len()

	if e.cfg.LogInterval <= 0 {
		return
	}
	if e.stats.NodesExplored%logIntervalNodes(e.stats.NodesExplored) != 0 {
		return
	}

	now := time.Now()
	if now.Sub(e.stats.LastLogWallclock) < e.cfg.LogInterval {
		return
	}
	e.stats.LastLogWallclock = now

	logging.Infof("search: n=%d nodes=%s elapsed=%s depth=%d best_max=%s",
		e.cfg.TargetN,
		logging.GroupDigits(e.stats.NodesExplored),
		now.Sub(e.stats.StartWallclock).Round(time.Millisecond),
		e.stats.CurrentDepth,
		e.stats.BestMaxSoFar.String(),
	)
	if e.cfg.OnProgress != nil {
		e.cfg.OnProgress(e.stats)
	}
}

// stopped checks ctx without blocking and latches which terminal status
// (Interrupted vs Timeout) applies once a stop is observed.
func (e *Engine) stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.timedOut = true
		} else {
			e.interrupted = true
		}

		return true
	default:
		return false
	}
}

// finalize derives the terminal Status per spec.md §4.3/§7/§9 and DESIGN.md's
// Open Question 1 resolution.
func (e *Engine) finalize() Result {
	res := Result{
		TargetN:             e.cfg.TargetN,
		NodesExplored:       e.stats.NodesExplored,
		ElapsedSeconds:      time.Since(e.stats.StartWallclock).Seconds(),
		CompletionTimestamp: time.Now(),
	}

	switch {
	case e.timedOut:
		res.Status = StatusTimeout
	case e.interrupted:
		res.Status = StatusInterrupted
	case !e.hasSolution:
		res.Status = StatusNoSolution
	case e.cfg.FirstOnly:
		res.Status = StatusFeasible
	default:
		res.Status = StatusOptimal
	}

	if e.hasSolution {
		res.MaxValue = e.bestMax
		res.Solution = e.bestSolution
		res.Optima = e.optima
	}

	return res
}
