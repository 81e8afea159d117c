// Package workerpool dispatches per-N solve tasks across up to W concurrent
// search.Engine runs, each owning its own sumset.Oracle, with a shared
// cancellable context standing in for spec's "atomic stop_flag" wired to
// SIGINT/SIGTERM.
//
// Shape is adapted from sentra-language-sentra/internal/concurrency/concurrency.go's
// WorkerPool/Worker/Job/JobResult: that module's generic job-queue and
// priority-channel machinery is overkill here (this system only ever runs
// one fixed task shape — "solve N" — with no priority concept), so dispatch
// is collapsed onto golang.org/x/sync/errgroup's bounded-concurrency
// SetLimit instead of a hand-rolled channel/Worker struct.
package workerpool

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/bsetsearch/bigint"
	"github.com/katalvlaran/bsetsearch/logging"
	"github.com/katalvlaran/bsetsearch/resultstore"
	"github.com/katalvlaran/bsetsearch/search"
	"github.com/katalvlaran/bsetsearch/sumset"
)

// Task is one N to solve, plus the per-task knobs spec's CLI exposes
// (-a/--all, -f/--first-only) and an oracle-kind override for tests.
type Task struct {
	N             int
	FindAllOptima bool
	FirstOnly     bool
	OracleKind    sumset.Kind
}

// Pool runs Tasks against a shared Store with bounded concurrency.
type Pool struct {
	store   *resultstore.Store
	workers int
}

// New constructs a Pool with at most `workers` concurrent engines (minimum
// 1). store is consulted for a starting bound before each task and written
// to after each task completes, per spec §4.5's "consult ResultStore,
// construct SolverConfig, run the Engine, save under a mutex" sequence
// (here the mutex is resultstore.Store's own internal one). store may be
// nil, in which case no bound-seeding or persistence happens.
func New(store *resultstore.Store, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	return &Pool{store: store, workers: workers}
}

// Solve runs every task in tasks and returns their results in the same
// order. ctx cancellation (from os/signal.NotifyContext at the CLI layer)
// propagates to every in-flight engine's cooperative poll point.
func (p *Pool) Solve(ctx context.Context, tasks []Task) ([]search.Result, error) {
	results := make([]search.Result, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			res, err := p.solveOne(ctx, task)
			if err != nil {
				return err
			}
			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// solveOne runs the bounded sequence for a single task: skip-if-solved
// check, best-bound seed, engine run, result persistence.
func (p *Pool) solveOne(ctx context.Context, task Task) (search.Result, error) {
	if p.store != nil {
		if solved, err := p.store.HasOptimal(task.N); err != nil {
			logging.Errorf("workerpool: n=%d has_optimal check failed: %v", task.N, err)
		} else if solved {
			if res, ok := p.skipSolved(task); ok {
				logging.Infof("workerpool: n=%d already solved optimally, skipping", task.N)

				return res, nil
			}
		}
	}

	cfg := search.DefaultConfig(task.N)
	cfg.FindAllOptima = task.FindAllOptima
	cfg.FirstOnly = task.FirstOnly
	if task.OracleKind != sumset.Auto {
		cfg.OracleKind = task.OracleKind
	}

	if p.store != nil {
		if bound, ok, err := p.store.GetBestBound(task.N); err != nil {
			logging.Errorf("workerpool: n=%d get_best_bound failed: %v", task.N, err)
		} else if ok {
			cfg.InitialBound = bigint.AddUint64(bound, 1)
		}
	}

	eng := search.New(cfg)
	res, err := eng.Solve(ctx)
	if err != nil {
		return search.Result{}, err
	}

	if p.store != nil && (res.Status == search.StatusOptimal || res.Status == search.StatusFeasible) {
		if saveErr := p.save(task.N, res); saveErr != nil {
			logging.Errorf("workerpool: n=%d save_result failed: %v", task.N, saveErr)
		}
	}

	return res, nil
}

// skipSolved builds a search.Result from a prior OPTIMAL record instead of
// re-running the engine. It declines to skip (returns ok=false) when the
// task wants every optimum (task.FindAllOptima) but the store has no
// optimal_sets rows for this n — a prior non-all-optima solve wouldn't have
// recorded the full list, so re-solving is the only way to get it.
func (p *Pool) skipSolved(task Task) (search.Result, bool) {
	stored, optima, ok, err := p.store.GetOptimalResult(task.N)
	if err != nil {
		logging.Errorf("workerpool: n=%d get_optimal_result failed: %v", task.N, err)

		return search.Result{}, false
	}
	if !ok {
		return search.Result{}, false
	}
	if task.FindAllOptima && len(optima) == 0 {
		return search.Result{}, false
	}

	return search.Result{
		TargetN:             stored.TargetN,
		MaxValue:            stored.MaxValue,
		Solution:            stored.Solution,
		Optima:              optima,
		ElapsedSeconds:      stored.ElapsedSeconds,
		Status:              search.StatusOptimal,
		NodesExplored:       stored.NodesExplored,
		CompletionTimestamp: stored.Timestamp,
	}, true
}

// save persists res, per spec's StorageFailure policy: a DB write failure is
// logged at ERROR and does not affect the engine's own result.
func (p *Pool) save(n int, res search.Result) error {
	if err := p.store.SaveResult(resultstore.SolvedResult{
		TargetN:        res.TargetN,
		MaxValue:       res.MaxValue,
		Solution:       res.Solution,
		Status:         res.Status.String(),
		NodesExplored:  res.NodesExplored,
		ElapsedSeconds: res.ElapsedSeconds,
		Timestamp:      res.CompletionTimestamp,
	}); err != nil {
		return err
	}

	if len(res.Optima) > 0 {
		return p.store.SaveOptima(n, res.MaxValue, res.Optima)
	}

	return nil
}

// DefaultPollInterval is the worker-pool driver loop's between-task yield
// mentioned in spec §5 — unused by Solve's errgroup-based dispatch (which
// has no polling loop of its own) but kept as the documented value a caller
// wiring a custom scheduler around Pool should use.
const DefaultPollInterval = 100 * time.Millisecond
